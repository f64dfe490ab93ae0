package doctor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/platform/apperror"
)

// mockRepo is an in-memory Repository for service tests.
type mockRepo struct {
	doctors    map[uuid.UUID]*Doctor
	lastFilter ListFilter
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	for _, existing := range m.doctors {
		if strings.EqualFold(existing.Email, d.Email) {
			return apperror.Conflict("a doctor with this email already exists")
		}
	}
	d.ID = uuid.New()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, apperror.NotFound("doctor")
	}
	return d, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Doctor, error) {
	for _, d := range m.doctors {
		if strings.EqualFold(d.Email, email) {
			return d, nil
		}
	}
	return nil, apperror.NotFound("doctor")
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return apperror.NotFound("doctor")
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	d, ok := m.doctors[id]
	if !ok {
		return apperror.NotFound("doctor")
	}
	d.Active = active
	return nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]*Doctor, int, error) {
	m.lastFilter = filter
	var items []*Doctor
	for _, d := range m.doctors {
		if d.Active {
			items = append(items, d)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) Specialties(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, d := range m.doctors {
		if d.Active && !seen[d.Specialty] {
			seen[d.Specialty] = true
			out = append(out, d.Specialty)
		}
	}
	return out, nil
}

func validCreateRequest() *CreateRequest {
	return &CreateRequest{
		Name:       "Dr. Sarah Johnson",
		Specialty:  "Cardiology",
		Experience: 12,
		Rating:     4.8,
		Email:      "sarah.johnson@clinic.example",
		Phone:      "+1-555-0101",
		Availability: Availability{
			"monday": {"09:00", "10:00"},
		},
	}
}

func TestCreate_Valid(t *testing.T) {
	svc := NewService(newMockRepo())

	d, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Active {
		t.Error("expected new doctor to be active")
	}
	if d.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreate_CollectsAllFieldErrors(t *testing.T) {
	svc := NewService(newMockRepo())

	req := validCreateRequest()
	req.Name = ""
	req.Email = "not-an-email"

	_, err := svc.Create(context.Background(), req)
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var ae *apperror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperror.Error, got %T", err)
	}
	if len(ae.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %+v", len(ae.Fields), ae.Fields)
	}
	fields := map[string]bool{}
	for _, f := range ae.Fields {
		fields[f.Field] = true
	}
	if !fields["name"] || !fields["email"] {
		t.Errorf("expected name and email in field errors, got %+v", ae.Fields)
	}
}

func TestCreate_RejectsBadAvailabilityKey(t *testing.T) {
	svc := NewService(newMockRepo())

	req := validCreateRequest()
	req.Availability = Availability{"Monday": {"09:00"}}

	_, err := svc.Create(context.Background(), req)
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for capitalized weekday, got %v", err)
	}
}

func TestCreate_DuplicateEmailConflict(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Create(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(context.Background(), validCreateRequest())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("expected conflict for duplicate email, got %v", err)
	}
}

func TestList_NormalizesSentinelSpecialty(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	for _, sentinel := range []string{"all", "All", "All Specialties", "ALL SPECIALTIES"} {
		if _, _, err := svc.List(context.Background(), ListFilter{Specialty: sentinel}, 10, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastFilter.Specialty != "" {
			t.Errorf("sentinel %q should clear the specialty filter, got %q", sentinel, repo.lastFilter.Specialty)
		}
	}

	if _, _, err := svc.List(context.Background(), ListFilter{Specialty: "Cardiology"}, 10, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Specialty != "Cardiology" {
		t.Errorf("real specialty should pass through, got %q", repo.lastFilter.Specialty)
	}
}

func TestDeactivate_HidesDoctorFromListing(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	d, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Deactivate(context.Background(), d.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	items, total, err := svc.List(context.Background(), ListFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("expected deactivated doctor to be hidden, got %d items", len(items))
	}
}

func TestDeactivate_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.Deactivate(context.Background(), uuid.New())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSpecialties_PrependsSentinel(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	req := validCreateRequest()
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	specs, err := svc.Specialties(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 || specs[0] != SpecialtySentinel || specs[1] != "Cardiology" {
		t.Errorf("unexpected specialties: %v", specs)
	}
}

