package doctor

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/platform/apperror"
)

// specialty filter sentinels meaning "no filter"
var sentinelSpecialties = map[string]bool{
	"all":             true,
	"all specialties": true,
}

// SpecialtySentinel is prepended to the distinct-specialty listing so clients
// can offer an unfiltered option.
const SpecialtySentinel = "All Specialties"

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: apperror.NewValidator()}
}

// NormalizeSpecialty maps the sentinel values to the empty string (no filter).
func NormalizeSpecialty(s string) string {
	if sentinelSpecialties[strings.ToLower(strings.TrimSpace(s))] {
		return ""
	}
	return strings.TrimSpace(s)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Doctor, int, error) {
	filter.Specialty = NormalizeSpecialty(filter.Specialty)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateRequest carries the fields accepted when registering a doctor.
type CreateRequest struct {
	Name           string       `json:"name" validate:"required"`
	Specialty      string       `json:"specialty" validate:"required"`
	Experience     int          `json:"experience" validate:"gte=0"`
	Rating         float64      `json:"rating" validate:"gte=0,lte=5"`
	Image          *string      `json:"image"`
	Description    *string      `json:"description"`
	Email          string       `json:"email" validate:"required,email"`
	Phone          string       `json:"phone" validate:"required"`
	Availability   Availability `json:"availability"`
	Location       *Location    `json:"location"`
	Education      []Education  `json:"education"`
	Certifications []string     `json:"certifications"`
	Languages      []string     `json:"languages"`
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Doctor, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if err := validateAvailability(req.Availability); err != nil {
		return nil, err
	}

	d := &Doctor{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Experience:     req.Experience,
		Rating:         req.Rating,
		Image:          req.Image,
		Description:    req.Description,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Availability:   req.Availability,
		Active:         true,
		Location:       req.Location,
		Education:      req.Education,
		Certifications: req.Certifications,
		Languages:      req.Languages,
	}
	if d.Availability == nil {
		d.Availability = Availability{}
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *CreateRequest) (*Doctor, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if err := validateAvailability(req.Availability); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Name = req.Name
	d.Specialty = req.Specialty
	d.Experience = req.Experience
	d.Rating = req.Rating
	d.Image = req.Image
	d.Description = req.Description
	d.Email = strings.ToLower(strings.TrimSpace(req.Email))
	d.Phone = req.Phone
	if req.Availability != nil {
		d.Availability = req.Availability
	}
	d.Location = req.Location
	d.Education = req.Education
	d.Certifications = req.Certifications
	d.Languages = req.Languages

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Deactivate soft-deletes a doctor. Existing appointments keep their doctor
// reference; the doctor simply stops appearing in listings.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *Service) Specialties(ctx context.Context) ([]string, error) {
	specs, err := s.repo.Specialties(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{SpecialtySentinel}, specs...), nil
}

func validateAvailability(av Availability) error {
	var fields []apperror.FieldError
	for day := range av {
		if !isWeekday(day) {
			fields = append(fields, apperror.FieldError{
				Field:   "availability." + day,
				Message: "must be a lowercase weekday name",
			})
		}
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

func isWeekday(name string) bool {
	for _, d := range weekdayNames {
		if d == name {
			return true
		}
	}
	return false
}
