package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careslot/careslot/internal/domain/doctor"
	"github.com/careslot/careslot/internal/platform/apperror"
	"github.com/careslot/careslot/internal/platform/notify"
)

// PaymentProcessor captures a payment for a booked appointment. The default
// implementation is a no-op; payment collection is out of scope.
type PaymentProcessor interface {
	Capture(ctx context.Context, appointmentID uuid.UUID, patientEmail string) error
}

// NoopPayments is the default PaymentProcessor.
type NoopPayments struct{}

func (NoopPayments) Capture(context.Context, uuid.UUID, string) error { return nil }

type Service struct {
	appointments Repository
	doctors      doctor.Repository
	validate     *validator.Validate
	notifier     *notify.Notifier
	payments     PaymentProcessor
	logger       zerolog.Logger
	now          func() time.Time
}

func NewService(appts Repository, doctors doctor.Repository, notifier *notify.Notifier, payments PaymentProcessor, logger zerolog.Logger) *Service {
	if payments == nil {
		payments = NoopPayments{}
	}
	return &Service{
		appointments: appts,
		doctors:      doctors,
		validate:     apperror.NewValidator(),
		notifier:     notifier,
		payments:     payments,
		logger:       logger,
		now:          time.Now,
	}
}

// BookRequest is the candidate appointment submitted by a caller.
type BookRequest struct {
	DoctorID  uuid.UUID  `json:"doctor_id" validate:"required"`
	Patient   Patient    `json:"patient" validate:"required"`
	Date      string     `json:"appointment_date" validate:"required"`
	Time      string     `json:"appointment_time" validate:"required"`
	Type      string     `json:"appointment_type" validate:"omitempty,oneof=consultation follow-up emergency routine"`
	Status    string     `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Reason    string     `json:"reason" validate:"required"`
	Symptoms  []string   `json:"symptoms"`
	Notes     *string    `json:"notes"`
	Insurance *Insurance `json:"insurance"`
}

// Book runs the booking workflow: field validation, doctor existence, slot
// membership, conflict with existing non-cancelled bookings, and a past-date
// check, then persists the appointment in status pending (or the caller's
// legal status) and returns it with the doctor reference resolved.
func (s *Service) Book(ctx context.Context, req *BookRequest) (*Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.FromValidation(err)
	}
	date, err := doctor.ParseDate(req.Date)
	if err != nil {
		return nil, apperror.Validation([]apperror.FieldError{
			{Field: "appointment_date", Message: "must be a valid date in YYYY-MM-DD format"},
		})
	}

	doc, err := s.doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if !doc.HasSlot(date, req.Time) {
		return nil, apperror.InvalidSlot(fmt.Sprintf(
			"%s is not an available slot on %s", req.Time, doctor.WeekdayName(date)))
	}

	booked, err := s.appointments.BookedSlots(ctx, doc.ID, req.Date)
	if err != nil {
		return nil, err
	}
	for _, slot := range booked {
		if slot == req.Time {
			return nil, apperror.Conflict("this time slot is already booked")
		}
	}

	if s.slotInPast(date, req.Time) {
		return nil, apperror.InvalidSlot("cannot book an appointment in the past")
	}

	a := &Appointment{
		DoctorID:      doc.ID,
		Patient:       req.Patient,
		Date:          req.Date,
		Time:          req.Time,
		Type:          req.Type,
		Status:        req.Status,
		Reason:        req.Reason,
		Symptoms:      req.Symptoms,
		Notes:         req.Notes,
		Insurance:     req.Insurance,
		PaymentStatus: "pending",
	}
	if a.Type == "" {
		a.Type = "consultation"
	}
	if a.Status == "" {
		a.Status = StatusPending
	}

	// A concurrent duplicate insert trips the partial unique index and comes
	// back as Conflict from the repository.
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	a.Doctor = refOf(doc)

	if err := s.payments.Capture(ctx, a.ID, a.Patient.Email); err != nil {
		s.logger.Warn().Err(err).Str("appointment_id", a.ID.String()).Msg("payment capture failed")
	}
	s.sendEmail(ctx, "appointment-booked", a)

	return a, nil
}

// AvailabilityResult is the availability of one doctor on one date.
type AvailabilityResult struct {
	Weekday    string   `json:"weekday"`
	Configured []string `json:"configured"`
	Slots      []string `json:"slots"`
}

// Availability resolves the date's weekday, fetches the doctor's configured
// slots for it, and filters out slots held by non-cancelled appointments.
func (s *Service) Availability(ctx context.Context, doctorID uuid.UUID, dateStr string) (*AvailabilityResult, error) {
	date, err := doctor.ParseDate(dateStr)
	if err != nil {
		return nil, apperror.Validation([]apperror.FieldError{
			{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"},
		})
	}

	doc, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	configured := doc.SlotsForDate(date)
	booked, err := s.appointments.BookedSlots(ctx, doctorID, dateStr)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, slot := range booked {
		taken[slot] = true
	}
	free := make([]string, 0, len(configured))
	for _, slot := range configured {
		if !taken[slot] {
			free = append(free, slot)
		}
	}

	return &AvailabilityResult{
		Weekday:    doctor.WeekdayName(date),
		Configured: configured,
		Slots:      free,
	}, nil
}

// StatusRequest is the payload for a status transition.
type StatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellation_reason"`
	CancelledBy        *string `json:"cancelled_by"`
}

// UpdateStatus overwrites the appointment status. Cancellation metadata is
// stored only when moving to cancelled and cleared on any other transition.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *StatusRequest) (*Appointment, error) {
	if !validStatuses[req.Status] {
		return nil, apperror.Validation([]apperror.FieldError{
			{Field: "status", Message: "must be one of: pending, confirmed, cancelled, completed"},
		})
	}
	if req.CancelledBy != nil && !validCancellers[*req.CancelledBy] {
		return nil, apperror.Validation([]apperror.FieldError{
			{Field: "cancelled_by", Message: "must be one of: patient, doctor, admin"},
		})
	}

	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Status = req.Status
	if req.Status == StatusCancelled {
		a.CancellationReason = req.CancellationReason
		a.CancelledBy = req.CancelledBy
	} else {
		a.CancellationReason = nil
		a.CancelledBy = nil
	}

	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	s.resolveDoctor(ctx, a)

	if req.Status == StatusCancelled {
		s.sendEmail(ctx, "appointment-cancelled", a)
	} else {
		s.sendEmail(ctx, "appointment-status", a)
	}

	return a, nil
}

// UpdateRequest carries the mutable non-status fields of an appointment.
type UpdateRequest struct {
	Type          *string    `json:"appointment_type" validate:"omitempty,oneof=consultation follow-up emergency routine"`
	Reason        *string    `json:"reason"`
	Symptoms      []string   `json:"symptoms"`
	Notes         *string    `json:"notes"`
	Insurance     *Insurance `json:"insurance"`
	PaymentStatus *string    `json:"payment_status" validate:"omitempty,oneof=pending paid waived"`
	ReminderSent  *bool      `json:"reminder_sent"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.FromValidation(err)
	}

	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.Reason != nil {
		a.Reason = *req.Reason
	}
	if req.Symptoms != nil {
		a.Symptoms = req.Symptoms
	}
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	if req.Insurance != nil {
		a.Insurance = req.Insurance
	}
	if req.PaymentStatus != nil {
		a.PaymentStatus = *req.PaymentStatus
	}
	if req.ReminderSent != nil {
		a.ReminderSent = *req.ReminderSent
	}

	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	s.resolveDoctor(ctx, a)
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveDoctor(ctx, a)
	return a, nil
}

// Delete hard-deletes an appointment. Administrative use only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	items, total, err := s.appointments.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	refs := make(map[uuid.UUID]*doctor.Ref)
	for _, a := range items {
		ref, ok := refs[a.DoctorID]
		if !ok {
			if doc, err := s.doctors.GetByID(ctx, a.DoctorID); err == nil {
				ref = refOf(doc)
			}
			refs[a.DoctorID] = ref
		}
		a.Doctor = ref
	}
	return items, total, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.appointments.Stats(ctx, s.now().Format(doctor.DateLayout))
}

// slotInPast reports whether the date+slot combination is strictly before
// now. Slot strings that don't parse as a clock time fall back to a
// date-only comparison.
func (s *Service) slotInPast(date time.Time, slot string) bool {
	now := s.now()
	if t, ok := parseSlotTime(slot); ok {
		at := time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0, now.Location())
		return at.Before(now)
	}
	endOfDay := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, now.Location())
	return endOfDay.Before(now)
}

var slotLayouts = []string{"15:04", "3:04 PM", "03:04 PM"}

func parseSlotTime(slot string) (time.Time, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, slot); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func refOf(d *doctor.Doctor) *doctor.Ref {
	r := d.Ref()
	return &r
}

func (s *Service) resolveDoctor(ctx context.Context, a *Appointment) {
	if doc, err := s.doctors.GetByID(ctx, a.DoctorID); err == nil {
		a.Doctor = refOf(doc)
	}
}

// sendEmail is best-effort: booking and status changes never fail because an
// email could not be delivered.
func (s *Service) sendEmail(ctx context.Context, template string, a *Appointment) {
	if s.notifier == nil {
		return
	}
	data := map[string]string{
		"patient_name":     a.Patient.Name,
		"appointment_type": a.Type,
		"date":             a.Date,
		"time":             a.Time,
		"status":           a.Status,
	}
	if a.Doctor != nil {
		data["doctor_name"] = a.Doctor.Name
	}
	if a.CancellationReason != nil {
		data["reason"] = *a.CancellationReason
	}
	_ = s.notifier.Send(ctx, template, a.Patient.Email, data)
}
