package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/domain/doctor"
)

// Statuses an appointment can hold. Transitions are permissive: any status
// may move to any other.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var validStatuses = map[string]bool{
	StatusPending: true, StatusConfirmed: true,
	StatusCancelled: true, StatusCompleted: true,
}

var validCancellers = map[string]bool{
	"patient": true, "doctor": true, "admin": true,
}

// Patient is the snapshot captured at booking time. It is not a live
// reference to a patient account.
type Patient struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
}

// Insurance holds the patient's coverage details. Stored as JSONB.
type Insurance struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policy_number,omitempty"`
}

// Appointment maps to the appointment table. Date is the calendar day in
// YYYY-MM-DD form; Time is the slot string as configured on the doctor.
type Appointment struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	DoctorID           uuid.UUID   `db:"doctor_id" json:"doctor_id"`
	Doctor             *doctor.Ref `db:"-" json:"doctor,omitempty"`
	Patient            Patient     `db:"patient" json:"patient"`
	Date               string      `db:"appointment_date" json:"appointment_date"`
	Time               string      `db:"appointment_time" json:"appointment_time"`
	Type               string      `db:"appointment_type" json:"appointment_type"`
	Status             string      `db:"status" json:"status"`
	Reason             string      `db:"reason" json:"reason"`
	Symptoms           []string    `db:"symptoms" json:"symptoms,omitempty"`
	Notes              *string     `db:"notes" json:"notes,omitempty"`
	Insurance          *Insurance  `db:"insurance" json:"insurance,omitempty"`
	PaymentStatus      string      `db:"payment_status" json:"payment_status"`
	ReminderSent       bool        `db:"reminder_sent" json:"reminder_sent"`
	CancellationReason *string     `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CancelledBy        *string     `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

// ListFilter narrows an appointment listing.
type ListFilter struct {
	DoctorID     *uuid.UUID
	PatientEmail string
	Status       string
	Date         string
}

// Stats summarizes the appointment collection.
type Stats struct {
	Total             int `json:"total"`
	Pending           int `json:"pending"`
	Confirmed         int `json:"confirmed"`
	Completed         int `json:"completed"`
	Cancelled         int `json:"cancelled"`
	TodayAppointments int `json:"todayAppointments"`
}
