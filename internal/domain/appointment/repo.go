package appointment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for appointments. Create must map a
// duplicate (doctor, date, time) write for a non-cancelled appointment to the
// Conflict error kind so that concurrent double-bookings are rejected.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error)
	BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
	Stats(ctx context.Context, today string) (*Stats, error)
}
