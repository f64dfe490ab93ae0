package doctor

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for doctors.
type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Doctor, int, error)
	Specialties(ctx context.Context) ([]string, error)
}
