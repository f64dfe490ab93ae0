package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Availability maps lowercase weekday names ("monday".."sunday") to the
// ordered slot start times configured for that day ("09:00"). A missing or
// empty day means no bookable slots. Stored as JSONB.
type Availability map[string][]string

// Location is the doctor's practice address. Stored as JSONB.
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

// Education is one entry in the doctor's education history. Stored as JSONB.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	Name           string       `db:"name" json:"name"`
	Specialty      string       `db:"specialty" json:"specialty"`
	Experience     int          `db:"experience" json:"experience"`
	Rating         float64      `db:"rating" json:"rating"`
	Image          *string      `db:"image" json:"image,omitempty"`
	Description    *string      `db:"description" json:"description,omitempty"`
	Email          string       `db:"email" json:"email"`
	Phone          string       `db:"phone" json:"phone"`
	Availability   Availability `db:"availability" json:"availability"`
	Active         bool         `db:"active" json:"active"`
	Location       *Location    `db:"location" json:"location,omitempty"`
	Education      []Education  `db:"education" json:"education,omitempty"`
	Certifications []string     `db:"certifications" json:"certifications,omitempty"`
	Languages      []string     `db:"languages" json:"languages,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// Ref is the compact doctor reference embedded in appointment responses.
type Ref struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
}

// Ref returns the compact reference for this doctor.
func (d *Doctor) Ref() Ref {
	return Ref{ID: d.ID, Name: d.Name, Specialty: d.Specialty}
}

// ListFilter narrows a doctor listing. An empty or sentinel specialty means
// no specialty filter; search matches name/description/specialty substrings
// case-insensitively.
type ListFilter struct {
	Specialty string
	Search    string
}
