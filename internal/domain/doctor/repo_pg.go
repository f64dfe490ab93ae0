package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careslot/careslot/internal/platform/apperror"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the Postgres-backed doctor repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const doctorCols = `id, name, specialty, experience, rating, image, description,
	email, phone, availability, active, location, education, certifications,
	languages, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Experience, &d.Rating,
		&d.Image, &d.Description, &d.Email, &d.Phone, &d.Availability, &d.Active,
		&d.Location, &d.Education, &d.Certifications, &d.Languages,
		&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("doctor")
	}
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor (id, name, specialty, experience, rating, image,
			description, email, phone, availability, active, location, education,
			certifications, languages)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		d.ID, d.Name, d.Specialty, d.Experience, d.Rating, d.Image,
		d.Description, d.Email, d.Phone, d.Availability, d.Active, d.Location,
		d.Education, d.Certifications, d.Languages)
	if isUniqueViolation(err) {
		return apperror.Conflict("a doctor with this email already exists")
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE lower(email) = lower($1)`, email))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctor SET name=$2, specialty=$3, experience=$4, rating=$5,
			image=$6, description=$7, email=$8, phone=$9, availability=$10,
			active=$11, location=$12, education=$13, certifications=$14,
			languages=$15, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Specialty, d.Experience, d.Rating, d.Image,
		d.Description, d.Email, d.Phone, d.Availability, d.Active, d.Location,
		d.Education, d.Certifications, d.Languages)
	if isUniqueViolation(err) {
		return apperror.Conflict("a doctor with this email already exists")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("doctor")
	}
	return nil
}

func (r *repoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE doctor SET active=$2, updated_at=NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("doctor")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Doctor, int, error) {
	query := `SELECT ` + doctorCols + ` FROM doctor WHERE active = TRUE`
	countQuery := `SELECT COUNT(*) FROM doctor WHERE active = TRUE`
	var args []interface{}
	idx := 1

	if filter.Specialty != "" {
		query += fmt.Sprintf(` AND specialty = $%d`, idx)
		countQuery += fmt.Sprintf(` AND specialty = $%d`, idx)
		args = append(args, filter.Specialty)
		idx++
	}
	if filter.Search != "" {
		cond := fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d OR specialty ILIKE $%d)`, idx, idx, idx)
		query += cond
		countQuery += cond
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY rating DESC, name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Specialties(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT specialty FROM doctor WHERE active = TRUE ORDER BY specialty`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// escapeLike escapes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
