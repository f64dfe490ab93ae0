package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careslot/careslot/internal/platform/apperror"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the Postgres-backed appointment repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, doctor_id, patient, appointment_date::text, appointment_time,
	appointment_type, status, reason, symptoms, notes, insurance,
	payment_status, reminder_sent, cancellation_reason, cancelled_by,
	created_at, updated_at`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.Patient, &a.Date, &a.Time,
		&a.Type, &a.Status, &a.Reason, &a.Symptoms, &a.Notes, &a.Insurance,
		&a.PaymentStatus, &a.ReminderSent, &a.CancellationReason, &a.CancelledBy,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("appointment")
	}
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, doctor_id, patient, appointment_date,
			appointment_time, appointment_type, status, reason, symptoms, notes,
			insurance, payment_status, reminder_sent, cancellation_reason, cancelled_by)
		VALUES ($1,$2,$3,$4::date,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		a.ID, a.DoctorID, a.Patient, a.Date, a.Time, a.Type, a.Status,
		a.Reason, a.Symptoms, a.Notes, a.Insurance, a.PaymentStatus,
		a.ReminderSent, a.CancellationReason, a.CancelledBy)
	if isUniqueViolation(err) {
		// The partial unique index on (doctor_id, appointment_date,
		// appointment_time) WHERE status <> 'cancelled' closes the
		// check-then-insert race between concurrent bookings.
		return apperror.Conflict("this time slot is already booked")
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppt(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointment SET status=$2, appointment_type=$3, reason=$4,
			symptoms=$5, notes=$6, insurance=$7, payment_status=$8,
			reminder_sent=$9, cancellation_reason=$10, cancelled_by=$11,
			updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Status, a.Type, a.Reason, a.Symptoms, a.Notes, a.Insurance,
		a.PaymentStatus, a.ReminderSent, a.CancellationReason, a.CancelledBy)
	if isUniqueViolation(err) {
		return apperror.Conflict("this time slot is already booked")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("appointment")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("appointment")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + apptCols + ` FROM appointment WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointment WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.DoctorID != nil {
		query += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		args = append(args, *filter.DoctorID)
		idx++
	}
	if filter.PatientEmail != "" {
		query += fmt.Sprintf(` AND lower(patient->>'email') = lower($%d)`, idx)
		countQuery += fmt.Sprintf(` AND lower(patient->>'email') = lower($%d)`, idx)
		args = append(args, filter.PatientEmail)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.Date != "" {
		query += fmt.Sprintf(` AND appointment_date = $%d::date`, idx)
		countQuery += fmt.Sprintf(` AND appointment_date = $%d::date`, idx)
		args = append(args, filter.Date)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY appointment_date ASC, appointment_time ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_time FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2::date AND status <> 'cancelled'`,
		doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context, today string) (*Stats, error) {
	var st Stats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE appointment_date = $1::date)
		FROM appointment`, today).
		Scan(&st.Total, &st.Pending, &st.Confirmed, &st.Completed, &st.Cancelled, &st.TodayAppointments)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
