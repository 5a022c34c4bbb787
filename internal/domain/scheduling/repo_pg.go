package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type slotRepoPG struct{ pool *pgxpool.Pool }

func NewSlotRepoPG(pool *pgxpool.Pool) SlotRepository { return &slotRepoPG{pool: pool} }

const slotCols = `id, provider_id, date, time, is_available, coalesce(claimed_by, ''), duration`

func scanSlot(row pgx.Row) (*TimeSlot, error) {
	var s TimeSlot
	err := row.Scan(&s.ID, &s.ProviderID, &s.Date, &s.Time, &s.IsAvailable, &s.ClaimedBy, &s.Duration)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *slotRepoPG) CreateSlot(ctx context.Context, s *TimeSlot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO time_slots (id, provider_id, date, time, is_available, duration)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (provider_id, date, time) DO NOTHING`,
		s.ID, s.ProviderID, s.Date, s.Time, s.IsAvailable, s.Duration)
	return err
}

func (r *slotRepoPG) ListAvailable(ctx context.Context, providerID, date string) ([]*TimeSlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+slotCols+` FROM time_slots
		WHERE provider_id = $1 AND date = $2 AND is_available = true
		ORDER BY time`, providerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*TimeSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ClaimSlot relies on the conditional UPDATE for atomicity: only one of two
// racing claims sees is_available = true.
func (r *slotRepoPG) ClaimSlot(ctx context.Context, key SlotKey, appointmentID string) (*TimeSlot, error) {
	s, err := scanSlot(r.pool.QueryRow(ctx, `
		UPDATE time_slots
		SET is_available = false, claimed_by = $4
		WHERE provider_id = $1 AND date = $2 AND time = $3 AND is_available = true
		RETURNING `+slotCols,
		key.ProviderID, key.Date, key.Time, appointmentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotUnavailable
	}
	return s, err
}

func (r *slotRepoPG) ReleaseSlot(ctx context.Context, key SlotKey, appointmentID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE time_slots
		SET is_available = true, claimed_by = NULL
		WHERE provider_id = $1 AND date = $2 AND time = $3 AND claimed_by = $4`,
		key.ProviderID, key.Date, key.Time, appointmentID)
	return err
}

type apptRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository { return &apptRepoPG{pool: pool} }

const apptCols = `id, user_id, provider_id, date, time, duration, status, coalesce(notes, ''), reminder_email, reminder_sms, reminder_phone, created_at`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.ProviderID, &a.Date, &a.Time, &a.Duration,
		&a.Status, &a.Notes, &a.ReminderEmail, &a.ReminderSMS, &a.ReminderPhone, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *apptRepoPG) Create(ctx context.Context, a *Appointment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, user_id, provider_id, date, time, duration, status, notes, reminder_email, reminder_sms, reminder_phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at`,
		a.ID, a.UserID, a.ProviderID, a.Date, a.Time, a.Duration, a.Status,
		a.Notes, a.ReminderEmail, a.ReminderSMS, a.ReminderPhone,
	).Scan(&a.CreatedAt)
}

func (r *apptRepoPG) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return scanAppt(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *apptRepoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET date = $2, time = $3, duration = $4, status = $5, notes = $6,
		    reminder_email = $7, reminder_sms = $8, reminder_phone = $9
		WHERE id = $1`,
		a.ID, a.Date, a.Time, a.Duration, a.Status, a.Notes,
		a.ReminderEmail, a.ReminderSMS, a.ReminderPhone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *apptRepoPG) ListByUser(ctx context.Context, userID string) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE user_id = $1 AND status != 'cancelled'
		ORDER BY date, time`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
