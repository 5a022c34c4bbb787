package scheduling

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no appointment matches the lookup.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotUnavailable is returned when a claim races another booking or
	// targets a slot that does not exist.
	ErrSlotUnavailable = errors.New("time slot is no longer available")
)

// SlotRepository owns the slot-claim ledger. ClaimSlot is the only way to
// take a slot and must be atomic: at most one appointment can ever hold a
// given key.
type SlotRepository interface {
	CreateSlot(ctx context.Context, s *TimeSlot) error
	ListAvailable(ctx context.Context, providerID, date string) ([]*TimeSlot, error)
	ClaimSlot(ctx context.Context, key SlotKey, appointmentID string) (*TimeSlot, error)
	// ReleaseSlot restores availability only when appointmentID holds the
	// claim; releasing on behalf of any other appointment is a no-op.
	ReleaseSlot(ctx context.Context, key SlotKey, appointmentID string) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	// ListByUser returns the user's non-cancelled appointments ascending
	// by date then time.
	ListByUser(ctx context.Context, userID string) ([]*Appointment, error)
}
