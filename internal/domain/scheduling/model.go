package scheduling

import (
	"time"

	"github.com/healthflow/healthflow/internal/domain/provider"
)

// AppointmentStatus is the closed set of appointment states. confirmed and
// pending move one way to cancelled; completed is reachable only through a
// partial update.
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusPending   AppointmentStatus = "pending"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// TimeSlot is one bookable opening in a provider's day. ClaimedBy records
// which appointment holds the slot, so a release can verify ownership
// instead of blindly flipping the availability flag.
type TimeSlot struct {
	ID          string `db:"id" json:"id"`
	ProviderID  string `db:"provider_id" json:"providerId"`
	Date        string `db:"date" json:"date"`
	Time        string `db:"time" json:"time"`
	IsAvailable bool   `db:"is_available" json:"isAvailable"`
	ClaimedBy   string `db:"claimed_by" json:"-"`
	Duration    int    `db:"duration" json:"duration"`
}

// SlotKey is the natural key of a slot.
type SlotKey struct {
	ProviderID string
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
}

func (t *TimeSlot) Key() SlotKey {
	return SlotKey{ProviderID: t.ProviderID, Date: t.Date, Time: t.Time}
}

type Appointment struct {
	ID            string            `db:"id" json:"id"`
	UserID        string            `db:"user_id" json:"userId"`
	ProviderID    string            `db:"provider_id" json:"providerId"`
	Date          string            `db:"date" json:"date"`
	Time          string            `db:"time" json:"time"`
	Duration      int               `db:"duration" json:"duration"`
	Status        AppointmentStatus `db:"status" json:"status"`
	Notes         string            `db:"notes" json:"notes,omitempty"`
	ReminderEmail bool              `db:"reminder_email" json:"reminderEmail"`
	ReminderSMS   bool              `db:"reminder_sms" json:"reminderSms"`
	ReminderPhone bool              `db:"reminder_phone" json:"reminderPhone"`
	CreatedAt     time.Time         `db:"created_at" json:"createdAt"`
}

func (a *Appointment) SlotKey() SlotKey {
	return SlotKey{ProviderID: a.ProviderID, Date: a.Date, Time: a.Time}
}

// AppointmentWithProvider is the dashboard listing shape.
type AppointmentWithProvider struct {
	Appointment
	Provider provider.Provider `json:"provider"`
}
