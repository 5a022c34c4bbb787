package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthflow/healthflow/internal/domain/provider"
	"github.com/healthflow/healthflow/internal/platform/events"
)

// ProviderDirectory is the slice of the provider domain the scheduler
// needs for the dashboard join. *provider.Service satisfies it.
type ProviderDirectory interface {
	GetProvider(ctx context.Context, id string) (*provider.Provider, error)
}

type Service struct {
	slots     SlotRepository
	appts     AppointmentRepository
	directory ProviderDirectory
	publisher events.Publisher
	logger    zerolog.Logger
}

func NewService(slots SlotRepository, appts AppointmentRepository, directory ProviderDirectory, publisher events.Publisher, logger zerolog.Logger) *Service {
	return &Service{slots: slots, appts: appts, directory: directory, publisher: publisher, logger: logger}
}

func (s *Service) ListAvailableSlots(ctx context.Context, providerID, date string) ([]*TimeSlot, error) {
	return s.slots.ListAvailable(ctx, providerID, date)
}

// BookAppointment claims the slot, then records the appointment. The claim
// is keyed by the appointment id generated up front, so a failed create can
// release exactly what it claimed and a racing booking of the same key gets
// ErrSlotUnavailable from the ledger, never a double booking.
func (s *Service) BookAppointment(ctx context.Context, a *Appointment) (*Appointment, error) {
	if a.UserID == "" || a.ProviderID == "" || a.Date == "" || a.Time == "" {
		return nil, fmt.Errorf("userId, providerId, date and time are required")
	}
	applyBookingDefaults(a)

	a.ID = uuid.NewString()
	if _, err := s.slots.ClaimSlot(ctx, a.SlotKey(), a.ID); err != nil {
		return nil, err
	}
	if err := s.appts.Create(ctx, a); err != nil {
		if relErr := s.slots.ReleaseSlot(ctx, a.SlotKey(), a.ID); relErr != nil {
			s.logger.Error().Err(relErr).Str("appointment_id", a.ID).Msg("failed to release slot after create failure")
		}
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.TypeAppointmentBooked, a.ID, a))
	return a, nil
}

// CancelAppointment is a soft delete: the record stays with status
// cancelled and the slot goes back on the market through the claim ledger.
// Cancelling twice is a no-op.
func (s *Service) CancelAppointment(ctx context.Context, id string) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCancelled {
		return a, nil
	}

	a.Status = StatusCancelled
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := s.slots.ReleaseSlot(ctx, a.SlotKey(), a.ID); err != nil {
		s.logger.Error().Err(err).Str("appointment_id", a.ID).Msg("failed to release slot on cancel")
	}

	s.publish(ctx, events.NewEvent(events.TypeAppointmentCancelled, a.ID, a))
	return a, nil
}

// AppointmentPatch is a partial update; nil fields keep their value.
type AppointmentPatch struct {
	Date          *string            `json:"date"`
	Time          *string            `json:"time"`
	Duration      *int               `json:"duration"`
	Status        *AppointmentStatus `json:"status"`
	Notes         *string            `json:"notes"`
	ReminderEmail *bool              `json:"reminderEmail"`
	ReminderSMS   *bool              `json:"reminderSms"`
	ReminderPhone *bool              `json:"reminderPhone"`
}

// UpdateAppointment shallow-merges the patch. Setting status to cancelled
// routes through CancelAppointment so the slot is released; other fields
// never touch the ledger.
func (s *Service) UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) (*Appointment, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", *patch.Status)
	}
	if patch.Status != nil && *patch.Status == StatusCancelled {
		return s.CancelAppointment(ctx, id)
	}

	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Time != nil {
		a.Time = *patch.Time
	}
	if patch.Duration != nil {
		a.Duration = *patch.Duration
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.ReminderEmail != nil {
		a.ReminderEmail = *patch.ReminderEmail
	}
	if patch.ReminderSMS != nil {
		a.ReminderSMS = *patch.ReminderSMS
	}
	if patch.ReminderPhone != nil {
		a.ReminderPhone = *patch.ReminderPhone
	}

	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListUserAppointments joins each upcoming appointment with its provider.
// Appointments whose provider vanished are skipped rather than failing the
// whole listing.
func (s *Service) ListUserAppointments(ctx context.Context, userID string) ([]*AppointmentWithProvider, error) {
	appts, err := s.appts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*AppointmentWithProvider, 0, len(appts))
	for _, a := range appts {
		p, err := s.directory.GetProvider(ctx, a.ProviderID)
		if errors.Is(err, provider.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, &AppointmentWithProvider{Appointment: *a, Provider: *p})
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Error().Err(err).Str("event_type", evt.Type).Msg("failed to publish event")
	}
}

func applyBookingDefaults(a *Appointment) {
	if a.Duration == 0 {
		a.Duration = 30
	}
	if a.Status == "" {
		a.Status = StatusConfirmed
	}
}
