package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type slotRepoMem struct {
	mu    sync.Mutex
	slots map[SlotKey]*TimeSlot
}

func NewSlotRepoMem() SlotRepository {
	return &slotRepoMem{slots: make(map[SlotKey]*TimeSlot)}
}

func (r *slotRepoMem) CreateSlot(_ context.Context, s *TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	cp := *s
	r.slots[s.Key()] = &cp
	return nil
}

func (r *slotRepoMem) ListAvailable(_ context.Context, providerID, date string) ([]*TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*TimeSlot
	for _, s := range r.slots {
		if s.ProviderID == providerID && s.Date == date && s.IsAvailable {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// ClaimSlot checks and claims under one lock, so two racing bookings of the
// same key cannot both succeed.
func (r *slotRepoMem) ClaimSlot(_ context.Context, key SlotKey, appointmentID string) (*TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[key]
	if !ok || !s.IsAvailable {
		return nil, ErrSlotUnavailable
	}
	s.IsAvailable = false
	s.ClaimedBy = appointmentID
	cp := *s
	return &cp, nil
}

func (r *slotRepoMem) ReleaseSlot(_ context.Context, key SlotKey, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[key]
	if !ok || s.ClaimedBy != appointmentID {
		return nil
	}
	s.IsAvailable = true
	s.ClaimedBy = ""
	return nil
}

type apptRepoMem struct {
	mu    sync.RWMutex
	appts map[string]*Appointment
}

func NewAppointmentRepoMem() AppointmentRepository {
	return &apptRepoMem{appts: make(map[string]*Appointment)}
}

func (r *apptRepoMem) Create(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	cp := *a
	r.appts[a.ID] = &cp
	return nil
}

func (r *apptRepoMem) GetByID(_ context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *apptRepoMem) Update(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	r.appts[a.ID] = &cp
	return nil
}

func (r *apptRepoMem) ListByUser(_ context.Context, userID string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, a := range r.appts {
		if a.UserID == userID && a.Status != StatusCancelled {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}
