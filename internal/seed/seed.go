// Package seed loads the demo provider directory and a rolling window of
// open time slots, matching the data the portal ships with.
package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthflow/healthflow/internal/domain/provider"
	"github.com/healthflow/healthflow/internal/domain/scheduling"
)

var slotTimes = []string{"09:00", "10:30", "14:30", "16:00"}

const (
	windowDays   = 30
	slotDuration = 30
)

func demoProviders() []*provider.Provider {
	return []*provider.Provider{
		{
			ID:          "provider1",
			FirstName:   "Emily",
			LastName:    "Chen",
			Specialty:   "Cardiology",
			Rating:      4.9,
			ReviewCount: 127,
			Location:    "Medical Center East",
			Room:        "Room 205",
			Bio:         "Experienced cardiologist specializing in preventive care",
			IsActive:    true,
		},
		{
			ID:          "provider2",
			FirstName:   "Michael",
			LastName:    "Rodriguez",
			Specialty:   "General Practice",
			Rating:      4.8,
			ReviewCount: 203,
			Location:    "Medical Center East",
			Room:        "Room 103",
			Bio:         "Family medicine physician with focus on comprehensive care",
			IsActive:    true,
		},
	}
}

// Load seeds the demo providers and, for each, four open slots per day for
// the next windowDays days starting tomorrow.
func Load(ctx context.Context, providers provider.ProviderRepository, slots scheduling.SlotRepository, logger zerolog.Logger) error {
	demo := demoProviders()
	for _, p := range demo {
		if err := providers.Create(ctx, p); err != nil {
			return err
		}
	}

	today := time.Now()
	count := 0
	for i := 1; i <= windowDays; i++ {
		dateStr := today.AddDate(0, 0, i).Format("2006-01-02")
		for _, p := range demo {
			for _, t := range slotTimes {
				slot := &scheduling.TimeSlot{
					ProviderID:  p.ID,
					Date:        dateStr,
					Time:        t,
					IsAvailable: true,
					Duration:    slotDuration,
				}
				if err := slots.CreateSlot(ctx, slot); err != nil {
					return err
				}
				count++
			}
		}
	}

	logger.Info().
		Int("providers", len(demo)).
		Int("slots", count).
		Msg("seeded demo data")
	return nil
}
