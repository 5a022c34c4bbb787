package events

import (
	"context"
	"encoding/json"
	"os"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewEvent_StampsIDAndTime(t *testing.T) {
	evt := NewEvent(TypeAppointmentBooked, "appt-1", map[string]string{"providerId": "p1"})
	if evt.ID == "" {
		t.Error("expected event id")
	}
	if evt.OccurredAt.IsZero() {
		t.Error("expected occurred_at timestamp")
	}
	if evt.Type != TypeAppointmentBooked {
		t.Errorf("expected %s, got %s", TypeAppointmentBooked, evt.Type)
	}
	if evt.AggregateID != "appt-1" {
		t.Errorf("expected appt-1, got %s", evt.AggregateID)
	}
}

func TestEvent_JSONRoundTrip(t *testing.T) {
	evt := NewEvent(TypeAppointmentCancelled, "appt-2", nil)
	raw, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded Event
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.ID != evt.ID || decoded.Type != evt.Type {
		t.Error("round-tripped event does not match")
	}
}

func TestSplitBrokers(t *testing.T) {
	cases := map[string][]string{
		"":                          nil,
		"localhost:9092":            {"localhost:9092"},
		"a:9092, b:9092":            {"a:9092", "b:9092"},
		" a:9092 ,, b:9092 ,":       {"a:9092", "b:9092"},
		"broker1:9092,broker2:9093": {"broker1:9092", "broker2:9093"},
	}
	for raw, want := range cases {
		got := SplitBrokers(raw)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SplitBrokers(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNopPublisher(t *testing.T) {
	p := NopPublisher{}
	if err := p.Publish(context.Background(), NewEvent(TypeAppointmentBooked, "x", nil)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFromConfig_NoBrokersIsNop(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	p := FromConfig("", "appointment-events", logger)
	if _, ok := p.(NopPublisher); !ok {
		t.Errorf("expected NopPublisher, got %T", p)
	}
}
