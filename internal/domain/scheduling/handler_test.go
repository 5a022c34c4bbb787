package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newHandlerFixture(t *testing.T) (*Handler, *Service, *echo.Echo) {
	t.Helper()
	svc, _ := newTestService(t)
	return NewHandler(svc), svc, echo.New()
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_ListSlots(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	c, rec := jsonRequest(e, http.MethodGet, "/", "")
	c.SetParamNames("providerId", "date")
	c.SetParamValues("P1", "2024-06-01")

	if err := h.ListSlots(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var slots []TimeSlot
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(slots) != 4 {
		t.Errorf("expected 4 slots, got %d", len(slots))
	}
	if strings.Contains(rec.Body.String(), "claimed") {
		t.Error("claim ledger leaked onto the wire")
	}
}

func TestHandler_ListSlots_EmptyIsArray(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	c, rec := jsonRequest(e, http.MethodGet, "/", "")
	c.SetParamNames("providerId", "date")
	c.SetParamValues("P1", "2030-01-01")

	if err := h.ListSlots(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestHandler_BookAppointment(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	body := `{"userId":"U1","providerId":"P1","date":"2024-06-01","time":"09:00","notes":"checkup"}`
	c, rec := jsonRequest(e, http.MethodPost, "/api/appointments", body)

	if err := h.BookAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var a Appointment
	json.Unmarshal(rec.Body.Bytes(), &a)
	if a.Status != StatusConfirmed {
		t.Errorf("expected confirmed, got %s", a.Status)
	}
	if !a.ReminderEmail || !a.ReminderSMS || a.ReminderPhone {
		t.Errorf("reminder defaults wrong: %+v", a)
	}
}

func TestHandler_BookAppointment_Conflict(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	body := `{"userId":"U1","providerId":"P1","date":"2024-06-01","time":"09:00"}`
	c, _ := jsonRequest(e, http.MethodPost, "/api/appointments", body)
	if err := h.BookAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ = jsonRequest(e, http.MethodPost, "/api/appointments", body)
	err := h.BookAppointment(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", httpErr.Code)
	}
	if httpErr.Message != "This time slot is no longer available" {
		t.Errorf("unexpected message: %v", httpErr.Message)
	}
}

func TestHandler_BookAppointment_Validation(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	c, _ := jsonRequest(e, http.MethodPost, "/api/appointments", `{"providerId":"P1","date":"2024-06-01","time":"09:00"}`)
	err := h.BookAppointment(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandler_ListAppointments_RequiresUserID(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	c, _ := jsonRequest(e, http.MethodGet, "/api/appointments", "")
	err := h.ListAppointments(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
	if httpErr.Message != "User ID is required" {
		t.Errorf("unexpected message: %v", httpErr.Message)
	}
}

func TestHandler_ListAppointments(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	c, _ := jsonRequest(e, http.MethodPost, "/api/appointments", `{"userId":"U1","providerId":"P1","date":"2024-06-01","time":"10:30"}`)
	if err := h.BookAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := jsonRequest(e, http.MethodGet, "/api/appointments?userId=U1", "")
	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []AppointmentWithProvider
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(got))
	}
	if got[0].Provider.FirstName != "Emily" {
		t.Errorf("expected joined provider, got %+v", got[0].Provider)
	}
}

func TestHandler_UpdateAppointment_NotFound(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	c, _ := jsonRequest(e, http.MethodPatch, "/", `{"notes":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.UpdateAppointment(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandler_CancelAppointment(t *testing.T) {
	h, svc, e := newHandlerFixture(t)

	a, err := svc.BookAppointment(context.Background(), &Appointment{UserID: "U1", ProviderID: "P1", Date: "2024-06-01", Time: "16:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := jsonRequest(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(a.ID)

	if err := h.CancelAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Appointment cancelled successfully") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_CancelAppointment_NotFound(t *testing.T) {
	h, _, e := newHandlerFixture(t)

	c, _ := jsonRequest(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.CancelAppointment(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}
