package scheduling

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/providers/:providerId/slots/:date", h.ListSlots)
	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.BookAppointment)
	api.PATCH("/appointments/:id", h.UpdateAppointment)
	api.DELETE("/appointments/:id", h.CancelAppointment)
}

func (h *Handler) ListSlots(c echo.Context) error {
	slots, err := h.svc.ListAvailableSlots(c.Request().Context(), c.Param("providerId"), c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch time slots")
	}
	if slots == nil {
		slots = []*TimeSlot{}
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}
	appts, err := h.svc.ListUserAppointments(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch appointments")
	}
	return c.JSON(http.StatusOK, appts)
}

type bookRequest struct {
	UserID        string            `json:"userId"`
	ProviderID    string            `json:"providerId"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Duration      int               `json:"duration"`
	Status        AppointmentStatus `json:"status"`
	Notes         string            `json:"notes"`
	ReminderEmail *bool             `json:"reminderEmail"`
	ReminderSMS   *bool             `json:"reminderSms"`
	ReminderPhone *bool             `json:"reminderPhone"`
}

func (req *bookRequest) validate() error {
	if req.UserID == "" {
		return errors.New("userId is required")
	}
	if req.ProviderID == "" {
		return errors.New("providerId is required")
	}
	if req.Date == "" {
		return errors.New("date is required")
	}
	if req.Time == "" {
		return errors.New("time is required")
	}
	if req.Status != "" && !req.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

func (req *bookRequest) toAppointment() *Appointment {
	a := &Appointment{
		UserID:        req.UserID,
		ProviderID:    req.ProviderID,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
		Status:        req.Status,
		Notes:         req.Notes,
		ReminderEmail: true,
		ReminderSMS:   true,
		ReminderPhone: false,
	}
	if req.ReminderEmail != nil {
		a.ReminderEmail = *req.ReminderEmail
	}
	if req.ReminderSMS != nil {
		a.ReminderSMS = *req.ReminderSMS
	}
	if req.ReminderPhone != nil {
		a.ReminderPhone = *req.ReminderPhone
	}
	return a
}

func (h *Handler) BookAppointment(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.BookAppointment(c.Request().Context(), req.toAppointment())
	if errors.Is(err, ErrSlotUnavailable) {
		return echo.NewHTTPError(http.StatusConflict, "This time slot is no longer available")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create appointment")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var patch AppointmentPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, err := h.svc.UpdateAppointment(c.Request().Context(), c.Param("id"), patch)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	_, err := h.svc.CancelAppointment(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to cancel appointment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment cancelled successfully"})
}
