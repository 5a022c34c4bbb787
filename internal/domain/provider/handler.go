package provider

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
	api.GET("/providers", h.SearchProviders)
	api.GET("/providers/:id", h.GetProvider)
}

func (h *Handler) SearchProviders(c echo.Context) error {
	f := SearchFilter{
		Query:     c.QueryParam("query"),
		Specialty: c.QueryParam("specialty"),
	}
	providers, err := h.svc.SearchProviders(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch providers")
	}
	if providers == nil {
		providers = []*Provider{}
	}
	return c.JSON(http.StatusOK, providers)
}

func (h *Handler) GetProvider(c echo.Context) error {
	p, err := h.svc.GetProvider(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Provider not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch provider")
	}
	return c.JSON(http.StatusOK, p)
}
