package identity

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"

	"github.com/healthflow/healthflow/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	secret string
}

func NewHandler(svc *Service, secret string) *Handler {
	return &Handler{svc: svc, secret: secret}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type loginResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

func (req *loginRequest) validate() error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errors.New("Please enter a valid email address")
	}
	if req.Password == "" {
		return errors.New("Password is required")
	}
	if req.Role == "" || !req.Role.Valid() {
		return errors.New("Please select your role")
	}
	return nil
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	token, err := auth.MakeToken(u.ID, string(u.Role), h.secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	return c.JSON(http.StatusOK, loginResponse{User: u.Public(), Token: token})
}
