package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/platform/internal/api/middleware"
	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/session"
)

// SessionHandler exposes the session gate to JSON clients.
type SessionHandler struct {
	gate *session.Gate
}

func NewSessionHandler(gate *session.Gate) *SessionHandler {
	return &SessionHandler{gate: gate}
}

type sessionResponse struct {
	Token string            `json:"token"`
	User  *domain.Principal `json:"user"`
}

type currentSessionResponse struct {
	User    *domain.Principal `json:"user"`
	Loading bool              `json:"loading"`
}

// Login authenticates and binds the principal to the caller's session.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials and role"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	role, _ := domain.ParseRole(req.Role)

	start := time.Now()
	p, err := h.gate.Login(c.Request().Context(), middleware.MustSession(c), req.Email, req.Password, role)
	observeSessionOp("login", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: middleware.SessionToken(c), User: p})
}

// Register creates an account and binds it to the caller's session.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	p, err := h.gate.Register(c.Request().Context(), middleware.MustSession(c), toRegisterInput(req))
	observeSessionOp("register", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{Token: middleware.SessionToken(c), User: p})
}

// Logout clears the caller's session. Logging out twice is not an error.
//
// @Summary      Logout
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	err := h.gate.Logout(c.Request().Context(), middleware.MustSession(c))
	observeSessionOp("logout", time.Time{}, err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Current reports the caller's principal, if any.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  currentSessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	s := middleware.MustSession(c)
	return c.JSON(http.StatusOK, currentSessionResponse{User: s.Get(), Loading: s.IsLoading()})
}
