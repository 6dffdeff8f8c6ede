package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/api/middleware"
	"github.com/foodshare/platform/internal/api/view"
	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/guard"
	"github.com/foodshare/platform/internal/core/ports"
	"github.com/foodshare/platform/internal/core/session"
	"github.com/foodshare/platform/pkg/logger"
)

const (
	flashProfileSaved = "Profile updated successfully!"
	flashPosted       = "Food donation posted successfully! NGOs in your area will be notified."
	flashClaimed      = "Food claimed successfully! You will receive pickup details shortly."
)

// PageHandler serves the server-rendered session and account screens.
type PageHandler struct {
	gate    *session.Gate
	catalog *catalog.Catalog
	now     func() time.Time
	log     zerolog.Logger
}

func NewPageHandler(gate *session.Gate, cat *catalog.Catalog, now func() time.Time, log zerolog.Logger) *PageHandler {
	if now == nil {
		now = time.Now
	}
	return &PageHandler{gate: gate, catalog: cat, now: now, log: log}
}

func (h *PageHandler) Landing(c echo.Context) error {
	return renderHTML(c, http.StatusOK, view.Landing(chrome(c, guard.PathLanding), h.catalog.Landing()))
}

func (h *PageHandler) LoginForm(c echo.Context) error {
	return renderHTML(c, http.StatusOK, view.LoginPage(chrome(c, guard.PathLogin), view.LoginForm{}))
}

func (h *PageHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := view.LoginForm{Email: req.Email, Role: req.Role}
	if err := c.Validate(&req); err != nil {
		form.Error = err.Error()
		return renderHTML(c, http.StatusUnprocessableEntity, view.LoginPage(chrome(c, guard.PathLogin), form))
	}
	role, _ := domain.ParseRole(req.Role)

	start := time.Now()
	_, err := h.gate.Login(c.Request().Context(), middleware.MustSession(c), req.Email, req.Password, role)
	observeSessionOp("login", start, err)
	if err != nil {
		return h.formFailure(c, err, func(msg string) error {
			form.Error = msg
			return renderHTML(c, statusFor(err), view.LoginPage(chrome(c, guard.PathLogin), form))
		})
	}
	return seeOther(c, guard.PathDashboard)
}

func (h *PageHandler) RegisterForm(c echo.Context) error {
	return renderHTML(c, http.StatusOK, view.RegisterPage(chrome(c, guard.PathRegister), view.RegisterForm{}))
}

func (h *PageHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := view.RegisterForm{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Phone:        req.Phone,
		Location:     req.Location,
		Organization: req.Organization,
	}
	if err := c.Validate(&req); err != nil {
		form.Error = err.Error()
		return renderHTML(c, http.StatusUnprocessableEntity, view.RegisterPage(chrome(c, guard.PathRegister), form))
	}

	start := time.Now()
	_, err := h.gate.Register(c.Request().Context(), middleware.MustSession(c), toRegisterInput(req))
	observeSessionOp("register", start, err)
	if err != nil {
		return h.formFailure(c, err, func(msg string) error {
			form.Error = msg
			return renderHTML(c, statusFor(err), view.RegisterPage(chrome(c, guard.PathRegister), form))
		})
	}
	return seeOther(c, guard.PathDashboard)
}

// Logout clears the session and returns to the landing page.
func (h *PageHandler) Logout(c echo.Context) error {
	err := h.gate.Logout(c.Request().Context(), middleware.MustSession(c))
	observeSessionOp("logout", time.Time{}, err)
	if err != nil {
		return err
	}
	return seeOther(c, guard.PathLanding)
}

// Dashboard renders the dashboard of the principal's role.
func (h *PageHandler) Dashboard(c echo.Context) error {
	ch := chrome(c, guard.PathDashboard)
	kind, d := guard.DashboardFor(ch.Principal)
	if !d.Allowed() {
		if ch.Principal != nil {
			reqLog := logger.FromContext(c.Request().Context(), h.log)
			reqLog.Warn().Msg("cached principal has an unrecognized role")
		}
		return middleware.Redirect(c, d.Redirect)
	}

	var page = view.ErrorPage(ch, http.StatusNotFound, "Dashboard not found")
	switch kind {
	case guard.DashboardDonor:
		page = view.DonorDashboard(ch, h.catalog.DonorDashboard())
	case guard.DashboardNGO:
		st := view.NGODashboardState{
			Search: c.QueryParam("q"),
			Filter: catalog.ParseFilter(c.QueryParam("filter")),
			Now:    h.now(),
		}
		data := h.catalog.NGODashboard(catalog.Query{Search: st.Search, Filter: st.Filter}, st.Now)
		page = view.NGODashboard(ch, data, st)
	case guard.DashboardAdmin:
		st := view.AdminDashboardState{
			Tab:    catalog.ParseAdminTab(c.QueryParam("tab")),
			Search: c.QueryParam("q"),
		}
		page = view.AdminDashboard(ch, h.catalog.AdminDashboard(st.Search), st)
	}
	return renderHTML(c, http.StatusOK, page)
}

func (h *PageHandler) Profile(c echo.Context) error {
	ch := chrome(c, guard.PathProfile)
	editing := c.QueryParam("edit") == "1"
	return renderHTML(c, http.StatusOK, view.Profile(ch, h.catalog.ProfileSummary(ch.Principal.Role), editing))
}

// SaveProfile acknowledges the edit form. Only the session gate writes the
// session, so the submitted values are not applied.
func (h *PageHandler) SaveProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		return seeOther(c, withFlash(guard.PathProfile, err.Error())+"&edit=1")
	}
	return seeOther(c, withFlash(guard.PathProfile, flashProfileSaved))
}

// formFailure re-renders a form for errors the user can act on and hands
// anything else to the error handler.
func (h *PageHandler) formFailure(c echo.Context, err error, rerender func(msg string) error) error {
	if statusFor(err) == http.StatusInternalServerError {
		return err
	}
	return rerender(userMessage(err))
}

func toRegisterInput(req registerRequest) ports.RegisterInput {
	role, _ := domain.ParseRole(req.Role)
	return ports.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         role,
		Phone:        req.Phone,
		Location:     req.Location,
		Organization: req.Organization,
	}
}

// statusFor maps the errors a form can surface onto a response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidRegistration), errors.Is(err, domain.ErrInvalidDonation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDuplicateAccount), errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
