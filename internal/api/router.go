package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/foodshare/platform/internal/api/handler"
	"github.com/foodshare/platform/internal/api/middleware"
	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/guard"
	"github.com/foodshare/platform/internal/core/ports"
	"github.com/foodshare/platform/internal/core/session"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Log       zerolog.Logger
	Store     *session.Store
	Gate      *session.Gate
	Donations ports.DonationService
	Catalog   *catalog.Catalog
	Codec     *middleware.TokenCodec
	Cookie    middleware.SessionOptions
	Checks    []handler.DependencyCheck
	// Now is the clock used for time-remaining and urgency; defaults to time.Now.
	Now func() time.Time
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.HTTPMetrics())

	sess := middleware.Session(d.Store, d.Codec, d.Cookie, d.Log)
	guarded := func(path string) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{sess, middleware.Guard(guard.AccessFor(path))}
	}

	pages := handler.NewPageHandler(d.Gate, d.Catalog, d.Now, d.Log)
	food := handler.NewFoodHandler(d.Donations, d.Catalog, d.Now)
	api := handler.NewSessionHandler(d.Gate)

	// --- Pages ---
	e.GET(guard.PathLanding, pages.Landing, guarded(guard.PathLanding)...)
	e.GET(guard.PathLogin, pages.LoginForm, guarded(guard.PathLogin)...)
	e.POST(guard.PathLogin, pages.Login, guarded(guard.PathLogin)...)
	e.GET(guard.PathRegister, pages.RegisterForm, guarded(guard.PathRegister)...)
	e.POST(guard.PathRegister, pages.Register, guarded(guard.PathRegister)...)
	e.POST(guard.PathLogout, pages.Logout, sess)
	e.GET(guard.PathDashboard, pages.Dashboard, guarded(guard.PathDashboard)...)
	e.GET(guard.PathProfile, pages.Profile, guarded(guard.PathProfile)...)
	e.POST(guard.PathProfile, pages.SaveProfile, guarded(guard.PathProfile)...)
	e.GET(guard.PathPostFood, food.PostForm, guarded(guard.PathPostFood)...)
	e.POST(guard.PathPostFood, food.Post, guarded(guard.PathPostFood)...)
	e.GET(guard.PathBrowseFood, food.Browse, guarded(guard.PathBrowseFood)...)
	e.POST(guard.PathBrowseFood+"/:id/claim", food.Claim, guarded(guard.PathBrowseFood)...)

	// --- JSON API ---
	e.GET("/api/session", api.Current, sess)
	e.POST("/api/session/login", api.Login, sess)
	e.POST("/api/session/register", api.Register, sess)
	e.POST("/api/session/logout", api.Logout, sess)
	e.GET("/api/listings", food.Listings, sess, middleware.RequireRole(domain.RoleNGO))

	// --- Operations (no session) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
