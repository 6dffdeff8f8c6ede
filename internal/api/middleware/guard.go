package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/platform/internal/api/metrics"
	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/guard"
)

// Guard enforces a page route's access rule, redirecting visitors who may
// not see it.
func Guard(access guard.Access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.Decide(access, MustSession(c).Get())
			if !d.Allowed() {
				return Redirect(c, d.Redirect)
			}
			return next(c)
		}
	}
}

// Redirect sends the client to target, using 303 after a form post so the
// browser follows with a GET.
func Redirect(c echo.Context, target string) error {
	metrics.GuardRedirectsTotal.WithLabelValues(c.Path(), target).Inc()
	return c.Redirect(RedirectStatus(c.Request().Method), target)
}

func RedirectStatus(method string) int {
	if method == http.MethodGet || method == http.MethodHead {
		return http.StatusFound
	}
	return http.StatusSeeOther
}

// RequireRole guards JSON endpoints: anonymous callers get
// domain.ErrUnauthenticated and other roles domain.ErrForbidden.
func RequireRole(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := MustSession(c).Get()
			if p == nil {
				return domain.ErrUnauthenticated
			}
			for _, r := range allowed {
				if p.Role == r {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}
