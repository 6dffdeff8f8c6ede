package handler

import (
	"errors"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/platform/internal/api/metrics"
	"github.com/foodshare/platform/internal/api/middleware"
	"github.com/foodshare/platform/internal/api/view"
	"github.com/foodshare/platform/internal/core/domain"
)

// chrome collects what the navigation bar needs from the request's session
// and the flash query parameter.
func chrome(c echo.Context, active string) view.Chrome {
	s := middleware.MustSession(c)
	return view.Chrome{
		Principal: s.Get(),
		Loading:   s.IsLoading(),
		Active:    active,
		Flash:     c.QueryParam("flash"),
	}
}

// withFlash appends a flash message to a redirect target.
func withFlash(path, msg string) string {
	return path + "?flash=" + url.QueryEscape(msg)
}

// seeOther redirects after a successful form post.
func seeOther(c echo.Context, target string) error {
	return c.Redirect(middleware.RedirectStatus(c.Request().Method), target)
}

// sessionResult maps a gate outcome onto the session_ops_total result label.
func sessionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidRegistration):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "duplicate"
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return "in_flight"
	default:
		return "error"
	}
}

func observeSessionOp(op string, start time.Time, err error) {
	metrics.SessionOpsTotal.WithLabelValues(op, sessionResult(err)).Inc()
	if op != "logout" {
		metrics.SessionOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// userMessage is the text shown to a person whose form submission failed.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email, password or role."
	case errors.Is(err, domain.ErrInvalidRegistration):
		return "Please fill in your name, email, password and role."
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "An account with this email already exists."
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return "A previous submission is still being processed. Please wait."
	case errors.Is(err, domain.ErrInvalidDonation):
		return "Please fill in all required fields."
	default:
		return "Something went wrong. Please try again."
	}
}
