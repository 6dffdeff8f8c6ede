// Package guard maps routes to the visitor states allowed to see them.
package guard

import (
	"github.com/foodshare/platform/internal/core/domain"
)

// Class is the access class of a route.
type Class uint8

const (
	Public Class = iota
	AnonymousOnly
	Authenticated
	RoleRestricted
)

func (c Class) String() string {
	switch c {
	case Public:
		return "public"
	case AnonymousOnly:
		return "anonymous_only"
	case Authenticated:
		return "authenticated"
	case RoleRestricted:
		return "role_restricted"
	default:
		return "unknown"
	}
}

// Access describes who may see a route. Role is only consulted for
// RoleRestricted.
type Access struct {
	Class Class
	Role  domain.Role
}

// Allow returns the access of a class that needs no role.
func Allow(c Class) Access {
	return Access{Class: c}
}

// RequireRole restricts a route to principals holding role.
func RequireRole(role domain.Role) Access {
	return Access{Class: RoleRestricted, Role: role}
}

// Decision is the outcome of a guard check. An empty Redirect means render.
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// Decide classifies the visitor by p (nil for anonymous) and returns where to
// send them.
func Decide(access Access, p *domain.Principal) Decision {
	switch access.Class {
	case Public:
		return Decision{}
	case AnonymousOnly:
		if p != nil {
			return Decision{Redirect: PathDashboard}
		}
		return Decision{}
	case Authenticated:
		if p == nil {
			return Decision{Redirect: PathLogin}
		}
		return Decision{}
	case RoleRestricted:
		if p == nil || p.Role != access.Role {
			return Decision{Redirect: PathLogin}
		}
		return Decision{}
	default:
		return Decision{Redirect: PathLanding}
	}
}

// Dashboard identifies which role-specific dashboard to render.
type Dashboard uint8

const (
	DashboardNone Dashboard = iota
	DashboardDonor
	DashboardNGO
	DashboardAdmin
)

// DashboardFor dispatches on the principal's role. A role that is not one of
// the known roles yields DashboardNone with a redirect to the landing page.
func DashboardFor(p *domain.Principal) (Dashboard, Decision) {
	if p == nil {
		return DashboardNone, Decision{Redirect: PathLogin}
	}
	switch p.Role {
	case domain.RoleDonor:
		return DashboardDonor, Decision{}
	case domain.RoleNGO:
		return DashboardNGO, Decision{}
	case domain.RoleAdmin:
		return DashboardAdmin, Decision{}
	default:
		return DashboardNone, Decision{Redirect: PathLanding}
	}
}
