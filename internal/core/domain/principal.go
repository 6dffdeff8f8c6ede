package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of actors on the platform. The zero value is
// RoleUnrecognized and never passes Valid.
type Role uint8

const (
	RoleUnrecognized Role = iota
	RoleDonor
	RoleNGO
	RoleAdmin
)

// Roles lists every assignable role in display order.
var Roles = []Role{RoleDonor, RoleNGO, RoleAdmin}

// ParseRole converts the wire form ("donor", "ngo", "admin") into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "donor":
		return RoleDonor, nil
	case "ngo":
		return RoleNGO, nil
	case "admin":
		return RoleAdmin, nil
	}
	return RoleUnrecognized, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) String() string {
	switch r {
	case RoleDonor:
		return "donor"
	case RoleNGO:
		return "ngo"
	case RoleAdmin:
		return "admin"
	default:
		return "unrecognized"
	}
}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleNGO, RoleAdmin:
		return true
	default:
		return false
	}
}

// Title is the human label used by the views.
func (r Role) Title() string {
	switch r {
	case RoleDonor:
		return "Donor"
	case RoleNGO:
		return "NGO"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText never fails: a record carrying a role outside the closed set
// decodes to RoleUnrecognized so callers can route it to a safe fallback.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		*r = RoleUnrecognized
		return nil
	}
	*r = parsed
	return nil
}

// Principal is the authenticated user carried by a session. It is also the
// exact shape persisted in the durable session cache.
type Principal struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
	Location     string `json:"location,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// DisplayName prefers the organization, falling back to the personal name.
func (p Principal) DisplayName() string {
	if p.Organization != "" {
		return p.Organization
	}
	return p.Name
}

// Clone returns a copy that the caller may keep without aliasing p.
func (p *Principal) Clone() *Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Account is a registered identity in the account directory.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Phone        string
	Location     string
	Organization string
	CreatedAt    time.Time
}

// Principal projects the account onto the session representation.
func (a *Account) Principal(avatar string) *Principal {
	return &Principal{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         a.Role,
		Avatar:       avatar,
		Location:     a.Location,
		Phone:        a.Phone,
		Organization: a.Organization,
	}
}

// NormalizeEmail is the directory's uniqueness key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
