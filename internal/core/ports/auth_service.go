package ports

import (
	"context"

	"github.com/foodshare/platform/internal/core/domain"
)

// RegisterInput carries the profile fields submitted on registration.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	Phone        string
	Location     string
	Organization string
}

// Authenticator resolves credentials and registrations into principals.
// It never touches session state.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Principal, error)
	Enroll(ctx context.Context, input RegisterInput) (*domain.Principal, error)
}
