package ports

import (
	"context"

	"github.com/foodshare/platform/internal/core/domain"
)

// AccountRepository defines the persistence contract of the account directory.
// Emails are unique; implementations return domain.ErrDuplicateAccount and
// domain.ErrAccountNotFound.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
