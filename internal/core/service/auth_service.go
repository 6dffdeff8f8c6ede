package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/ports"
)

// AuthMode controls what happens when a login names an email that is not in
// the account directory.
type AuthMode string

const (
	// AuthModeMock synthesizes a principal for unknown emails.
	AuthModeMock AuthMode = "mock"
	// AuthModeStrict rejects unknown emails with ErrInvalidCredentials.
	AuthModeStrict AuthMode = "strict"
)

const (
	DefaultAvatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg"

	mockPrincipalID = "1"
	mockLocation    = "New York, NY"
	mockPhone       = "+1 (555) 123-4567"
)

// AuthOptions configures an AuthService.
type AuthOptions struct {
	Mode          AuthMode
	AvatarBaseURL string
	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// AuthService implements ports.Authenticator on top of the account directory.
type AuthService struct {
	repo      ports.AccountRepository
	mode      AuthMode
	avatarURL string
	now       func() time.Time
	newID     func() string
}

var _ ports.Authenticator = (*AuthService)(nil)

func NewAuthService(repo ports.AccountRepository, opts AuthOptions) *AuthService {
	s := &AuthService{
		repo:      repo,
		mode:      opts.Mode,
		avatarURL: opts.AvatarBaseURL,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	if s.mode != AuthModeStrict {
		s.mode = AuthModeMock
	}
	if s.avatarURL == "" {
		s.avatarURL = DefaultAvatarBaseURL
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// AvatarURL returns the avatar service address seeded by email.
func (s *AuthService) AvatarURL(email string) string {
	return s.avatarURL + "?seed=" + url.QueryEscape(email)
}

// Authenticate verifies registered accounts and, in mock mode, synthesizes a
// principal for any other non-empty credentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		if account.Role != role {
			return nil, domain.ErrInvalidCredentials
		}
		return account.Principal(s.AvatarURL(account.Email)), nil
	case errors.Is(err, domain.ErrAccountNotFound):
		if s.mode == AuthModeStrict {
			return nil, domain.ErrInvalidCredentials
		}
		return s.synthesize(email, role), nil
	default:
		return nil, fmt.Errorf("find account: %w", err)
	}
}

// synthesize builds the deterministic principal of the mock flow.
func (s *AuthService) synthesize(email string, role domain.Role) *domain.Principal {
	name, _, _ := strings.Cut(email, "@")
	return &domain.Principal{
		ID:       mockPrincipalID,
		Email:    email,
		Name:     name,
		Role:     role,
		Avatar:   s.AvatarURL(email),
		Location: mockLocation,
		Phone:    mockPhone,
	}
}

// Enroll stores a new account; the email must not be registered yet.
func (s *AuthService) Enroll(ctx context.Context, in ports.RegisterInput) (*domain.Principal, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrInvalidRegistration
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:           s.newID(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Phone:        strings.TrimSpace(in.Phone),
		Location:     strings.TrimSpace(in.Location),
		Organization: strings.TrimSpace(in.Organization),
		CreatedAt:    s.now(),
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	// Keep the address as typed in the session; the directory stores it normalized.
	p := created.Principal(s.AvatarURL(in.Email))
	p.Email = in.Email
	return p, nil
}
