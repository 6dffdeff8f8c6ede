package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrDuplicateAccount    = errors.New("account already exists")
	ErrAccountNotFound     = errors.New("account not found")
	ErrUnknownRole         = errors.New("unknown role")
	ErrSubmissionInFlight  = errors.New("another submission is already in progress")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("access forbidden")
	ErrListingNotFound     = errors.New("listing not found")
	ErrInvalidDonation     = errors.New("invalid donation")
)
