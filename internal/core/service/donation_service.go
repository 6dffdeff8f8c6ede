package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/ports"
	"github.com/foodshare/platform/internal/core/session"
	"github.com/foodshare/platform/internal/pkg/latency"
)

// DonationOptions configures a DonationService.
type DonationOptions struct {
	PostDelay  time.Duration
	ClaimDelay time.Duration
	Wait       latency.Func
	Now        func() time.Time
	NewID      func() string
}

// DonationService simulates the donor post and NGO claim flows against the
// fixed catalog. Neither flow persists anything; a post only notifies NGOs.
type DonationService struct {
	catalog    *catalog.Catalog
	guard      ports.SubmissionGuard
	dispatcher ports.NotificationDispatcher
	postDelay  time.Duration
	claimDelay time.Duration
	wait       latency.Func
	now        func() time.Time
	newID      func() string
	logger     zerolog.Logger
}

var _ ports.DonationService = (*DonationService)(nil)

func NewDonationService(cat *catalog.Catalog, guard ports.SubmissionGuard, dispatcher ports.NotificationDispatcher, opts DonationOptions, logger zerolog.Logger) *DonationService {
	s := &DonationService{
		catalog:    cat,
		guard:      guard,
		dispatcher: dispatcher,
		postDelay:  opts.PostDelay,
		claimDelay: opts.ClaimDelay,
		wait:       opts.Wait,
		now:        opts.Now,
		newID:      opts.NewID,
		logger:     logger,
	}
	if s.wait == nil {
		s.wait = latency.Simulate
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Post accepts a donation from a donor, waits out the simulated backend
// latency and queues a notification for NGOs in the area.
func (s *DonationService) Post(ctx context.Context, sessionID string, donor *domain.Principal, input ports.DonationInput) (*ports.DonationReceipt, error) {
	if donor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if donor.Role != domain.RoleDonor {
		return nil, domain.ErrForbidden
	}
	if err := validateDonation(input); err != nil {
		return nil, err
	}

	release, err := session.Hold(ctx, s.guard, sessionID, session.OpPost, s.logger)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.wait(ctx, s.postDelay); err != nil {
		return nil, fmt.Errorf("post donation: %w", err)
	}

	receipt := &ports.DonationReceipt{ID: s.newID(), PostedAt: s.now()}

	n := ports.DonationNotification{
		DonationID:    receipt.ID,
		DonorEmail:    donor.Email,
		DonorName:     donor.DisplayName(),
		FoodType:      input.FoodType,
		Quantity:      strings.TrimSpace(input.Quantity + " " + input.Unit),
		PickupAddress: input.PickupAddress,
		ExpiresAt:     input.ExpiresAt,
		PostedAt:      receipt.PostedAt,
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.Enqueue(ctx, n); err != nil {
			// The donation is accepted even if nobody gets told about it.
			s.logger.Warn().Err(err).Str("donation_id", receipt.ID).Msg("failed to enqueue donation notification")
		}
	}

	s.logger.Info().
		Str("donation_id", receipt.ID).
		Str("donor", donor.Email).
		Str("category", input.Category).
		Msg("donation posted")

	return receipt, nil
}

// Claim reserves a listing for an NGO after the simulated latency.
func (s *DonationService) Claim(ctx context.Context, sessionID string, ngo *domain.Principal, listingID string) (*catalog.FoodListing, error) {
	if ngo == nil {
		return nil, domain.ErrUnauthenticated
	}
	if ngo.Role != domain.RoleNGO {
		return nil, domain.ErrForbidden
	}

	listing, ok := s.catalog.Listing(listingID)
	if !ok {
		return nil, domain.ErrListingNotFound
	}

	release, err := session.Hold(ctx, s.guard, sessionID, session.OpClaim, s.logger)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.wait(ctx, s.claimDelay); err != nil {
		return nil, fmt.Errorf("claim listing: %w", err)
	}

	s.logger.Info().
		Str("listing_id", listing.ID).
		Str("ngo", ngo.Email).
		Msg("listing claimed")

	return &listing, nil
}

func validateDonation(in ports.DonationInput) error {
	required := []string{in.FoodType, in.Category, in.Quantity, in.Unit, in.PickupAddress, in.ContactPhone}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return domain.ErrInvalidDonation
		}
	}
	if in.ExpiresAt.IsZero() {
		return domain.ErrInvalidDonation
	}
	if !slices.ContainsFunc(catalog.PostCategories, func(c struct{ Value, Label string }) bool { return c.Value == in.Category }) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidDonation, in.Category)
	}
	if !slices.Contains(catalog.PostUnits, in.Unit) {
		return fmt.Errorf("%w: unknown unit %q", domain.ErrInvalidDonation, in.Unit)
	}
	return nil
}
