package ports

import (
	"context"
	"time"

	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
)

// DonationInput is a donor's surplus food post.
type DonationInput struct {
	FoodType           string
	Category           string
	Quantity           string
	Unit               string
	Description        string
	ExpiresAt          time.Time
	PickupAddress      string
	PickupInstructions string
	ContactPhone       string
	Dietary            catalog.Dietary
}

// DonationReceipt is returned once a post has been accepted.
type DonationReceipt struct {
	ID       string
	PostedAt time.Time
}

// DonationService simulates posting and claiming food.
type DonationService interface {
	Post(ctx context.Context, sessionID string, donor *domain.Principal, input DonationInput) (*DonationReceipt, error)
	Claim(ctx context.Context, sessionID string, ngo *domain.Principal, listingID string) (*catalog.FoodListing, error)
}
