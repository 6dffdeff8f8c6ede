package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/ports"
)

// LogNotifier announces donations to nearby NGOs by writing them to the log.
type LogNotifier struct {
	log zerolog.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, d ports.DonationNotification) error {
	n.log.Info().
		Str("donation_id", d.DonationID).
		Str("donor", d.DonorName).
		Str("food_type", d.FoodType).
		Str("quantity", d.Quantity).
		Str("pickup_address", d.PickupAddress).
		Time("expires_at", d.ExpiresAt).
		Msg("NGOs notified of new donation")
	return nil
}
