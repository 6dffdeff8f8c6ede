package ports

import (
	"context"
	"time"
)

// DonationNotification tells nearby NGOs that food has been posted.
type DonationNotification struct {
	DonationID    string
	DonorEmail    string
	DonorName     string
	FoodType      string
	Quantity      string
	PickupAddress string
	ExpiresAt     time.Time
	PostedAt      time.Time
}

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, n DonationNotification) error
}

// NotificationDispatcher queues notifications for asynchronous delivery.
type NotificationDispatcher interface {
	Enqueue(ctx context.Context, n DonationNotification) error
}
