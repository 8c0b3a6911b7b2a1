package repository

import (
	"context"
	"time"

	"restaurant-chatbot-be/internal/dto"
)

// DeliveryLogRepository remembers the reply sent for each platform delivery,
// so a redelivered webhook is answered without running the turn again.
type DeliveryLogRepository interface {
	// Get returns the stored reply, or found=false for an unseen delivery.
	Get(ctx context.Context, responseID string) (*dto.WebhookResponse, bool, error)
	Put(ctx context.Context, responseID string, res *dto.WebhookResponse, ttl time.Duration) error
	// Claim atomically marks a delivery as in progress. Only the first caller
	// for a responseID gets true until the claim expires.
	Claim(ctx context.Context, responseID string, ttl time.Duration) (bool, error)
}
