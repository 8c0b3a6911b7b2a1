package memory

import (
	"context"
	"time"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/internal/repository"

	"github.com/patrickmn/go-cache"
)

const pendingPrefix = "pending:"

// DeliveryLogRepository is the single-instance delivery log, used when no
// Redis is configured.
type DeliveryLogRepository struct {
	cache *cache.Cache
}

func NewDeliveryLogRepository(ttl, purgeInterval time.Duration) repository.DeliveryLogRepository {
	return &DeliveryLogRepository{
		cache: cache.New(ttl, purgeInterval),
	}
}

func (r *DeliveryLogRepository) Get(_ context.Context, responseID string) (*dto.WebhookResponse, bool, error) {
	if x, found := r.cache.Get(responseID); found {
		if res, ok := x.(dto.WebhookResponse); ok {
			return &res, true, nil
		}
	}
	return nil, false, nil
}

func (r *DeliveryLogRepository) Put(_ context.Context, responseID string, res *dto.WebhookResponse, ttl time.Duration) error {
	r.cache.Set(responseID, *res, ttl)
	return nil
}

func (r *DeliveryLogRepository) Claim(_ context.Context, responseID string, ttl time.Duration) (bool, error) {
	// Add fails when the key is already present.
	return r.cache.Add(pendingPrefix+responseID, struct{}{}, ttl) == nil, nil
}
