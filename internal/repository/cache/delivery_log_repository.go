package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	deliveryKeyPrefix = "webhook:delivery:"
	pendingKeyPrefix  = "webhook:delivery:pending:"
)

// DeliveryLogRepository shares the delivery log between instances behind a
// load balancer.
type DeliveryLogRepository struct {
	rdb *redis.Client
}

func NewDeliveryLogRepository(rdb *redis.Client) repository.DeliveryLogRepository {
	return &DeliveryLogRepository{rdb: rdb}
}

func (r *DeliveryLogRepository) Get(ctx context.Context, responseID string) (*dto.WebhookResponse, bool, error) {
	raw, err := r.rdb.Get(ctx, deliveryKeyPrefix+responseID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read delivery %s: %w", responseID, err)
	}

	var res dto.WebhookResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("failed to decode delivery %s: %w", responseID, err)
	}
	return &res, true, nil
}

func (r *DeliveryLogRepository) Put(ctx context.Context, responseID string, res *dto.WebhookResponse, ttl time.Duration) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, deliveryKeyPrefix+responseID, raw, ttl).Err()
}

func (r *DeliveryLogRepository) Claim(ctx context.Context, responseID string, ttl time.Duration) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, pendingKeyPrefix+responseID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim delivery %s: %w", responseID, err)
	}
	return ok, nil
}
