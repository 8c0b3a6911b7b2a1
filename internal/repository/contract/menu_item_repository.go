package contract

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/repository/specification"
)

type MenuItemRepository interface {
	// Upsert inserts or updates by name.
	Upsert(ctx context.Context, item *entity.MenuItem) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MenuItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MenuItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
