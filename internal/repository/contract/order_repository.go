package contract

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/repository/specification"
)

type OrderRepository interface {
	// Create inserts the order and its items; ids are written back.
	Create(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
}
