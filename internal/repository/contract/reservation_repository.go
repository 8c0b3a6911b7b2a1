package contract

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/repository/specification"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reservation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reservation, error)
}
