package contract

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/repository/specification"
)

type CustomerFeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.CustomerFeedback) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerFeedback, error)
}
