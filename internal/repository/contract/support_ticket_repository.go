package contract

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/repository/specification"
)

type SupportTicketRepository interface {
	Create(ctx context.Context, ticket *entity.SupportTicket) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SupportTicket, error)
}
