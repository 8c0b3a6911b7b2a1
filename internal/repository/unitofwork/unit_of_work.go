package unitofwork

import (
	"context"

	"restaurant-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrderRepository() contract.OrderRepository
	MenuItemRepository() contract.MenuItemRepository
	ReservationRepository() contract.ReservationRepository
	SupportTicketRepository() contract.SupportTicketRepository
	CustomerFeedbackRepository() contract.CustomerFeedbackRepository
}
