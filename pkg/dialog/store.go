package dialog

import (
	"context"
	"fmt"
	"time"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/pkg/heuristic"
)

// Store is everything the engine needs from persistence.
// Implementations report failures as *StoreError where they can; any other
// error is mapped to a per-operation default kind.
type Store interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*entity.Order, error)
	GetOrderStatus(ctx context.Context, orderID string) (*entity.Order, error)
	GetMenuItemDetails(ctx context.Context, name string) (*entity.MenuItem, error)
	CreateSupportTicket(ctx context.Context, req SupportTicketRequest) (*entity.SupportTicket, error)
	CreateReservation(ctx context.Context, req ReservationRequest) (*entity.Reservation, error)
	SubmitCustomerFeedback(ctx context.Context, req FeedbackRequest) (*entity.CustomerFeedback, error)
}

type OrderRequest struct {
	SessionID string
	Lines     []heuristic.OrderLine
}

type SupportTicketRequest struct {
	SessionID   string
	Name        *string
	Phone       *string
	IssueType   string
	Description string
	Metadata    map[string]interface{}
}

type ReservationRequest struct {
	SessionID string
	Guests    int
	When      time.Time
	// Requested is the representation the guest gave, kept for staff.
	Requested string
	Metadata  map[string]interface{}
}

type FeedbackRequest struct {
	SessionID string
	Name      *string
	Phone     *string
	Text      string
	Metadata  map[string]interface{}
}

// StoreError is a classified persistence failure.
type StoreError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(kind ErrorKind, message string, err error) *StoreError {
	return &StoreError{Kind: kind, Message: message, Err: err}
}
