package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/internal/repository/specification"
	"restaurant-chatbot-be/internal/repository/unitofwork"
	"restaurant-chatbot-be/pkg/dialog"
	"restaurant-chatbot-be/pkg/heuristic"
	restaurantEvents "restaurant-chatbot-be/pkg/restaurant/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	etaMinMinutes = 20
	etaMaxMinutes = 40
)

// IRestaurantService is the persistence port of the dialog engine.
type IRestaurantService interface {
	dialog.Store
	// Ping reports whether the database answers.
	Ping(ctx context.Context) error
}

type restaurantService struct {
	uowFactory     unitofwork.RepositoryFactory
	publisher      restaurantEvents.Publisher
	logger         logger.ILogger
	sourcePlatform string
	now            func() time.Time
	ping           func(ctx context.Context) error
}

func NewRestaurantService(
	uowFactory unitofwork.RepositoryFactory,
	publisher restaurantEvents.Publisher,
	logger logger.ILogger,
	sourcePlatform string,
	ping func(ctx context.Context) error,
) IRestaurantService {
	return &restaurantService{
		uowFactory:     uowFactory,
		publisher:      publisher,
		logger:         logger,
		sourcePlatform: sourcePlatform,
		now:            time.Now,
		ping:           ping,
	}
}

func (s *restaurantService) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *restaurantService) CreateOrder(ctx context.Context, req dialog.OrderRequest) (*entity.Order, error) {
	if len(req.Lines) == 0 {
		return nil, dialog.NewStoreError(dialog.ErrOrderCreationFailed, "No items in order", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, classify(dialog.ErrOrderCreationFailed, "Failed to create order", err)
	}
	defer uow.Rollback()

	names := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		names = append(names, line.Item)
	}
	menu, err := uow.MenuItemRepository().FindAll(ctx, specification.MenuNamesIn{Names: names})
	if err != nil {
		return nil, classify(dialog.ErrOrderCreationFailed, "Failed to create order", err)
	}
	prices := make(map[string]float64, len(menu))
	for _, item := range menu {
		prices[item.Name] = item.Price
	}

	eta := s.now().Add(time.Duration(etaMinMinutes+rand.Intn(etaMaxMinutes-etaMinMinutes+1)) * time.Minute)
	order := &entity.Order{
		SessionId:     req.SessionID,
		Status:        entity.OrderStatusConfirmed,
		EstimatedTime: &eta,
	}
	for _, line := range req.Lines {
		// Unknown dishes are still recorded; staff price them by hand.
		price := prices[line.Item]
		order.Items = append(order.Items, &entity.OrderItem{
			ItemName:  strings.ToLower(strings.ReplaceAll(strings.TrimSpace(line.Item), " ", "_")),
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
		order.TotalPrice += price * float64(line.Quantity)
	}

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, classify(dialog.ErrOrderCreationFailed, "Failed to create order", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, classify(dialog.ErrOrderCreationFailed, "Failed to create order", err)
	}

	s.logger.Info("RESTAURANT", "Order created", map[string]interface{}{
		"order_id":   order.Id,
		"session_id": req.SessionID,
		"items":      heuristic.FormatOrderItems(req.Lines),
	})
	s.publisher.PublishOrderCreated(ctx, order)
	return order, nil
}

// GetOrderStatus keeps only the digits of orderID. A missing order is (nil, nil).
func (s *restaurantService) GetOrderStatus(ctx context.Context, orderID string) (*entity.Order, error) {
	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, orderID)
	if clean == "" {
		return nil, dialog.NewStoreError(dialog.ErrInvalidOrderID, orderID, nil)
	}
	id, err := strconv.ParseUint(clean, 10, 32)
	if err != nil {
		// Too large to be one of ours.
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: uint(id)},
		specification.PreloadOrderItems{},
	)
	if err != nil {
		return nil, classify(dialog.ErrDatabase, clean, err)
	}
	return order, nil
}

// GetMenuItemDetails tries the canonical key first, then a ranked partial match.
func (s *restaurantService) GetMenuItemDetails(ctx context.Context, name string) (*entity.MenuItem, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	if key == "" {
		return nil, nil
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).MenuItemRepository()
	item, err := repo.FindOne(ctx, specification.MenuNameEquals{Name: key})
	if err != nil {
		return nil, classify(dialog.ErrDatabase, key, err)
	}
	if item != nil {
		return item, nil
	}

	item, err = repo.FindOne(ctx, specification.MenuNameLike{Fragment: key})
	if err != nil {
		return nil, classify(dialog.ErrDatabase, key, err)
	}
	return item, nil
}

func (s *restaurantService) CreateSupportTicket(ctx context.Context, req dialog.SupportTicketRequest) (*entity.SupportTicket, error) {
	ticket := &entity.SupportTicket{
		Reference:     uuid.New(),
		SessionId:     req.SessionID,
		CustomerName:  req.Name,
		CustomerPhone: req.Phone,
		IssueType:     req.IssueType,
		Description:   req.Description,
		Status:        entity.TicketStatusOpen,
		Metadata:      req.Metadata,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SupportTicketRepository().Create(ctx, ticket); err != nil {
		return nil, classify(dialog.ErrSupportTicketFailed, "Failed to create support ticket", err)
	}

	s.logger.Info("RESTAURANT", "Support ticket created", map[string]interface{}{
		"ticket_id":  ticket.Id,
		"reference":  ticket.Reference.String(),
		"session_id": req.SessionID,
		"issue_type": req.IssueType,
	})
	s.publisher.PublishSupportTicketCreated(ctx, ticket)
	return ticket, nil
}

func (s *restaurantService) CreateReservation(ctx context.Context, req dialog.ReservationRequest) (*entity.Reservation, error) {
	if req.When.IsZero() {
		return nil, dialog.NewStoreError(dialog.ErrReservationFailed, "Invalid date format: "+req.Requested, nil)
	}

	reservation := &entity.Reservation{
		SessionId:     req.SessionID,
		Guests:        req.Guests,
		ReservedFor:   req.When,
		RequestedText: req.Requested,
		Status:        entity.ReservationStatusPending,
		Metadata:      req.Metadata,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ReservationRepository().Create(ctx, reservation); err != nil {
		return nil, classify(dialog.ErrReservationFailed, "Reservations system unavailable", err)
	}

	s.logger.Info("RESTAURANT", "Reservation created", map[string]interface{}{
		"reservation_id": reservation.Id,
		"session_id":     req.SessionID,
		"guests":         req.Guests,
		"reserved_for":   req.When.Format("2006-01-02 15:04"),
	})
	s.publisher.PublishReservationCreated(ctx, reservation)
	return reservation, nil
}

func (s *restaurantService) SubmitCustomerFeedback(ctx context.Context, req dialog.FeedbackRequest) (*entity.CustomerFeedback, error) {
	feedback := &entity.CustomerFeedback{
		SessionId:      req.SessionID,
		CustomerName:   req.Name,
		CustomerPhone:  req.Phone,
		FeedbackText:   req.Text,
		SourcePlatform: s.sourcePlatform,
		Metadata:       req.Metadata,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CustomerFeedbackRepository().Create(ctx, feedback); err != nil {
		return nil, classify(dialog.ErrFeedbackFailed, "Failed to submit feedback", err)
	}

	s.logger.Info("RESTAURANT", "Feedback submitted", map[string]interface{}{
		"feedback_id": feedback.Id,
		"session_id":  req.SessionID,
	})
	s.publisher.PublishFeedbackSubmitted(ctx, feedback)
	return feedback, nil
}

// classify wraps a driver error. Postgres errors keep their code in the
// message so operators can grep for it; anything else is reported as is.
func classify(kind dialog.ErrorKind, message string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return dialog.NewStoreError(kind, fmt.Sprintf("%s (%s)", message, pgErr.Code), err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dialog.NewStoreError(dialog.ErrDatabase, "Temporary database issue", err)
	}
	return dialog.NewStoreError(kind, message, err)
}
