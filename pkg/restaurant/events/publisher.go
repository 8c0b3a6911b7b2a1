package events

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/pkg/logger"
	pkgEvents "restaurant-chatbot-be/pkg/events"
	pktNats "restaurant-chatbot-be/pkg/nats"
)

const (
	OrderCreated         = "ORDER_CREATED"
	ReservationCreated   = "RESERVATION_CREATED"
	SupportTicketCreated = "SUPPORT_TICKET_CREATED"
	FeedbackSubmitted    = "FEEDBACK_SUBMITTED"
)

// Publisher announces completed restaurant writes to the rest of the system.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *entity.Order)
	PublishReservationCreated(ctx context.Context, reservation *entity.Reservation)
	PublishSupportTicketCreated(ctx context.Context, ticket *entity.SupportTicket)
	PublishFeedbackSubmitted(ctx context.Context, feedback *entity.CustomerFeedback)
}

// EventSink is the part of the NATS publisher used here.
type EventSink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// NatsPublisher implements Publisher over JetStream. A nil sink disables it.
type NatsPublisher struct {
	sink   EventSink
	logger logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	p := &NatsPublisher{logger: logger}
	if publisher != nil {
		p.sink = publisher
	}
	return p
}

// NewPublisherWithSink is used by tests to capture events.
func NewPublisherWithSink(sink EventSink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{sink: sink, logger: logger}
}

func (p *NatsPublisher) PublishOrderCreated(ctx context.Context, order *entity.Order) {
	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, map[string]interface{}{
			"item":     it.ItemName,
			"quantity": it.Quantity,
		})
	}
	data := map[string]interface{}{
		"order_id":    order.Id,
		"session_id":  order.SessionId,
		"status":      string(order.Status),
		"total_price": order.TotalPrice,
		"items":       items,
		"entity_type": "order",
	}
	if order.EstimatedTime != nil {
		data["estimated_time"] = *order.EstimatedTime
	}
	p.publish(ctx, OrderCreated, data)
}

func (p *NatsPublisher) PublishReservationCreated(ctx context.Context, reservation *entity.Reservation) {
	p.publish(ctx, ReservationCreated, map[string]interface{}{
		"reservation_id": reservation.Id,
		"session_id":     reservation.SessionId,
		"guests":         reservation.Guests,
		"reserved_for":   reservation.ReservedFor,
		"requested":      reservation.RequestedText,
		"status":         string(reservation.Status),
		"entity_type":    "reservation",
	})
}

func (p *NatsPublisher) PublishSupportTicketCreated(ctx context.Context, ticket *entity.SupportTicket) {
	p.publish(ctx, SupportTicketCreated, map[string]interface{}{
		"ticket_id":      ticket.Id,
		"reference":      ticket.Reference.String(),
		"session_id":     ticket.SessionId,
		"customer_name":  deref(ticket.CustomerName),
		"customer_phone": deref(ticket.CustomerPhone),
		"issue_type":     ticket.IssueType,
		"description":    ticket.Description,
		"entity_type":    "support_ticket",
	})
}

func (p *NatsPublisher) PublishFeedbackSubmitted(ctx context.Context, feedback *entity.CustomerFeedback) {
	p.publish(ctx, FeedbackSubmitted, map[string]interface{}{
		"feedback_id":   feedback.Id,
		"session_id":    feedback.SessionId,
		"customer_name": deref(feedback.CustomerName),
		"feedback_text": feedback.FeedbackText,
		"source":        feedback.SourcePlatform,
		"entity_type":   "feedback",
	})
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p == nil || p.sink == nil {
		return
	}
	evt := pkgEvents.NewBaseEvent(eventType, data)
	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("RESTAURANT", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
