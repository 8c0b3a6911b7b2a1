package service

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/pkg/events"
	pktNats "restaurant-chatbot-be/pkg/nats"
	restaurantEvents "restaurant-chatbot-be/pkg/restaurant/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const notificationDurable = "staff-feed-worker"

// FeedDelivery pushes events to connected staff dashboards.
// Implemented by the websocket Hub.
type FeedDelivery interface {
	Broadcast(event events.Event)
}

// EventSubscriber is the part of the NATS subscriber this service needs.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

type NotificationService struct {
	subscriber EventSubscriber
	delivery   FeedDelivery
	alerts     message.Publisher
	alertTopic string
	staffEmail string
	logger     logger.ILogger
}

// NewNotificationService wires the bus to the feed. With an empty staffEmail
// or nil alerts publisher no email jobs are queued.
func NewNotificationService(
	sub EventSubscriber,
	delivery FeedDelivery,
	alerts message.Publisher,
	alertTopic string,
	staffEmail string,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		alerts:     alerts,
		alertTopic: alertTopic,
		staffEmail: staffEmail,
		logger:     log,
	}
}

// Start begins listening to every restaurant event.
func (s *NotificationService) Start(ctx context.Context) error {
	subject := pktNats.SubjectPrefix + ".>"
	if err := s.subscriber.Subscribe(ctx, subject, notificationDurable, s.HandleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NotificationService", "Listening to "+subject, nil)
	return nil
}

// HandleEvent fans an event out to the staff feed and queues a staff email
// for events someone has to act on. A queue failure is returned so the bus
// redelivers.
func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", "Processing event", map[string]interface{}{
		"type":     event.EventType(),
		"event_id": event.EventID(),
	})

	if s.delivery != nil {
		s.delivery.Broadcast(event)
	}

	if s.alerts == nil || s.staffEmail == "" {
		return nil
	}
	alert, ok := BuildStaffAlert(event)
	if !ok {
		return nil
	}
	alert.To = s.staffEmail

	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	msg := message.NewMessage(event.EventID(), payload)
	if err := s.alerts.Publish(s.alertTopic, msg); err != nil {
		s.logger.Error("NotificationService", "Failed to queue staff alert", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// BuildStaffAlert renders the email for events that need a human. Orders and
// feedback only go to the live feed.
func BuildStaffAlert(event events.Event) (dto.StaffAlertMessage, bool) {
	p := event.Payload()
	alert := dto.StaffAlertMessage{
		EventId:   event.EventID(),
		EventType: event.EventType(),
	}

	switch event.EventType() {
	case restaurantEvents.ReservationCreated:
		alert.Subject = fmt.Sprintf("New reservation #%v", p["reservation_id"])
		alert.Lines = []string{
			fmt.Sprintf("Guests: %v", p["guests"]),
			fmt.Sprintf("Reserved for: %v", p["reserved_for"]),
			fmt.Sprintf("Guest wrote: %v", p["requested"]),
			fmt.Sprintf("Session: %v", p["session_id"]),
		}
	case restaurantEvents.SupportTicketCreated:
		alert.Subject = fmt.Sprintf("Support ticket %v (%v)", p["reference"], p["issue_type"])
		alert.Lines = []string{
			fmt.Sprintf("Customer: %v", orDash(p["customer_name"])),
			fmt.Sprintf("Phone: %v", orDash(p["customer_phone"])),
			fmt.Sprintf("Issue: %v", p["issue_type"]),
			fmt.Sprintf("Description: %v", orDash(p["description"])),
		}
	default:
		return alert, false
	}
	return alert, true
}

func orDash(v interface{}) interface{} {
	if s, ok := v.(string); ok && s == "" {
		return "-"
	}
	if v == nil {
		return "-"
	}
	return v
}
