package service

import (
	"context"
	"encoding/json"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	StaffAlertTopic  = "staff_alerts"
	maxAlertAttempts = 3
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	mailer     mailer.IEmailService
	logger     logger.ILogger

	// Redeliveries arrive as fresh copies, so attempts are counted by message id.
	// Only the Consume goroutine touches it.
	attempts map[string]int
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	mailer mailer.IEmailService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		mailer:     mailer,
		logger:     logger,
		attempts:   make(map[string]int),
	}
}

// Consume sends staff alert emails until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.StaffAlertMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal staff alert", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Malformed, retrying will not help.
		return
	}

	if err := cs.mailer.SendStaffAlert(payload.To, payload.Subject, payload.Lines); err != nil {
		cs.attempts[msg.UUID]++
		attempts := cs.attempts[msg.UUID]

		details := map[string]interface{}{
			"event_id": payload.EventId,
			"attempts": attempts,
			"error":    err.Error(),
		}
		if attempts < maxAlertAttempts {
			cs.logger.Warn("ConsumerService", "Staff alert failed, retrying", details)
			msg.Nack()
			return
		}
		cs.logger.Error("ConsumerService", "Staff alert dropped", details)
		delete(cs.attempts, msg.UUID)
		msg.Ack()
		return
	}

	delete(cs.attempts, msg.UUID)
	cs.logger.Info("ConsumerService", "Staff alert sent", map[string]interface{}{
		"event_id":   payload.EventId,
		"event_type": payload.EventType,
	})
	msg.Ack()
}
