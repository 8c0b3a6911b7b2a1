package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/internal/mapper"
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/internal/repository"
	"restaurant-chatbot-be/pkg/dialog"
	"restaurant-chatbot-be/pkg/dialog/session"
	"restaurant-chatbot-be/pkg/fulfillment"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrSessionNotFound = errors.New("session not found")

type IWebhookService interface {
	Handle(ctx context.Context, req *dto.WebhookRequest) (*dto.WebhookResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	ResetSession(ctx context.Context, id string) error
	Health(ctx context.Context) *dto.HealthResponse
}

type webhookService struct {
	engine        *dialog.Engine
	sessions      *session.Manager
	selector      *fulfillment.Selector
	deliveries    repository.DeliveryLogRepository
	restaurant    IRestaurantService
	mapper        *mapper.SessionMapper
	logger        logger.ILogger
	deliveryTTL   time.Duration
	duplicateWait time.Duration
}

func NewWebhookService(
	engine *dialog.Engine,
	sessions *session.Manager,
	selector *fulfillment.Selector,
	deliveries repository.DeliveryLogRepository,
	restaurant IRestaurantService,
	logger logger.ILogger,
	deliveryTTL time.Duration,
) IWebhookService {
	return &webhookService{
		engine:        engine,
		sessions:      sessions,
		selector:      selector,
		deliveries:    deliveries,
		restaurant:    restaurant,
		mapper:        mapper.NewSessionMapper(),
		logger:        logger,
		deliveryTTL:   deliveryTTL,
		duplicateWait: 5 * time.Second,
	}
}

const (
	// maxQueryTextRunes caps the utterance handed to the engine.
	maxQueryTextRunes = 2000
	duplicatePoll     = 20 * time.Millisecond
)

// Handle runs one platform turn. The first delivery of a responseId claims
// it and runs the turn; redeliveries, including ones arriving while the
// first is still running, are answered from the delivery log.
func (s *webhookService) Handle(ctx context.Context, req *dto.WebhookRequest) (*dto.WebhookResponse, error) {
	sessionID := session.IDFromPath(req.Session)

	ctx, span := otel.Tracer("restaurant-chatbot-be/webhook").Start(ctx, "WebhookService.Handle",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("dialog.intent", req.QueryResult.Intent.DisplayName),
		),
	)
	defer span.End()

	if req.ResponseId != "" {
		if cached := s.loggedDelivery(ctx, req.ResponseId); cached != nil {
			s.logger.Info("WEBHOOK", "Duplicate delivery answered from log", map[string]interface{}{
				"response_id": req.ResponseId,
				"session_id":  sessionID,
			})
			span.SetAttributes(attribute.Bool("webhook.duplicate", true))
			return cached, nil
		}

		claimed, err := s.deliveries.Claim(ctx, req.ResponseId, s.deliveryTTL)
		if err != nil {
			s.logger.Warn("WEBHOOK", "Delivery claim failed", map[string]interface{}{
				"response_id": req.ResponseId,
				"error":       err.Error(),
			})
		} else if !claimed {
			span.SetAttributes(attribute.Bool("webhook.duplicate", true))
			if res := s.awaitDelivery(ctx, req.ResponseId); res != nil {
				s.logger.Info("WEBHOOK", "Concurrent duplicate answered from log", map[string]interface{}{
					"response_id": req.ResponseId,
					"session_id":  sessionID,
				})
				return res, nil
			}
			s.logger.Warn("WEBHOOK", "Duplicate delivery still in progress", map[string]interface{}{
				"response_id": req.ResponseId,
				"session_id":  sessionID,
			})
			res := s.selector.Render(dialog.FailTerminal(dialog.ErrSystem, ""))
			return &res, nil
		}
	}

	text := req.QueryResult.QueryText
	if utf8.RuneCountInString(text) > maxQueryTextRunes {
		s.logger.Debug("WEBHOOK", "Query text truncated", map[string]interface{}{
			"session_id": sessionID,
			"runes":      utf8.RuneCountInString(text),
		})
		text = string([]rune(text)[:maxQueryTextRunes])
	}

	turn := dialog.Turn{
		SessionID: sessionID,
		Intent:    req.QueryResult.Intent.DisplayName,
		Text:      text,
		Params:    dialog.ResolveParams(req.QueryResult.Parameters),
	}
	result := s.engine.HandleTurn(ctx, turn)
	span.SetAttributes(attribute.String("dialog.result", string(result.Kind)))

	res := s.selector.Render(result)

	if req.ResponseId != "" {
		if err := s.deliveries.Put(ctx, req.ResponseId, &res, s.deliveryTTL); err != nil {
			s.logger.Warn("WEBHOOK", "Delivery log write failed", map[string]interface{}{
				"response_id": req.ResponseId,
				"error":       err.Error(),
			})
		}
	}
	return &res, nil
}

// loggedDelivery returns the stored reply for responseID, or nil. Read
// failures are logged and treated as unseen.
func (s *webhookService) loggedDelivery(ctx context.Context, responseID string) *dto.WebhookResponse {
	cached, found, err := s.deliveries.Get(ctx, responseID)
	if err != nil {
		s.logger.Warn("WEBHOOK", "Delivery log read failed", map[string]interface{}{
			"response_id": responseID,
			"error":       err.Error(),
		})
		return nil
	}
	if !found {
		return nil
	}
	return cached
}

// awaitDelivery polls the log until the claiming call stores its reply,
// the wait budget runs out or ctx ends.
func (s *webhookService) awaitDelivery(ctx context.Context, responseID string) *dto.WebhookResponse {
	deadline := time.NewTimer(s.duplicateWait)
	defer deadline.Stop()
	ticker := time.NewTicker(duplicatePoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline.C:
			return nil
		case <-ticker.C:
			if res := s.loggedDelivery(ctx, responseID); res != nil {
				return res
			}
		}
	}
}

func (s *webhookService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	snap, found := s.sessions.Snapshot(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	return s.mapper.ToResponse(snap), nil
}

func (s *webhookService) ResetSession(ctx context.Context, id string) error {
	if !s.sessions.Reset(id) {
		return ErrSessionNotFound
	}
	s.logger.Info("WEBHOOK", "Session reset by operator", map[string]interface{}{"session_id": id})
	return nil
}

func (s *webhookService) Health(ctx context.Context) *dto.HealthResponse {
	res := &dto.HealthResponse{
		Status:         "ok",
		Database:       "up",
		ActiveSessions: s.sessions.Count(),
	}
	if err := s.restaurant.Ping(ctx); err != nil {
		res.Status = "degraded"
		res.Database = "down"
	}
	return res
}
