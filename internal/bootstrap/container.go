package bootstrap

import (
	"context"
	"log"

	"restaurant-chatbot-be/internal/config"
	"restaurant-chatbot-be/internal/controller"
	"restaurant-chatbot-be/internal/handler"
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/internal/pkg/mailer"
	"restaurant-chatbot-be/internal/repository"
	"restaurant-chatbot-be/internal/repository/cache"
	"restaurant-chatbot-be/internal/repository/memory"
	"restaurant-chatbot-be/internal/repository/unitofwork"
	"restaurant-chatbot-be/internal/service"
	"restaurant-chatbot-be/internal/websocket"
	"restaurant-chatbot-be/pkg/dialog"
	"restaurant-chatbot-be/pkg/dialog/session"
	"restaurant-chatbot-be/pkg/dialog/state"
	"restaurant-chatbot-be/pkg/events"
	"restaurant-chatbot-be/pkg/fulfillment"
	pktNats "restaurant-chatbot-be/pkg/nats"
	restaurantEvents "restaurant-chatbot-be/pkg/restaurant/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	SessionController controller.ISessionController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Staff feed
	StaffFeedHandler *handler.StaffFeedHandler
	WebSocketHub     *websocket.Hub

	closers []func()
}

// inProcessSink hands events straight to the notification service when
// there is no NATS connection.
type inProcessSink struct {
	notifications *service.NotificationService
}

func (s inProcessSink) Publish(ctx context.Context, event events.Event) error {
	return s.notifications.HandleEvent(ctx, event)
}

// NewContainer wires every dependency. ctx bounds the background workers.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Infrastructure
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	var rdb *redis.Client
	var deliveries repository.DeliveryLogRepository
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		deliveries = cache.NewDeliveryLogRepository(rdb)
	} else {
		deliveries = memory.NewDeliveryLogRepository(cfg.Session.DeliveryTTL, cfg.Session.PurgeInterval)
	}

	// WebSocket Hub
	feedLogger := logger.NewIsolatedLogger(cfg.App.FeedLogFilePath)
	wsHub := websocket.NewHub(rdb, feedLogger)
	go wsHub.Run(ctx)

	// 3. Staff alerts
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var alerts message.Publisher
	if cfg.SMTP.Enabled() {
		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
		alerts = pubSub
		c.ConsumerService = service.NewConsumerService(pubSub, service.StaffAlertTopic, emailService, sysLogger)
	}

	var subscriber service.EventSubscriber
	if natsSub != nil {
		subscriber = natsSub
	}
	notifService := service.NewNotificationService(subscriber, wsHub, alerts, service.StaffAlertTopic, cfg.SMTP.StaffAlertEmail, feedLogger)
	if subscriber != nil {
		if err := notifService.Start(ctx); err != nil {
			log.Printf("[WARN] Staff feed worker not started: %v", err)
		}
	}

	var eventPublisher restaurantEvents.Publisher
	if natsPub != nil {
		eventPublisher = restaurantEvents.NewNatsPublisher(natsPub, sysLogger)
	} else {
		eventPublisher = restaurantEvents.NewPublisherWithSink(inProcessSink{notifications: notifService}, sysLogger)
	}

	// 4. Dialog
	ping := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	restaurantService := service.NewRestaurantService(uowFactory, eventPublisher, sysLogger, cfg.Dialog.SourcePlatform, ping)

	sessions := session.NewManager(memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.PurgeInterval))
	sessions.OnExpired(func(id string) {
		sysLogger.Info("SESSION", "Session expired", map[string]interface{}{"session_id": id})
	})
	engine := dialog.NewEngine(restaurantService, sessions, state.NewManager(sysLogger), sysLogger, dialog.Config{
		MaxRetries:  cfg.Dialog.ReservationMaxRetries,
		MinGuests:   cfg.Dialog.ReservationMinGuests,
		MaxGuests:   cfg.Dialog.ReservationMaxGuests,
		DefaultYear: cfg.Dialog.DefaultYear,
	})

	webhookService := service.NewWebhookService(
		engine,
		sessions,
		fulfillment.NewSelector(),
		deliveries,
		restaurantService,
		sysLogger,
		cfg.Session.DeliveryTTL,
	)

	// 5. Controllers
	c.WebhookController = controller.NewWebhookController(webhookService)
	c.SessionController = controller.NewSessionController(webhookService)
	c.HealthController = controller.NewHealthController(webhookService, wsHub.ClientCount)
	c.StaffFeedHandler = handler.NewStaffFeedHandler(wsHub, feedLogger)
	c.WebSocketHub = wsHub

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
