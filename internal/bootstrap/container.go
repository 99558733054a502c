package bootstrap

import (
	"context"
	"log"

	"ad-marketplace-be/internal/actor"
	"ad-marketplace-be/internal/config"
	"ad-marketplace-be/internal/controller"
	"ad-marketplace-be/internal/handler"
	"ad-marketplace-be/internal/pkg/logger"
	"ad-marketplace-be/internal/pkg/mailer"
	"ad-marketplace-be/internal/repository/unitofwork"
	"ad-marketplace-be/internal/service"
	"ad-marketplace-be/internal/websocket"
	"ad-marketplace-be/pkg/catalog"
	"ad-marketplace-be/pkg/lifecycle"

	pktNats "ad-marketplace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SubscriptionController controller.ISubscriptionController
	ModerationController   controller.IModerationController
	ProductController      controller.IProductController

	// Background Services (Exposed for main.go to run)
	ExpiryService service.IExpiryService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Actors (exposed for graceful shutdown)
	ActorRegistry *actor.Registry
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Actor Runtime
	catalogService := catalog.NewService(uowFactory)
	lifecyclePublisher := lifecycle.NewNatsPublisher(natsPub, sysLogger)
	registry := actor.NewRegistry(uowFactory, catalogService, lifecyclePublisher, sysLogger)

	// 4. Services
	subscriptionService := service.NewSubscriptionService(registry, uowFactory, sysLogger)
	moderationService := service.NewModerationService(subscriptionService, uowFactory, sysLogger)
	productService := service.NewProductService(uowFactory, catalogService)

	expiryService := service.NewExpiryService(
		pubSub,
		cfg.Expiry.TopicName,
		uowFactory,
		subscriptionService,
		emailService,
		cfg.SMTP.OpsEmail,
		cfg.Expiry.SweepInterval,
		sysLogger,
	)

	// 4.5 Lifecycle Feed
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(natsPub, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		SubscriptionController: controller.NewSubscriptionController(subscriptionService),
		ModerationController:   controller.NewModerationController(moderationService),
		ProductController:      controller.NewProductController(productService),

		ExpiryService: expiryService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		ActorRegistry: registry,
	}
}
