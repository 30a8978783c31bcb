package bootstrap

import (
	"context"
	"log"
	"time"

	"autowebinar-be/internal/config"
	"autowebinar-be/internal/controller"
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/pkg/mailer"
	"autowebinar-be/internal/repository/unitofwork"
	"autowebinar-be/internal/scheduler"
	"autowebinar-be/internal/service"
	"autowebinar-be/pkg/gateway"
	"autowebinar-be/pkg/gateway/mercadopago"
	"autowebinar-be/pkg/gateway/stripe"

	pktNats "autowebinar-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const billingEventsTopic = "billing.events"

type Container struct {
	// Controllers
	CheckoutController     controller.ICheckoutController
	WebhookController      controller.IWebhookController
	SubscriptionController controller.ISubscriptionController
	AuthController         controller.IAuthController
	AffiliateController    controller.IAffiliateController

	// Background workers (exposed for main.go to run)
	ConsumerService service.IConsumerService
	Scheduler       *scheduler.Scheduler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	mail := mailer.NewMailer(cfg.SMTP)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (best-effort mirror for downstream consumers)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (webhook delivery locks)
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

	// 3. Payment gateways
	gateways := make(map[entity.GatewayName]gateway.Gateway)

	if cfg.Gateways.MercadoPagoAccessToken != "" {
		mp, err := mercadopago.New(
			cfg.Gateways.MercadoPagoAccessToken,
			cfg.Gateways.MercadoPagoWebhookSecret,
			cfg.App.BaseURL+"/webhook/mercadopago",
			cfg.App.ClientURL,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Mercado Pago gateway: %v", err)
		}
		gateways[entity.GatewayMercadoPago] = mp
	}
	if cfg.Gateways.StripeAPIKey != "" {
		gateways[entity.GatewayStripe] = stripe.New(
			cfg.Gateways.StripeAPIKey,
			cfg.Gateways.StripeWebhookSecret,
		)
	}
	if len(gateways) == 0 {
		log.Printf("[WARN] No payment gateway configured; checkout will reject all purchases")
	}

	// 4. Services
	publisherService := service.NewPublisherService(billingEventsTopic, pubSub, natsPub, sysLogger)
	affiliateService := service.NewAffiliateService(uowFactory, cfg.Billing.AffiliateGuaranteeDays, sysLogger)
	consumerService := service.NewConsumerService(pubSub, billingEventsTopic, affiliateService, sysLogger)

	planService := service.NewPlanService(uowFactory, time.Duration(cfg.Billing.PlanCacheTTLSeconds)*time.Second)
	authService := service.NewAuthService(uowFactory, cfg.App.JWTSecret)
	checkoutService := service.NewCheckoutService(uowFactory, gateways, affiliateService, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, checkoutService, sysLogger)

	provisioner := service.NewAccessProvisioner()
	webhookService := service.NewWebhookService(
		uowFactory,
		gateways,
		provisioner,
		publisherService,
		mail,
		rdb,
		sysLogger,
	)

	// 5. Background jobs
	billingScheduler := scheduler.NewScheduler(
		uowFactory,
		affiliateService,
		mail,
		sysLogger,
		cfg.Billing.ExpiryReminderDays,
	)

	return &Container{
		CheckoutController:     controller.NewCheckoutController(planService, checkoutService, sysLogger),
		WebhookController:      controller.NewWebhookController(webhookService, sysLogger),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService),
		AuthController:         controller.NewAuthController(authService),
		AffiliateController:    controller.NewAffiliateController(affiliateService),

		ConsumerService: consumerService,
		Scheduler:       billingScheduler,
	}
}
