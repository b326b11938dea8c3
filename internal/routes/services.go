package routes

import (
	"sankofa/internal/config"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/cache"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/ingestion"
	"sankofa/internal/logger"
	"sankofa/internal/usecase/analytics"
	"sankofa/internal/usecase/assistant"
	"sankofa/internal/usecase/collection"
	"sankofa/internal/usecase/donation"
	"sankofa/internal/usecase/healthdata"
	"sankofa/internal/usecase/hub"
	"sankofa/internal/usecase/message"
	"sankofa/internal/usecase/payment"
	"sankofa/internal/usecase/user"
	"sankofa/internal/usecase/volunteer"
)

// Infrastructure holds the optional collaborators main wires from config.
// Nil fields disable the matching side effect.
type Infrastructure struct {
	Publisher events.Publisher
	Notifier  notification.Notifier
	Gateway   donation.Gateway
	Cache     cache.Cache
	Providers []assistant.Provider
}

type Services struct {
	User       *user.Service
	Collection *collection.Service
	Hub        *hub.Service
	Donation   *donation.Service
	HealthData *healthdata.Service
	Payment    *payment.Service
	Message    *message.Service
	Volunteer  *volunteer.Service
	Analytics  *analytics.Service
	Assistant  *assistant.Service

	// Publisher fans events out to the infrastructure publisher and the
	// analytics cache invalidator.
	Publisher events.Publisher
	Ingestion *ingestion.Processor
}

func NewServices(cfg *config.Config, db *postgres.DB, infra Infrastructure) *Services {
	userRepository := postgres.NewUserRepository(db)
	collectionRepository := postgres.NewCollectionRepository(db)
	hubRepository := postgres.NewHubRepository(db)
	donationRepository := postgres.NewDonationRepository(db)
	healthDataRepository := postgres.NewHealthDataRepository(db)
	paymentRepository := postgres.NewPaymentRepository(db)
	messageRepository := postgres.NewMessageRepository(db)
	volunteerRepository := postgres.NewVolunteerRepository(db)

	analyticsService := analytics.NewService(
		collectionRepository,
		userRepository,
		hubRepository,
		donationRepository,
		infra.Cache,
		cfg.Analytics,
	)
	publisher := events.Multi{analyticsService}
	if infra.Publisher != nil {
		publisher = append(publisher, infra.Publisher)
	}

	alerts := ingestion.NewAlertEngine(cfg.Analytics.CapacityWarnPct, publisher, logger.Named("alerts"))
	processor := ingestion.NewProcessor(hubRepository, alerts, cfg.MQTT.Workers, cfg.MQTT.BufferSize, logger.Named("ingestion"))

	return &Services{
		User:       user.NewService(userRepository),
		Collection: collection.NewService(collectionRepository, hubRepository, userRepository, cfg.Pricing, publisher, infra.Notifier),
		Hub:        hub.NewService(hubRepository, userRepository, publisher),
		Donation:   donation.NewService(donationRepository, userRepository, infra.Gateway, cfg.Paystack.CallbackURL, publisher, infra.Notifier),
		HealthData: healthdata.NewService(healthDataRepository),
		Payment:    payment.NewService(paymentRepository, userRepository, publisher, infra.Notifier),
		Message:    message.NewService(messageRepository, userRepository, publisher, infra.Notifier),
		Volunteer:  volunteer.NewService(volunteerRepository, userRepository, publisher, infra.Notifier),
		Analytics:  analyticsService,
		Assistant:  assistant.NewService(infra.Providers...),
		Publisher:  publisher,
		Ingestion:  processor,
	}
}
