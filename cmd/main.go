package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sankofa/internal/config"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/assistant"
	"sankofa/internal/infrastructure/cache"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/infrastructure/paystack"
	"sankofa/internal/ingestion"
	"sankofa/internal/logger"
	"sankofa/internal/realtime"
	"sankofa/internal/routes"
	assistantUsecase "sankofa/internal/usecase/assistant"
	pkgmqtt "sankofa/pkg/mqtt"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	infra := routes.Infrastructure{
		Cache:    cache.Noop{},
		Notifier: notification.NewLogNotifier(logger.Named("mail")),
	}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB, cfg.Analytics.CacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unavailable, analytics caching disabled", zap.Error(err))
		} else {
			infra.Cache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}

	if cfg.Mailgun.Domain != "" && cfg.Mailgun.APIKey != "" {
		infra.Notifier = notification.NewMailgun(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.Mailgun.Sender)
	}

	if cfg.Paystack.SecretKey != "" {
		infra.Gateway = paystack.NewClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL, cfg.Paystack.Timeout)
	} else {
		logger.Warn("PAYSTACK_SECRET_KEY not set, donations will stay pending")
	}

	var providers []assistantUsecase.Provider
	if cfg.Assistant.OllamaURL != "" {
		ollama, err := assistant.NewOllama(cfg.Assistant.OllamaURL, cfg.Assistant.OllamaModel, cfg.Assistant.Timeout)
		if err != nil {
			logger.Warn("Ollama provider disabled", zap.Error(err))
		} else {
			providers = append(providers, ollama)
		}
	}
	if cfg.Assistant.OpenAIKey != "" {
		providers = append(providers, assistant.NewOpenAI(cfg.Assistant.OpenAIKey, cfg.Assistant.OpenAIBaseURL, cfg.Assistant.OpenAIModel, cfg.Assistant.Timeout))
	}
	infra.Providers = providers

	realtimeHub := realtime.NewHub(logger.Named("realtime"))
	defer realtimeHub.Close()
	publishers := events.Multi{realtimeHub}

	var mqttClient *pkgmqtt.Client
	if cfg.MQTT.Broker != "" {
		mqttCfg := pkgmqtt.DefaultConfig(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		mqttCfg.Username = cfg.MQTT.Username
		mqttCfg.Password = cfg.MQTT.Password

		mqttClient = pkgmqtt.NewClient(mqttCfg, logger.Named("mqtt"))
		if err := mqttClient.Connect(); err != nil {
			logger.Warn("MQTT broker unavailable, bin ingestion disabled", zap.Error(err))
			mqttClient = nil
		} else {
			publishers = append(publishers, events.NewMQTTPublisher(mqttClient, cfg.MQTT.TopicPrefix, byte(cfg.MQTT.QoS)))
		}
	}
	infra.Publisher = publishers

	services := routes.NewServices(cfg, db, infra)

	services.Ingestion.Start()
	defer services.Ingestion.Stop()

	if mqttClient != nil {
		ingestClient, err := ingestion.NewMQTTIngestionClient(&ingestion.MQTTIngestionConfig{
			FillTopic: ingestion.FillTopic(cfg.MQTT.TopicPrefix),
			QoS:       byte(cfg.MQTT.QoS),
		}, mqttClient, services.Ingestion, logger.Named("ingestion"))
		if err != nil {
			logger.Fatal("Failed to create ingestion client", zap.Error(err))
		}
		if err := ingestClient.Start(); err != nil {
			logger.Error("Failed to subscribe to hub fill readings", zap.Error(err))
		}
		defer ingestClient.Stop()
	}

	if infra.Gateway != nil {
		go services.Donation.StartPendingExpiryJob(ctx, cfg.Paystack.ExpiryInterval, cfg.Paystack.PendingTTL)
	}

	router := routes.SetupRoutes(cfg, db, services, realtimeHub)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}
