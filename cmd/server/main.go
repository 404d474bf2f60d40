package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"sponsorhub/config"
	"sponsorhub/internal/adapters/auth"
	"sponsorhub/internal/adapters/email"
	"sponsorhub/internal/adapters/webhook"
	httpdelivery "sponsorhub/internal/delivery/http"
	"sponsorhub/internal/delivery/http/controllers"
	"sponsorhub/internal/delivery/http/middleware"
	"sponsorhub/internal/repository/postgres"
	"sponsorhub/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title SponsorHub API
// @version 1.0
// @description Partnership and sponsorship configuration backend for events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	partnershipRepo := postgres.NewPartnershipRepository(db)
	packRepo := postgres.NewPackRepository(db)
	optionRepo := postgres.NewOptionRepository(db)
	packOptionRepo := postgres.NewPackOptionRepository(db)
	jobOfferRepo := postgres.NewJobOfferRepository(db)
	promotionRepo := postgres.NewPromotionRepository(db)
	organiserRepo := postgres.NewOrganiserRepository(db)
	historyRepo := postgres.NewEmailHistoryRepository(db)
	subscriptionRepo := postgres.NewWebhookSubscriptionRepository(db)

	// Adapters
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKey,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESSkipTLSCheck,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()
	webhookDispatcher := webhook.NewHTTPDispatcher(subscriptionRepo, nil)
	jwt := auth.NewJWT(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(12)

	// Services
	sender := services.NewNotificationSender(mailer, renderer)
	dispatcher := services.NewSideEffectDispatcher(logger, sender, webhookDispatcher, historyRepo)
	partnershipService := services.NewPartnershipService(partnershipRepo, eventRepo, companyRepo, packRepo, dispatcher, serviceTimeout)
	packService := services.NewPackService(packRepo, optionRepo, packOptionRepo, eventRepo, serviceTimeout)
	promotionService := services.NewPromotionService(promotionRepo, jobOfferRepo, partnershipRepo, eventRepo, companyRepo, dispatcher, serviceTimeout)
	billingService := services.NewBillingService(partnershipRepo, eventRepo, companyRepo, dispatcher, serviceTimeout)
	authService := services.NewAuthService(organiserRepo, hasher, jwt, serviceTimeout)

	// HTTP delivery
	mux := httpdelivery.NewRouter(
		controllers.NewPartnershipController(logger, partnershipService, historyRepo),
		controllers.NewPackController(logger, packService),
		controllers.NewPromotionController(logger, promotionService),
		controllers.NewWebhookController(logger, subscriptionRepo),
		controllers.NewBillingController(logger, billingService),
		controllers.NewAuthController(logger, authService),
		jwt,
	)
	handler := middleware.RequestID(middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux)))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
