package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zomujo/telemed-api/internal/calendar"
	"github.com/zomujo/telemed-api/internal/config"
	"github.com/zomujo/telemed-api/internal/email"
	accountHandler "github.com/zomujo/telemed-api/internal/handler/account"
	adminHandler "github.com/zomujo/telemed-api/internal/handler/admin"
	authHandler "github.com/zomujo/telemed-api/internal/handler/auth"
	consultationHandler "github.com/zomujo/telemed-api/internal/handler/consultation"
	doctorHandler "github.com/zomujo/telemed-api/internal/handler/doctor"
	healthHandler "github.com/zomujo/telemed-api/internal/handler/health"
	notificationHandler "github.com/zomujo/telemed-api/internal/handler/notification"
	patientHandler "github.com/zomujo/telemed-api/internal/handler/patient"
	paymentHandler "github.com/zomujo/telemed-api/internal/handler/payment"
	referralHandler "github.com/zomujo/telemed-api/internal/handler/referral"
	"github.com/zomujo/telemed-api/internal/middleware"
	gatewayClient "github.com/zomujo/telemed-api/internal/payment"
	"github.com/zomujo/telemed-api/internal/repository/postgres"
	"github.com/zomujo/telemed-api/internal/router"
	accountService "github.com/zomujo/telemed-api/internal/service/account"
	adminService "github.com/zomujo/telemed-api/internal/service/admin"
	appointmentService "github.com/zomujo/telemed-api/internal/service/appointment"
	authService "github.com/zomujo/telemed-api/internal/service/auth"
	consultationService "github.com/zomujo/telemed-api/internal/service/consultation"
	doctorService "github.com/zomujo/telemed-api/internal/service/doctor"
	notificationService "github.com/zomujo/telemed-api/internal/service/notification"
	paymentService "github.com/zomujo/telemed-api/internal/service/payment"
	referralService "github.com/zomujo/telemed-api/internal/service/referral"
	reviewService "github.com/zomujo/telemed-api/internal/service/review"
	slotService "github.com/zomujo/telemed-api/internal/service/slot"
	"github.com/zomujo/telemed-api/internal/storage"
	"github.com/zomujo/telemed-api/internal/worker"
	"github.com/zomujo/telemed-api/pkg/logger"
	redisBroker "github.com/zomujo/telemed-api/pkg/messaging/redis"
	"github.com/zomujo/telemed-api/pkg/metrics"
	"github.com/zomujo/telemed-api/pkg/security"
	"github.com/zomujo/telemed-api/pkg/token"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.Setup(logger.Config{
		Level:   cfg.Logging.Level,
		Pretty:  cfg.Logging.Pretty,
		Service: "telemed-api",
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("telemed")

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	requestRepo := postgres.NewAppointmentRequestRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	referralRepo := postgres.NewReferralRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	referenceRepo := postgres.NewReferenceRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	futureVisitRepo := postgres.NewFutureVisitRepository(db)

	// Outbound clients
	mailer := email.NewService(cfg.Email, appLogger)
	calendarSvc := calendar.NewService(cfg.Calendar)
	gateway := gatewayClient.NewGateway(cfg.Payment)
	store := storage.NewService(cfg.Storage)

	// Core services
	tokenSvc := token.NewService(token.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryMinutes:      cfg.JWT.ExpiryMinutes,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(12)

	notificationSvc := notificationService.NewService(notificationRepo, broker, m, appLogger)
	authSvc := authService.NewService(userRepo, tokenSvc, hasher, mailer, appLogger)
	slotSvc := slotService.NewService(slotRepo)
	appointmentSvc := appointmentService.NewService(
		slotRepo, requestRepo, appointmentRepo, userRepo,
		calendarSvc, mailer, notificationSvc, appLogger,
	)
	consultationSvc := consultationService.NewService(recordRepo, appointmentRepo, reviewRepo, futureVisitRepo, appLogger)
	doctorSvc := doctorService.NewService(userRepo, reviewRepo)
	adminSvc := adminService.NewService(referenceRepo, userRepo)
	referralSvc := referralService.NewService(referralRepo, userRepo, notificationSvc, appLogger)
	reviewSvc := reviewService.NewService(reviewRepo, userRepo, appLogger)
	paymentSvc := paymentService.NewService(transactionRepo, gateway, cfg.Payment.Currency)
	accountSvc := accountService.NewService(userRepo, store, appLogger)

	middleware.RegisterValidators()
	authMw := middleware.NewAuthMiddleware(tokenSvc)

	handlers := router.Handlers{
		Health:       healthHandler.NewHandler(db),
		Account:      accountHandler.NewHandler(accountSvc),
		Auth:         authHandler.NewHandler(authSvc, cfg.JWT.RefreshExpiryHours),
		Doctor:       doctorHandler.NewHandler(doctorSvc, slotSvc),
		Patient:      patientHandler.NewHandler(appointmentSvc, consultationSvc, reviewSvc),
		Consultation: consultationHandler.NewHandler(consultationSvc),
		Referral:     referralHandler.NewHandler(referralSvc),
		Notification: notificationHandler.NewHandler(notificationSvc),
		Payment:      paymentHandler.NewHandler(paymentSvc),
		Admin:        adminHandler.NewHandler(adminSvc),
	}

	engine := router.New(handlers, authMw, m, router.Config{
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.Security.AllowedOrigins,
			AllowMethods:     cfg.Security.AllowedMethods,
			AllowHeaders:     cfg.Security.AllowedHeaders,
			AllowCredentials: true,
			MaxAge:           86400,
		},
		MetricsPath:       cfg.Monitoring.MetricsPath,
		PrometheusEnabled: cfg.Monitoring.PrometheusEnabled,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go func() {
		if err := notificationSvc.Run(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("notification relay stopped")
		}
	}()

	appointmentSweeper := worker.NewAppointmentSweeper(appointmentRepo, cfg.Worker.AppointmentSweepInterval, m, appLogger)
	go appointmentSweeper.Start(workerCtx)

	consultationSweeper := worker.NewConsultationSweeper(recordRepo, cfg.Worker.ConsultationSweepInterval, cfg.Worker.ConsultationMaxAge, m, appLogger)
	go consultationSweeper.Start(workerCtx)

	reminder := worker.NewReminderWorker(futureVisitRepo, userRepo, mailer, notificationSvc, cfg.Worker.ReminderInterval, appLogger)
	go reminder.Start(workerCtx)

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	cancelWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
