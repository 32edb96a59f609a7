package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"eventticketing/config"
	_ "eventticketing/docs"
	"eventticketing/internal/adapters/auth"
	"eventticketing/internal/adapters/email"
	"eventticketing/internal/adapters/payment"
	delivery "eventticketing/internal/delivery/http"
	"eventticketing/internal/delivery/http/controllers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
	"eventticketing/internal/lock"
	"eventticketing/internal/repository/memory"
	"eventticketing/internal/repository/postgres"
	"eventticketing/internal/services"
)

// @title Event Ticketing API
// @version 1.0
// @description Event registration, ticket sales and attendance.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type repositories struct {
	events        domain.EventRepository
	organizers    domain.OrganizerRepository
	participants  domain.ParticipantRepository
	registrations domain.RegistrationRepository
	tickets       domain.TicketRepository
	payments      domain.PaymentRepository
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]controllers.HealthCheck{}

	repos, closeRepos, err := openRepositories(ctx, cfg, logger, checks)
	if err != nil {
		return err
	}
	defer closeRepos()

	var locker domain.Locker = lock.NewLocal()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		locker = lock.NewRedis(client, logger, cfg.LockTTL, 0)
		logger.Info("using redis locks")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	timeout := cfg.ServiceTimeout
	prices := services.NewPriceTable()
	authorizer := payment.NewSimulatedAuthorizer(cfg.PaymentDeclineEvery, logger)

	eventSvc := services.NewEventService(repos.events, repos.organizers, repos.participants, repos.registrations, locker, logger, timeout)
	attendeeSvc := services.NewAttendeeService(repos.events, repos.participants, repos.registrations, locker, emailSvc, logger, timeout)
	ticketSvc := services.NewTicketService(repos.events, repos.participants, repos.registrations, repos.tickets, repos.payments,
		prices, authorizer, locker, emailSvc, logger, timeout)
	reportSvc := services.NewReportService(repos.events, repos.participants, repos.registrations, repos.tickets, repos.payments, timeout)
	participantSvc := services.NewParticipantService(repos.participants, repos.registrations, locker, logger, timeout)
	organizerSvc := services.NewOrganizerService(repos.organizers, locker, logger, timeout)

	mux := delivery.NewRouter(delivery.Controllers{
		Organizers:   controllers.NewOrganizerController(logger, organizerSvc),
		Participants: controllers.NewParticipantController(logger, participantSvc, attendeeSvc, ticketSvc),
		Events:       controllers.NewEventController(logger, eventSvc),
		Attendees:    controllers.NewAttendeeController(logger, attendeeSvc),
		Tickets:      controllers.NewTicketController(logger, ticketSvc, prices),
		Reports:      controllers.NewReportController(logger, reportSvc),
		Health:       controllers.NewHealthController(logger, checks),
	}, auth.NewJWTVerifier(cfg.JWTSecret), logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped cleanly")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger, checks map[string]controllers.HealthCheck) (repositories, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return repositories{
			events:        memory.NewEventRepository(),
			organizers:    memory.NewOrganizerRepository(),
			participants:  memory.NewParticipantRepository(),
			registrations: memory.NewRegistrationRepository(),
			tickets:       memory.NewTicketRepository(),
			payments:      memory.NewPaymentRepository(),
		}, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open db: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return repositories{}, nil, fmt.Errorf("db ping: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return repositories{}, nil, err
	}
	checks["postgres"] = db.PingContext
	logger.Info("connected to database")

	return repositories{
		events:        postgres.NewEventRepository(db),
		organizers:    postgres.NewOrganizerRepository(db),
		participants:  postgres.NewParticipantRepository(db),
		registrations: postgres.NewRegistrationRepository(db),
		tickets:       postgres.NewTicketRepository(db),
		payments:      postgres.NewPaymentRepository(db),
	}, func() { db.Close() }, nil
}
