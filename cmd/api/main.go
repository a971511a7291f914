// @title Conference Central API
// @version 1.0
// @description Conference organization backend: conferences, sessions, registrations, wishlists and announcements.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
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

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"conferencecentral/config"
	_ "conferencecentral/docs"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/adapters/sessionize"
	deliveryhttp "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/ledger"
	"conferencecentral/internal/metrics"
	"conferencecentral/internal/repository/memory"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/tasks"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	m := metrics.NewMetrics()

	// Storage
	var (
		gateway   domain.EntityGateway
		taskStore domain.TaskStore
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		gateway = postgres.NewGateway(db)
		taskStore = postgres.NewTaskStore(db)
	default:
		logger.Warn("using in-memory storage; data is lost on restart")
		gateway = memory.NewGateway()
	}

	// Cache
	var c domain.Cache
	if cfg.RedisAddr != "" {
		rc, closeRedis, err := cache.NewRedis(ctx, cfg.RedisAddr, "conferencecentral:")
		if err != nil {
			return err
		}
		defer func() { _ = closeRedis() }()
		c = rc
	} else {
		c = cache.NewMemory()
	}
	c = cache.WithMetrics(c, m, logger)

	// Tasks
	registry := tasks.NewRegistry()
	var dispatcher domain.TaskDispatcher
	var inline *tasks.InlineDispatcher
	if taskStore != nil {
		dispatcher = tasks.NewPostgresDispatcher(taskStore, m)
	} else {
		inline = tasks.NewInlineDispatcher(registry, logger, m)
		dispatcher = inline
	}

	// Email
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	// Services
	ledgerManager := ledger.NewManager(gateway)
	fetcher := sessionize.NewHTTPFetcher(&http.Client{Timeout: 15 * time.Second}, cfg.SessionizeBaseURL)
	conferenceSvc := services.NewConferenceService(gateway, ledgerManager, dispatcher, c, logger, m, cfg.RequestTimeout)
	sessionSvc := services.NewSessionService(gateway, ledgerManager, dispatcher, c, fetcher, logger, m, cfg.RequestTimeout)
	profileSvc := services.NewProfileService(gateway, cfg.RequestTimeout)

	for _, h := range []tasks.Handler{
		tasks.SendConfirmationEmail(emailSvc),
		tasks.UpdateFeaturedSpeaker(sessionSvc),
		tasks.RefreshAnnouncement(conferenceSvc),
	} {
		if err := registry.Register(h); err != nil {
			return err
		}
	}

	// HTTP
	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Conference: controllers.NewConferenceController(logger, conferenceSvc),
		Session:    controllers.NewSessionController(logger, sessionSvc),
		Profile:    controllers.NewProfileController(logger, profileSvc),
	}, auth.NewJWTVerifier(cfg.JWTSecret), logger)
	handler := middleware.LoggingMiddleware(logger, m, middleware.CORS(cfg.CORSAllowedOrigins, router))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if taskStore != nil {
		worker := tasks.NewWorker(taskStore, registry, logger, m, tasks.WorkerConfig{
			Concurrency:  cfg.WorkerConcurrency,
			PollInterval: cfg.WorkerPollInterval,
			MaxAttempts:  cfg.TaskMaxAttempts,
		})
		g.Go(func() error { return worker.Run(gctx) })
	}
	g.Go(func() error {
		refreshAnnouncements(gctx, dispatcher, cfg.AnnouncementRefreshInterval, logger)
		return nil
	})

	err = g.Wait()
	if inline != nil {
		inline.Wait()
	}
	logger.Info("server stopped")
	return err
}

// refreshAnnouncements enqueues an announcement refresh at start and then on
// every tick until ctx is done.
func refreshAnnouncements(ctx context.Context, dispatcher domain.TaskDispatcher, every time.Duration, logger *slog.Logger) {
	enqueue := func() {
		if err := dispatcher.Enqueue(ctx, domain.TaskRefreshAnnouncement, nil); err != nil {
			logger.WarnContext(ctx, "enqueue announcement refresh failed", "err", err)
		}
	}
	enqueue()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue()
		}
	}
}
