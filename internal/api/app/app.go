package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/activist-org/activist-api/internal/api/cache"
	httpapi "github.com/activist-org/activist-api/internal/api/http"
	"github.com/activist-org/activist-api/internal/api/mail"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/internal/api/store/drivers/sqlite"
	"github.com/activist-org/activist-api/pkg/cryptox"
	"github.com/activist-org/activist-api/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	cache  cache.Cache
	mailer mail.Mailer

	authService         *service.AuthService
	organizationService *service.OrganizationService
	groupService        *service.GroupService
	eventService        *service.EventService
	discussionService   *service.DiscussionService
	resourceService     *service.ResourceService
	flagService         *service.FlagService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "activist-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initMailer()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing cache", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache selects the cache backend from configuration.
func (app *Application) initCache() error {
	switch app.cfg.CacheBackend {
	case "redis":
		c, err := cache.NewRedis(app.cfg.RedisURL, app.cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		app.cache = c
		app.logger.Info("redis cache initialized")
	case "memory":
		app.cache = cache.NewMemory(app.cfg.CacheTTL)
		app.logger.Info("in-memory cache initialized")
	default:
		return fmt.Errorf("unknown cache backend %q", app.cfg.CacheBackend)
	}
	return nil
}

// initMailer wires the SMTP relay, or falls back to logging mail when no
// relay is configured.
func (app *Application) initMailer() {
	if app.cfg.SMTPHost == "" {
		app.mailer = mail.NewLogMailer(app.logger)
		app.logger.Info("no SMTP relay configured, logging mail instead")
		return
	}

	app.mailer = mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
	app.logger.Info("smtp mailer initialized", "host", app.cfg.SMTPHost)
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	notifier := &service.MutationNotifier{Cache: app.cache}

	app.authService = &service.AuthService{
		Store:      app.db,
		Mailer:     app.mailer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.organizationService = &service.OrganizationService{Store: app.db, Notifier: notifier}
	app.groupService = &service.GroupService{Store: app.db, Notifier: notifier}
	app.eventService = &service.EventService{Store: app.db, Notifier: notifier}
	app.discussionService = &service.DiscussionService{Store: app.db}
	app.resourceService = &service.ResourceService{Store: app.db}
	app.flagService = &service.FlagService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.cache, app.logger)

	router.AuthService = app.authService
	router.OrganizationService = app.organizationService
	router.GroupService = app.groupService
	router.EventService = app.eventService
	router.DiscussionService = app.discussionService
	router.ResourceService = app.resourceService
	router.FlagService = app.flagService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
