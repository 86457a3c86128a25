// Package server initializes and runs the main application server. It wires
// the database pool, migrations, identity provider, object storage, session
// store, and services, then serves the dashboard API until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/afyalink/afyalink/internal/logging"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/httpapi"
	"github.com/afyalink/afyalink/internal/server/identity"
	"github.com/afyalink/afyalink/internal/server/repositories/repomanager"
	"github.com/afyalink/afyalink/internal/server/roles"
	"github.com/afyalink/afyalink/internal/server/services"
	"github.com/afyalink/afyalink/internal/server/session"
	"github.com/afyalink/afyalink/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var provider identity.Provider
	switch cfg.AuthMode {
	case config.ProviderModeRemote:
		provider = identity.NewRESTProvider(cfg.AuthBaseURL, cfg.AuthAnonKey, cfg.StoreTimeout)
	default:
		provider = identity.NewLocalProvider(rm.Accounts(db), []byte(cfg.SecretKey), cfg.CredentialValidityDuration)
	}

	resolver := roles.NewResolver(db, rm)
	sessions := session.NewStore()
	store := storage.NewS3Storage(cfg)

	accountService := services.NewAccountService(db, rm, provider, resolver, sessions, cfg)
	directoryService := services.NewDirectoryService(db, rm, cfg)
	recordService := services.NewRecordService(db, rm, cfg)
	appointmentService := services.NewAppointmentService(db, rm, cfg)
	fileService := services.NewFileService(db, rm, store, cfg)

	server := httpapi.NewServer(cfg, logger, sessions,
		accountService, directoryService, recordService, appointmentService, fileService)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
