// Package server initializes and runs the content-access application: it
// opens the database, runs migrations, wires the services, and starts the
// HTTP endpoint with graceful shutdown.
package server

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

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/languagesphere/server/internal/logging"
	"github.com/languagesphere/server/internal/server/config"
	"github.com/languagesphere/server/internal/server/httpapi"
	"github.com/languagesphere/server/internal/server/providers"
	"github.com/languagesphere/server/internal/server/repositories/repomanager"
	"github.com/languagesphere/server/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// App owns the process-level resources. The database handle is opened in
// NewApp and closed in Close; nothing else in the program opens connections.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
}

// NewApp opens the database, applies pending migrations, and builds the
// service graph. Callers must Close the returned App.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db connection error: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	if cfg.TestModeBypass {
		logger.Warn(ctx, "payment gate bypass is enabled, do not run like this in production")
	}

	api := httpapi.NewServer(cfg, logger, db,
		services.NewUserService(db, manager, cfg),
		services.NewPaymentService(db, manager, providers.FromConfig(cfg)),
		services.NewBookService(db, manager, cfg),
	)

	return &App{config: cfg, logger: logger, db: db, api: api}, nil
}

// Close releases the database handle.
func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is canceled or a signal arrives, then drains
// in-flight requests within shutdownTimeout.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown error: %w", err)
	}

	return <-errCh
}
