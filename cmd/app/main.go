package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpapi "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/clock"
	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	l := logger.New(configs.LogLevel)
	defer func() { _ = l.Sync() }()

	if err := run(configs, l); err != nil {
		l.Fatal("marketplace stopped", zap.Error(err))
	}
}

func run(configs cmd.Config, l *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uowFactory, catalog, err := openStorage(configs, l)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, uowFactory, catalog, clock.System{}, l)
	if err != nil {
		return err
	}

	genesis, err := app.GenesisCommand()
	if err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	genesisHandler := app.CreateInitializeGenesisCommandHandler()
	if err := genesisHandler.Handle(ctx, genesis); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}

	var scheduled []jobs.Job
	retrieval, err := app.CreateStakeRetrievalJob()
	if err != nil {
		return err
	}
	if retrieval != nil {
		scheduled = append(scheduled, retrieval)
	} else {
		l.Warn("no admin key configured, stake retrieval job disabled")
	}
	manager := jobs.NewJobManager(l, scheduled...)
	if err := manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	return startWebServer(ctx, app, configs, l)
}

func openStorage(configs cmd.Config, l *zap.Logger) (ports.UnitOfWorkFactory, ports.ServiceCatalog, error) {
	if configs.Storage == cmd.StorageMemory {
		l.Warn("using in-memory storage, state is lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewStore()), memory.NewCatalog(), nil
	}

	db, err := postgres.Open(configs.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return postgres.NewGormUnitOfWorkFactory(db), catalogrepo.NewGormServiceCatalog(db), nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, l *zap.Logger) error {
	e := echo.New()
	e.HideBanner = true
	if configs.LogLevel == "debug" {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.WARN)
	}

	server := httpapi.NewServer(app.CreateHTTPHandlers(), logger.Component(l, "http"))
	server.Register(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
