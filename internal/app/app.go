// -----------------------------------------------------------------------
// App - wires storage, services and handlers into one application graph
// -----------------------------------------------------------------------

package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/potlucy73-hue/carriervet/internal/common"
	"github.com/potlucy73-hue/carriervet/internal/fmcsa"
	"github.com/potlucy73-hue/carriervet/internal/handlers"
	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/services/extraction"
	"github.com/potlucy73-hue/carriervet/internal/services/mclist"
	"github.com/potlucy73-hue/carriervet/internal/services/normalizer"
	badgerstore "github.com/potlucy73-hue/carriervet/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB             *badgerstore.BadgerDB
	JobStorage     interfaces.JobStorage
	CarrierStorage interfaces.CarrierStorage
	FailureStorage interfaces.FailureStorage

	// Services
	Source       interfaces.CarrierSource
	Normalizer   *normalizer.Normalizer
	Orchestrator *extraction.Orchestrator
	ListProvider *mclist.GitHubProvider

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	ExtractHandler *handlers.ExtractHandler
	JobHandler     *handlers.JobHandler
	ExportHandler  *handlers.ExportHandler
	StatusHandler  *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.initServices()
	app.initHandlers()

	logger.Info().
		Int("requests_per_minute", cfg.Extraction.RequestsPerMinute).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage initializes the storage layer (Badger)
func (a *App) initStorage() error {
	db, err := badgerstore.NewBadgerDB(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.DB = db

	a.JobStorage = badgerstore.NewJobStorage(db, a.Logger)
	a.CarrierStorage = badgerstore.NewCarrierStorage(db, a.Logger)
	a.FailureStorage = badgerstore.NewFailureStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")
	return nil
}

// initServices initializes business services in dependency order
func (a *App) initServices() {
	a.Normalizer = normalizer.New(a.Logger)

	a.Source = fmcsa.NewClient(
		fmcsa.WithBaseURL(a.Config.FMCSA.BaseURL),
		fmcsa.WithUserAgent(a.Config.FMCSA.UserAgent),
		fmcsa.WithLogger(a.Logger),
		fmcsa.WithRateLimit(a.Config.FMCSA.RequestsPerSecond),
	)

	a.Orchestrator = extraction.NewOrchestrator(
		a.Config.Extraction,
		a.Source,
		a.JobStorage,
		a.CarrierStorage,
		a.FailureStorage,
		a.Logger,
	)
	a.Logger.Debug().Msg("Extraction orchestrator initialized")

	a.ListProvider = mclist.NewGitHubProvider(a.Config.GitHub.Token, a.Logger)
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.ExtractHandler = handlers.NewExtractHandler(a.Orchestrator, a.Normalizer, a.ListProvider, a.Logger)
	a.JobHandler = handlers.NewJobHandler(a.JobStorage, a.CarrierStorage, a.FailureStorage, a.Orchestrator, a.Logger)
	a.ExportHandler = handlers.NewExportHandler(a.JobStorage, a.CarrierStorage, a.FailureStorage, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.JobStorage, a.Orchestrator.Registry(), a.Logger)
}

// Close closes all application resources. Running jobs are given a grace
// period to observe cancellation before storage shuts down.
func (a *App) Close() error {
	for _, jobID := range a.Orchestrator.Registry().ActiveIDs() {
		a.Orchestrator.Cancel(jobID)
	}

	done := make(chan struct{})
	go func() {
		a.Orchestrator.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		a.Logger.Warn().Msg("Timed out waiting for extraction jobs to stop")
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
