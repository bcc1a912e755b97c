package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ContentDesk/internal/config"
	"ContentDesk/internal/describe"
	"ContentDesk/internal/dispatch"
	"ContentDesk/internal/infrastructure/fixture"
	"ContentDesk/internal/infrastructure/scheduler"
	"ContentDesk/internal/infrastructure/storage"
	"ContentDesk/internal/logging"
	"ContentDesk/internal/ports"
	"ContentDesk/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	dispatcher *dispatch.Dispatcher
	describer  describe.Describer
	source     *fixture.Source
	decisions  *storage.DecisionLog
	pipeline   *usecase.Pipeline
}

// New builds the application. The decision log is opened only when a DSN is
// configured.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	dispatcher := dispatch.New(dispatch.WithPolicy(dispatch.NewPolicy(cfg.Policy.Roles()...)))
	source := fixture.NewSource(cfg.Fixtures, baseLogger.With("component", "fixture.source"))

	var decisions *storage.DecisionLog
	if cfg.Database.DSN != "" {
		var err error
		decisions, err = storage.Open(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open decision log: %w", err)
		}
	}

	deps := usecase.PipelineDeps{
		Source:     source,
		Classifier: dispatcher,
		Logger:     baseLogger.With("component", "pipeline"),
	}
	if decisions != nil {
		deps.Log = decisions
	}

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		dispatcher: dispatcher,
		describer:  describe.New(cfg.Display.Location()),
		source:     source,
		decisions:  decisions,
		pipeline:   usecase.NewPipeline(deps),
	}, nil
}

// Pipeline exposes the classification use case.
func (a *Application) Pipeline() *usecase.Pipeline { return a.pipeline }

// Describer renders display text in the configured timezone.
func (a *Application) Describer() describe.Describer { return a.describer }

// Dispatcher is the configured classifier.
func (a *Application) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }

// Decisions returns the audit log, or nil when none is configured.
func (a *Application) Decisions() ports.DecisionLog {
	if a.decisions == nil {
		return nil
	}
	return a.decisions
}

// Run performs a single pipeline pass over the configured fixture sets.
func (a *Application) Run(ctx context.Context) (usecase.Summary, error) {
	return a.pipeline.Run(ctx)
}

// Watch re-runs the pipeline on fixture changes until ctx is done. report
// receives each successful pass.
func (a *Application) Watch(ctx context.Context, report func(time.Time, usecase.Summary)) error {
	patterns := make([]string, 0, len(a.cfg.Fixtures.Sets))
	for _, set := range a.cfg.Fixtures.Sets {
		patterns = append(patterns, set.Pattern)
	}

	trigger := scheduler.NewWatcher(
		a.cfg.Fixtures.BaseDir,
		patterns,
		a.cfg.Watch.DebounceDuration(),
		a.logger.With("component", "watcher"),
	)
	sched := usecase.NewScheduler(trigger, a.pipeline, a.logger.With("component", "scheduler"), report)

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	a.logger.Info("watching fixtures", "base", a.cfg.Fixtures.BaseDir, "patterns", patterns)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Close releases the decision log.
func (a *Application) Close() error {
	return a.decisions.Close()
}
