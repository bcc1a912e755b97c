package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"ContentDesk/internal/ports"
)

// Scheduler wires a trigger with the pipeline use case.
type Scheduler struct {
	driver   ports.Trigger
	pipeline *Pipeline
	logger   *slog.Logger
	report   func(time.Time, Summary)
}

// NewScheduler returns a helper to start/stop triggered runs. report, when
// set, receives every successful pass.
func NewScheduler(driver ports.Trigger, pipeline *Pipeline, logger *slog.Logger, report func(time.Time, Summary)) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{driver: driver, pipeline: pipeline, logger: logger, report: report}
}

// Start registers the pipeline with the trigger. Failed passes are logged and
// do not stop the trigger.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		summary, err := s.pipeline.Run(ctx)
		if err != nil {
			s.logger.Error("pipeline run failed", "trigger", trigger, "error", err)
			return
		}
		s.logger.Info("pipeline run finished",
			"trigger", trigger,
			"total", summary.Total(),
			"allowed", summary.Allowed,
			"rejected", summary.Rejected,
		)
		if s.report != nil {
			s.report(trigger, summary)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying trigger.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
