package internal

import (
	"context"
	"fmt"

	"archivebot/internal/bot/interfaces"
	"archivebot/internal/providers"
	"archivebot/internal/services"
	"archivebot/internal/structures"
)

// Runner executes a single archiving batch and exits. This is the
// cron-friendly alternative to the long-running daemon.
type Runner struct {
	conf      *structures.Config
	logger    providers.Logger
	service   services.ArchiveServiceInterface
	scheduler interfaces.SchedulerInterface
}

func NewRunner(conf *structures.Config, logger providers.Logger, service services.ArchiveServiceInterface, scheduler interfaces.SchedulerInterface) *Runner {
	return &Runner{
		conf:      conf,
		logger:    logger,
		service:   service,
		scheduler: scheduler,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	r.logger.Infof(providers.TypeApp, "Starting %s (one-shot)", r.conf.AppName)
	if err := r.scheduler.Restore(); err != nil {
		r.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	result := r.service.RunBatch(ctx)
	if result == nil {
		return fmt.Errorf("batch did not run")
	}

	if err := r.scheduler.Persist(); err != nil {
		return err
	}
	if result.Errors > 0 {
		return fmt.Errorf("%d of %d page(s) failed", result.Errors, result.Pages)
	}
	return nil
}
