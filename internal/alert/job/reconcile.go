package job

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type ReconcileJob struct {
	uc       alert.UseCase
	cron     *cron.Cron
	schedule string
	timeout  time.Duration
	logger   logger.ZapLogger
}

func NewReconcileJob(uc alert.UseCase, schedule string, log logger.ZapLogger) *ReconcileJob {
	return &ReconcileJob{
		uc:       uc,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		schedule: schedule,
		timeout:  time.Minute,
		logger:   log,
	}
}

func (j *ReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return fmt.Errorf("schedule alert reconcile %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.logger.Info("Alert reconcile job scheduled", zap.String("schedule", j.schedule))
	return nil
}

// Run executes one reconcile pass.
func (j *ReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	raised, err := j.uc.Reconcile(ctx)
	if err != nil {
		j.logger.Error("Alert reconcile failed", zap.Error(err))
		return
	}
	j.logger.Debug("Alert reconcile finished", zap.Int("raised", raised))
}

// Stop halts the scheduler; the returned context is done once running passes finish.
func (j *ReconcileJob) Stop() context.Context {
	return j.cron.Stop()
}
