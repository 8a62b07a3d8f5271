package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/application/usecase"
)

// OverdueSweeper runs the overdue sweep on a cron schedule.
type OverdueSweeper struct {
	cron   *cron.Cron
	sweep  *usecase.OverdueSweepUseCase
	spec   string
	logger *slog.Logger
}

// NewOverdueSweeper creates a sweeper that fires according to spec.
func NewOverdueSweeper(sweep *usecase.OverdueSweepUseCase, spec string, logger *slog.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		cron:   cron.New(),
		sweep:  sweep,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the job and launches the cron loop.
func (s *OverdueSweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		resp, err := s.sweep.Execute(ctx, dto.OverdueSweepRequest{AsOf: time.Now().UTC()})
		if err != nil {
			s.logger.Error("overdue sweep failed", "error", err)
			return
		}
		s.logger.Info("overdue sweep completed",
			"rows_marked", resp.RowsMarked,
			"financings_touched", len(resp.FinancingIDs),
		)
	})
	if err != nil {
		return fmt.Errorf("register overdue sweep: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *OverdueSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
