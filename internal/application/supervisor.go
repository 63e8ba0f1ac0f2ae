package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/bnema/reviewbot/internal/domain"
	"github.com/bnema/reviewbot/internal/ports"
)

const DefaultRetryPeriod = 600 * time.Second

// Supervisor runs poll cycles at a fixed period until its context is
// cancelled. Cycle failures are reported to the chat and never stop the loop.
type Supervisor struct {
	cycle  *Cycle
	gate   *NotificationGate
	clock  ports.Clock
	period time.Duration
	logger *slog.Logger
}

func NewSupervisor(cycle *Cycle, gate *NotificationGate, clock ports.Clock, period time.Duration, logger *slog.Logger) *Supervisor {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if period <= 0 {
		period = DefaultRetryPeriod
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Supervisor{cycle: cycle, gate: gate, clock: clock, period: period, logger: logger}
}

// Run blocks until ctx is cancelled and then returns nil.
func (s *Supervisor) Run(ctx context.Context) error {
	checkpoint := domain.Checkpoint(s.clock.Now().Unix())
	s.logger.Info("polling started", "period", s.period.String(), "from_date", int64(checkpoint))

	for {
		if ctx.Err() != nil {
			s.logger.Info("polling stopped")
			return nil
		}

		checkpoint = s.tick(ctx, checkpoint)

		select {
		case <-ctx.Done():
		case <-s.clock.After(s.period):
		}
	}
}

func (s *Supervisor) tick(ctx context.Context, checkpoint domain.Checkpoint) domain.Checkpoint {
	next, err := s.cycle.Run(ctx, checkpoint)
	if err == nil {
		return next
	}
	if ctx.Err() != nil {
		return checkpoint
	}

	var attrs []any
	if kind, ok := domain.KindOf(err); ok {
		attrs = append(attrs, "kind", kind.String())
	}
	s.logger.Error(FailureMessage(err), attrs...)

	if reportErr := s.gate.Report(ctx, err); reportErr != nil {
		s.logger.Error("failed to report failure", "error", reportErr)
	}

	return checkpoint
}
