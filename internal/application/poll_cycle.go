package application

import (
	"context"
	"log/slog"

	"github.com/bnema/reviewbot/internal/domain"
	"github.com/bnema/reviewbot/internal/ports"
	"github.com/google/uuid"
)

// Evaluation is the outcome of fetching, validating and interpreting one batch.
type Evaluation struct {
	Records int
	// Submission is nil when the batch carried no records.
	Submission *domain.Submission
	Next       domain.Checkpoint
}

type Cycle struct {
	api    ports.ReviewAPI
	gate   *NotificationGate
	logger *slog.Logger
	newID  func() string
}

func NewCycle(api ports.ReviewAPI, gate *NotificationGate, logger *slog.Logger) *Cycle {
	if logger == nil {
		logger = slog.Default()
	}

	return &Cycle{api: api, gate: gate, logger: logger, newID: uuid.NewString}
}

// Evaluate fetches the statuses changed since from and interprets the newest
// record. Older records of the same batch are ignored.
func (c *Cycle) Evaluate(ctx context.Context, from domain.Checkpoint) (Evaluation, error) {
	return c.evaluate(ctx, c.logger, from)
}

// Run performs one poll cycle and returns the checkpoint for the next one. On
// any failure the returned checkpoint is from, so the next cycle retries the
// same window.
func (c *Cycle) Run(ctx context.Context, from domain.Checkpoint) (domain.Checkpoint, error) {
	logger := c.logger.With("cycle_id", c.newID(), "from_date", int64(from))

	evaluation, err := c.evaluate(ctx, logger, from)
	if err != nil {
		return from, err
	}

	if evaluation.Submission != nil {
		sent, err := c.gate.Notify(ctx, evaluation.Submission.Message())
		if err != nil {
			return from, err
		}
		if sent {
			logger.Info("status change notified", "homework", evaluation.Submission.Name, "status", string(evaluation.Submission.Verdict))
		}
	}

	logger.Debug("checkpoint advanced", "next", int64(evaluation.Next))
	return evaluation.Next, nil
}

func (c *Cycle) evaluate(ctx context.Context, logger *slog.Logger, from domain.Checkpoint) (Evaluation, error) {
	payload, err := c.api.FetchStatuses(ctx, from)
	if err != nil {
		return Evaluation{}, err
	}

	records, err := CheckResponse(payload)
	if err != nil {
		logger.Info(err.Error())
		return Evaluation{}, err
	}

	evaluation := Evaluation{Records: len(records), Next: NextCheckpoint(payload, from)}
	if len(records) == 0 {
		logger.Debug("no status updates")
		return evaluation, nil
	}

	submission, err := ParseStatus(records[0])
	if err != nil {
		logger.Error(err.Error())
		return Evaluation{}, err
	}
	evaluation.Submission = &submission

	return evaluation, nil
}
