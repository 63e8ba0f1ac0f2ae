package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bnema/reviewbot/internal/domain"
	"github.com/bnema/reviewbot/internal/ports"
)

var ErrMissingReviewAPI = errors.New("review api is not configured")

// Service wires the poll components behind the two entry points used by the
// CLI: Watch for the long-running bot and Check for a single pass.
type Service struct {
	api       ports.ReviewAPI
	messenger ports.Messenger
	chatID    string
	clock     ports.Clock
	logger    *slog.Logger
}

func NewService(api ports.ReviewAPI, messenger ports.Messenger, chatID string, clock ports.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		api:       api,
		messenger: messenger,
		chatID:    chatID,
		clock:     clock,
		logger:    logger,
	}
}

// Watch runs the supervisor loop until ctx is cancelled.
func (s *Service) Watch(ctx context.Context, period time.Duration) error {
	if s.api == nil {
		return ErrMissingReviewAPI
	}

	gate := NewNotificationGate(s.messenger, s.chatID, s.logger)
	cycle := NewCycle(s.api, gate, s.logger)

	return NewSupervisor(cycle, gate, s.clock, period, s.logger).Run(ctx)
}

// Check evaluates the statuses changed since from without touching any loop
// state. With notify set, a found verdict is also delivered to the chat.
func (s *Service) Check(ctx context.Context, from domain.Checkpoint, notify bool) (CheckReport, error) {
	if s.api == nil {
		return CheckReport{}, ErrMissingReviewAPI
	}

	report := CheckReport{CheckedAt: s.clock.Now(), From: from}

	evaluation, err := NewCycle(s.api, nil, s.logger).Evaluate(ctx, from)
	if err != nil {
		return report, err
	}

	report.Records = evaluation.Records
	report.Next = evaluation.Next
	if evaluation.Submission == nil {
		return report, nil
	}

	report.Homework = evaluation.Submission.Name
	report.Status = evaluation.Submission.Verdict
	report.Message = evaluation.Submission.Message()

	if notify {
		sent, err := NewNotificationGate(s.messenger, s.chatID, s.logger).Notify(ctx, report.Message)
		if err != nil {
			return report, err
		}
		report.Notified = sent
	}

	return report, nil
}
