package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/reviewbot/internal/domain"
	"github.com/bnema/reviewbot/internal/ports"
)

// NotificationGate delivers verdict texts to the chat and suppresses repeats
// of the last delivered one. It is owned by a single loop and is not safe for
// concurrent use.
type NotificationGate struct {
	messenger ports.Messenger
	chatID    string
	logger    *slog.Logger

	lastNotified string
}

func NewNotificationGate(messenger ports.Messenger, chatID string, logger *slog.Logger) *NotificationGate {
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationGate{messenger: messenger, chatID: chatID, logger: logger}
}

// Notify sends text unless it equals the last delivered verdict. The last
// delivered text only changes after the messenger accepts the new one.
func (g *NotificationGate) Notify(ctx context.Context, text string) (bool, error) {
	if text == g.lastNotified {
		g.logger.Debug("status unchanged, notification suppressed")
		return false, nil
	}

	if err := g.deliver(ctx, text); err != nil {
		return false, err
	}
	g.lastNotified = text

	return true, nil
}

// Report sends a failure description on every call. It never changes the
// last delivered verdict.
func (g *NotificationGate) Report(ctx context.Context, failure error) error {
	return g.deliver(ctx, FailureMessage(failure))
}

func (g *NotificationGate) LastNotified() string {
	return g.lastNotified
}

func (g *NotificationGate) deliver(ctx context.Context, text string) error {
	if err := g.messenger.SendMessage(ctx, g.chatID, text); err != nil {
		g.logger.Error(domain.ErrDeliveryFailed.Error(), "error", err)
		return domain.DeliveryFailure(err)
	}

	g.logger.Debug("message sent", "text", text)
	return nil
}

func FailureMessage(err error) string {
	return fmt.Sprintf("program failure: %v", err)
}
