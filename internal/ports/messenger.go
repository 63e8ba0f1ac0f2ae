package ports

import "context"

type Messenger interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}
