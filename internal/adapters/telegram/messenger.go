package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bnema/reviewbot/internal/ports"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cast"
)

// DefaultEndpoint is the Bot API URL template, filled with token and method.
const DefaultEndpoint = tgbotapi.APIEndpoint

var ErrEmptyChatID = errors.New("chat id is empty")

type Messenger struct {
	token    string
	endpoint string
	client   *http.Client

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

var _ ports.Messenger = (*Messenger)(nil)

func NewMessenger(token, endpoint string, timeout time.Duration) *Messenger {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Messenger{
		token:    token,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (m *Messenger) SendMessage(ctx context.Context, chatID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message, err := newMessage(chatID, text)
	if err != nil {
		return err
	}

	bot, err := m.botAPI()
	if err != nil {
		return err
	}

	if _, err := bot.Send(message); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}

// botAPI connects on first use; a failed handshake is retried on the next send.
func (m *Messenger) botAPI() (*tgbotapi.BotAPI, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bot != nil {
		return m.bot, nil
	}

	bot, err := tgbotapi.NewBotAPIWithClient(m.token, m.endpoint, m.client)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	m.bot = bot

	return bot, nil
}

func newMessage(chatID string, text string) (tgbotapi.MessageConfig, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return tgbotapi.MessageConfig{}, ErrEmptyChatID
	}
	if strings.HasPrefix(chatID, "@") {
		return tgbotapi.NewMessageToChannel(chatID, text), nil
	}

	id, err := cast.ToInt64E(chatID)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("parse chat id %q: %w", chatID, err)
	}

	return tgbotapi.NewMessage(id, text), nil
}
