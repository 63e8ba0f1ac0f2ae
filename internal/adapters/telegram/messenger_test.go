package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type botServer struct {
	mu        sync.Mutex
	getMe     int
	sent      []map[string]string
	sendError bool
}

func newBotServer(t *testing.T, token string) (*botServer, string) {
	t.Helper()

	state := &botServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		defer state.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/bot" + token + "/getMe":
			state.getMe++
			_, _ = fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"reviewbot","username":"reviewbot"}}`)
		case "/bot" + token + "/sendMessage":
			if err := r.ParseForm(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if state.sendError {
				_, _ = fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
				return
			}
			state.sent = append(state.sent, map[string]string{
				"chat_id": r.PostForm.Get("chat_id"),
				"text":    r.PostForm.Get("text"),
			})
			_, _ = fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`)
		default:
			_, _ = fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
		}
	}))
	t.Cleanup(server.Close)

	return state, server.URL + "/bot%s/%s"
}

func TestSendMessageDeliversTextToChat(t *testing.T) {
	t.Parallel()

	state, endpoint := newBotServer(t, "bot-token")
	messenger := NewMessenger("bot-token", endpoint, time.Second)

	require.NoError(t, messenger.SendMessage(context.Background(), "42", "first"))
	require.NoError(t, messenger.SendMessage(context.Background(), "42", "second"))

	state.mu.Lock()
	defer state.mu.Unlock()
	assert.Equal(t, 1, state.getMe)
	require.Len(t, state.sent, 2)
	assert.Equal(t, "42", state.sent[0]["chat_id"])
	assert.Equal(t, "first", state.sent[0]["text"])
	assert.Equal(t, "second", state.sent[1]["text"])
}

func TestSendMessageSupportsChannelUsernames(t *testing.T) {
	t.Parallel()

	state, endpoint := newBotServer(t, "bot-token")
	messenger := NewMessenger("bot-token", endpoint, time.Second)

	require.NoError(t, messenger.SendMessage(context.Background(), "@reviews", "hello"))

	state.mu.Lock()
	defer state.mu.Unlock()
	require.Len(t, state.sent, 1)
	assert.Equal(t, "@reviews", state.sent[0]["chat_id"])
}

func TestSendMessageReturnsAPIError(t *testing.T) {
	t.Parallel()

	state, endpoint := newBotServer(t, "bot-token")
	state.sendError = true
	messenger := NewMessenger("bot-token", endpoint, time.Second)

	err := messenger.SendMessage(context.Background(), "42", "hello")
	require.Error(t, err)
	assert.ErrorContains(t, err, "send telegram message")
	assert.ErrorContains(t, err, "chat not found")
}

func TestSendMessageRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	_, endpoint := newBotServer(t, "bot-token")
	messenger := NewMessenger("wrong-token", endpoint, time.Second)

	err := messenger.SendMessage(context.Background(), "42", "hello")
	require.Error(t, err)
	assert.ErrorContains(t, err, "connect telegram bot")
	assert.Nil(t, messenger.bot)
}

func TestSendMessageRejectsBadChatID(t *testing.T) {
	t.Parallel()

	state, endpoint := newBotServer(t, "bot-token")
	messenger := NewMessenger("bot-token", endpoint, time.Second)

	err := messenger.SendMessage(context.Background(), "", "hello")
	require.ErrorIs(t, err, ErrEmptyChatID)

	err = messenger.SendMessage(context.Background(), "not-a-number", "hello")
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse chat id")

	state.mu.Lock()
	defer state.mu.Unlock()
	assert.Zero(t, state.getMe)
}

func TestSendMessageHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	state, endpoint := newBotServer(t, "bot-token")
	messenger := NewMessenger("bot-token", endpoint, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, messenger.SendMessage(ctx, "42", "hello"), context.Canceled)

	state.mu.Lock()
	defer state.mu.Unlock()
	assert.Empty(t, state.sent)
}
