package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bnema/reviewbot/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
)

func TestCheckTokensAllPresent(t *testing.T) {
	logger, buf := newTestLogger()

	ok := CheckTokens(logger, Credentials{PracticumToken: "p", TelegramToken: "t", TelegramChatID: "42"})

	assert.True(t, ok)
	assert.Empty(t, buf.String())
}

func TestCheckTokensLogsEachMissingValue(t *testing.T) {
	logger, buf := newTestLogger()

	ok := CheckTokens(logger, Credentials{TelegramToken: "t", TelegramChatID: "  "})

	assert.False(t, ok)
	out := buf.String()
	assert.Contains(t, out, "missing required environment variable PRACTICUM_TOKEN")
	assert.Contains(t, out, "missing required environment variable TELEGRAM_CHAT_ID")
	assert.NotContains(t, out, "TELEGRAM_TOKEN")
	assert.Equal(t, 2, strings.Count(out, "level=ERROR+4"))
}

func TestCheckTokensEachValueIsRequired(t *testing.T) {
	full := Credentials{PracticumToken: "p", TelegramToken: "t", TelegramChatID: "42"}

	for _, name := range []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Run(name, func(t *testing.T) {
			creds := full
			switch name {
			case "PRACTICUM_TOKEN":
				creds.PracticumToken = ""
			case "TELEGRAM_TOKEN":
				creds.TelegramToken = ""
			case "TELEGRAM_CHAT_ID":
				creds.TelegramChatID = ""
			}

			logger, buf := newTestLogger()
			assert.False(t, CheckTokens(logger, creds))
			assert.Contains(t, buf.String(), name)
		})
	}
}

func TestResolveCredentialsFillsOnlyMissingValues(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	logger, _ := newTestLogger()

	store.EXPECT().Get(mockAnyContext(), "reviewbot/telegram_token").Return(" bot-token\n", nil).Once()
	store.EXPECT().Get(mockAnyContext(), "reviewbot/telegram_chat_id").Return("", errors.New("file secret not found")).Once()

	creds := ResolveCredentials(context.Background(), logger, Credentials{PracticumToken: "from-env"}, store)

	assert.Equal(t, Credentials{PracticumToken: "from-env", TelegramToken: "bot-token"}, creds)
}

func TestResolveCredentialsWithoutStore(t *testing.T) {
	logger, _ := newTestLogger()
	creds := Credentials{PracticumToken: "p"}

	assert.Equal(t, creds, ResolveCredentials(context.Background(), logger, creds, nil))
}

func TestSecretKey(t *testing.T) {
	assert.Equal(t, "reviewbot/telegram_token", SecretKey(" telegram_token "))
	assert.Equal(t, []string{"practicum_token", "telegram_token", "telegram_chat_id"}, CredentialNames())
}
