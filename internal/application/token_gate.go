package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bnema/reviewbot/internal/logging"
	"github.com/bnema/reviewbot/internal/ports"
)

var ErrMissingCredentials = errors.New("required environment variables are missing, program stopped")

const secretKeyPrefix = "reviewbot/"

type Credentials struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
}

type credentialField struct {
	env    string
	secret string
	value  *string
}

func (c *Credentials) fields() []credentialField {
	return []credentialField{
		{env: "PRACTICUM_TOKEN", secret: "practicum_token", value: &c.PracticumToken},
		{env: "TELEGRAM_TOKEN", secret: "telegram_token", value: &c.TelegramToken},
		{env: "TELEGRAM_CHAT_ID", secret: "telegram_chat_id", value: &c.TelegramChatID},
	}
}

// CredentialNames lists the secret names accepted by SecretKey.
func CredentialNames() []string {
	var creds Credentials
	names := make([]string, 0, 3)
	for _, field := range creds.fields() {
		names = append(names, field.secret)
	}
	return names
}

// SecretKey maps a credential name to its secret-store key.
func SecretKey(name string) string {
	return secretKeyPrefix + strings.TrimSpace(name)
}

// CheckTokens logs every missing credential at critical level and reports
// whether all of them are present.
func CheckTokens(logger *slog.Logger, creds Credentials) bool {
	ok := true
	for _, field := range creds.fields() {
		if strings.TrimSpace(*field.value) != "" {
			continue
		}
		logging.Critical(logger, "missing required environment variable "+field.env, "name", field.env)
		ok = false
	}

	return ok
}

// ResolveCredentials fills empty credentials from the secret store. Lookup
// failures leave the value empty so CheckTokens still reports it.
func ResolveCredentials(ctx context.Context, logger *slog.Logger, creds Credentials, store ports.SecretStore) Credentials {
	if store == nil {
		return creds
	}

	for _, field := range creds.fields() {
		if strings.TrimSpace(*field.value) != "" {
			continue
		}

		value, err := store.Get(ctx, SecretKey(field.secret))
		if err != nil {
			logger.Debug("credential not found in secret store", "name", field.env, "error", err)
			continue
		}
		*field.value = strings.TrimSpace(value)
	}

	return creds
}
