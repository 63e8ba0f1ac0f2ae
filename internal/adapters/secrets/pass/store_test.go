package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/reviewbot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsertEcho(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "--echo", "--force", "reviewbot/practicum_token"}, args)
			assert.Equal(t, "practicum-token\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "reviewbot/practicum_token", "practicum-token")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLineOfEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "reviewbot/practicum_token"}, args)
			assert.Empty(t, input)
			return "practicum-token\r\nurl: practicum.yandex.ru\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "reviewbot/practicum_token")
	require.NoError(t, err)
	assert.Equal(t, "practicum-token", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "--force", "reviewbot/practicum_token"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), "reviewbot/practicum_token")
	require.NoError(t, err)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "entry not found", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "reviewbot/practicum_token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "reviewbot/practicum_token")
	assert.ErrorContains(t, err, "entry not found")
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: reviewbot/telegram_token is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "reviewbot/telegram_token")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreReportsUnavailableCommand(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "", ErrUnavailable
		},
	}

	err := store.Put(context.Background(), "reviewbot/telegram_token", "v")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestStorePutRejectsMultilineValue(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatalf("pass must not run for a multiline value")
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "reviewbot/telegram_token", "line1\nline2")
	require.ErrorIs(t, err, ErrMultilineValue)
}

func TestStoreDeleteMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: reviewbot/telegram_chat_id is not in the password store.", errors.New("exit status 1")
		},
	}

	err := store.Delete(context.Background(), "reviewbot/telegram_chat_id")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}
