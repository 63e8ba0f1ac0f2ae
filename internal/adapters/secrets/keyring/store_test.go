package keyring

import (
	"context"
	"testing"

	"github.com/99designs/keyring"
	"github.com/bnema/reviewbot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGetDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(keyring.NewArrayKeyring(nil))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "reviewbot/telegram_token", "bot-token"))

	value, err := store.Get(ctx, "reviewbot/telegram_token")
	require.NoError(t, err)
	assert.Equal(t, "bot-token", value)

	require.NoError(t, store.Delete(ctx, "reviewbot/telegram_token"))

	_, err = store.Get(ctx, "reviewbot/telegram_token")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreGetMissingKeyIsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(keyring.NewArrayKeyring([]keyring.Item{{Key: "reviewbot/other", Data: []byte("x")}}))

	_, err := store.Get(context.Background(), "reviewbot/practicum_token")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
	assert.ErrorContains(t, err, "reviewbot/practicum_token")
}

func TestStoreDeleteMissingKeyIsNoop(t *testing.T) {
	t.Parallel()

	store := NewStore(keyring.NewArrayKeyring(nil))
	require.NoError(t, store.Delete(context.Background(), "reviewbot/telegram_chat_id"))
}

func TestStoreHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	store := NewStore(keyring.NewArrayKeyring(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "reviewbot/telegram_token", "v"), context.Canceled)
	_, err := store.Get(ctx, "reviewbot/telegram_token")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Delete(ctx, "reviewbot/telegram_token"), context.Canceled)
}
