package keyring

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
	"github.com/bnema/reviewbot/internal/ports"
)

const ServiceName = "reviewbot"

type Store struct {
	ring keyring.Keyring
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Open selects the first OS keyring backend available on this host.
// The file and pass backends are left to their own stores in the chain.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.WinCredBackend,
		},
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	return NewStore(ring), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key}); err != nil {
		return fmt.Errorf("set keyring secret %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", fmt.Errorf("keyring secret %q: %w", key, ports.ErrSecretNotFound)
		}
		return "", fmt.Errorf("get keyring secret %q: %w", key, err)
	}

	return string(item.Data), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("delete keyring secret %q: %w", key, err)
	}

	return nil
}
