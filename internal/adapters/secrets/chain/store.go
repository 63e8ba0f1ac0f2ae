package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/reviewbot/internal/adapters/secrets/file"
	keyringstore "github.com/bnema/reviewbot/internal/adapters/secrets/keyring"
	passstore "github.com/bnema/reviewbot/internal/adapters/secrets/pass"
	"github.com/bnema/reviewbot/internal/ports"
)

// Backend is one named link of the chain, tried in order.
type Backend struct {
	Name  string
	Store ports.SecretStore
}

type Store struct {
	backends []Backend
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret chain has no backends")

var openKeyring = func() (ports.SecretStore, error) {
	return keyringstore.Open()
}

func NewStore(backends ...Backend) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend.Store == nil {
			return nil, fmt.Errorf("secret backend %d (%s) is nil", i, backend.Name)
		}
	}

	return &Store{backends: backends}, nil
}

// NewNamed builds a chain from backend names ("keyring", "pass", "file") in
// the given order. The keyring link is skipped when no OS keyring can be
// opened on this host; if that leaves the chain empty, the file store under
// fileRoot takes its place.
func NewNamed(fileRoot string, names ...string) (*Store, error) {
	backends := make([]Backend, 0, len(names))
	for _, name := range names {
		switch name {
		case "keyring":
			ring, err := openKeyring()
			if err != nil {
				continue
			}
			backends = append(backends, Backend{Name: name, Store: ring})
		case "pass":
			backends = append(backends, Backend{Name: name, Store: passstore.NewStore()})
		case "file":
			backends = append(backends, Backend{Name: name, Store: filestore.NewStore(fileRoot)})
		default:
			return nil, fmt.Errorf("unknown secret backend %q", name)
		}
	}
	if len(names) > 0 && len(backends) == 0 {
		backends = append(backends, Backend{Name: "file", Store: filestore.NewStore(fileRoot)})
	}

	return NewStore(backends...)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldSkipFallback(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s backend put failed: %w", backend.Name, err))
	}

	return errors.Join(errs...)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for _, backend := range s.backends {
		value, err := backend.Store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldSkipFallback(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("%s backend get failed: %w", backend.Name, err))
	}

	return "", errors.Join(errs...)
}

// Delete clears the key from every backend so a stale copy further down the
// chain cannot resurface on the next Get.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for _, backend := range s.backends {
		err := backend.Store.Delete(ctx, key)
		if err == nil {
			deleted = true
			continue
		}
		if shouldSkipFallback(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s backend delete failed: %w", backend.Name, err))
	}
	if deleted {
		return nil
	}

	return errors.Join(errs...)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
