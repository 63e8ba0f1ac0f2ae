// Package pass keeps reviewbot credentials in the standard unix password
// manager. Each key maps to one pass entry and the secret is its first line.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/reviewbot/internal/ports"
)

var (
	ErrUnavailable    = errors.New("pass command unavailable")
	ErrMultilineValue = errors.New("pass entry value must be a single line")
)

type runFunc func(ctx context.Context, stdin string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: execPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: %w", key, ErrMultilineValue)
	}

	_, err := s.call(ctx, "put", key, value+"\n", "insert", "--echo", "--force", key)
	return err
}

// Get returns the first line of the entry; later lines are pass metadata.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	out, err := s.call(ctx, "get", key, "", "show", key)
	if err != nil {
		return "", err
	}

	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSuffix(first, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.call(ctx, "delete", key, "", "rm", "--force", key)
	return err
}

func (s *Store) call(ctx context.Context, op string, key string, stdin string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, stdin, args...)
	if err == nil {
		return stdout, nil
	}

	switch {
	case strings.Contains(stderr, "is not in the password store"):
		return "", fmt.Errorf("pass %s %q: %w", op, key, ports.ErrSecretNotFound)
	case stderr != "":
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	default:
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	}
}

func execPass(ctx context.Context, stdin string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
