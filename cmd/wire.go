package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/reviewbot/internal/adapters/practicum"
	chainstore "github.com/bnema/reviewbot/internal/adapters/secrets/chain"
	"github.com/bnema/reviewbot/internal/adapters/telegram"
	"github.com/bnema/reviewbot/internal/application"
	"github.com/bnema/reviewbot/internal/config"
	"github.com/bnema/reviewbot/internal/logging"
	"github.com/bnema/reviewbot/internal/ports"
	"github.com/spf13/cobra"
)

type app struct {
	cfg         config.Config
	logger      *slog.Logger
	logCloser   io.Closer
	secretStore ports.SecretStore
	clock       ports.Clock
}

func wireApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(config.Options{ConfigFile: opts.configFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Console:      cmd.ErrOrStderr(),
		ConsoleLevel: cfg.Log.ConsoleLevel,
		FilePath:     cfg.Log.File,
		FileLevel:    cfg.Log.Level,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	secretStore, err := chainstore.NewNamed(cfg.SecretsDir, cfg.SecretBackends...)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		logCloser:   logCloser,
		secretStore: secretStore,
		clock:       ports.SystemClock{},
	}, nil
}

func (a *app) Close() error {
	return a.logCloser.Close()
}

// credentials takes values from env and config first and falls back to the
// secret store for anything still empty.
func (a *app) credentials(ctx context.Context) application.Credentials {
	return application.ResolveCredentials(ctx, a.logger, application.Credentials{
		PracticumToken: a.cfg.PracticumToken,
		TelegramToken:  a.cfg.TelegramToken,
		TelegramChatID: a.cfg.TelegramChatID,
	}, a.secretStore)
}

func (a *app) newService(creds application.Credentials) (*application.Service, error) {
	api, err := practicum.NewClient(a.cfg.Endpoint, creds.PracticumToken, a.cfg.RequestTimeout, practicum.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("wire review api: %w", err)
	}

	messenger := telegram.NewMessenger(creds.TelegramToken, a.cfg.TelegramAPIEndpoint, a.cfg.RequestTimeout)

	return application.NewService(api, messenger, creds.TelegramChatID, a.clock, a.logger), nil
}
