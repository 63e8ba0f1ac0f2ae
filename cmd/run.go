package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/reviewbot/internal/application"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll the review API and notify on status changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			creds := app.credentials(ctx)
			if !application.CheckTokens(app.logger, creds) {
				return application.ErrMissingCredentials
			}

			service, err := app.newService(creds)
			if err != nil {
				return err
			}

			return service.Watch(ctx, app.cfg.RetryPeriod)
		},
	}
}
