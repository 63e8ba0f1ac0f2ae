package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	statusadapter "github.com/bnema/reviewbot/internal/adapters/render/status"
	"github.com/bnema/reviewbot/internal/application"
	"github.com/bnema/reviewbot/internal/domain"
	"github.com/bnema/reviewbot/internal/logging"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var since int64
	var asJSON bool
	var notify bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch the latest review status once and print it",
		Long:  "check runs a single fetch of the review API without the polling loop. With --notify the verdict is also sent to the Telegram chat.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts, domain.Checkpoint(since), asJSON, notify)
		},
	}

	cmd.Flags().Int64Var(&since, "since", 0, "Unix timestamp to check from (0: whole history)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&notify, "notify", false, "Also send the verdict to Telegram")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *rootOptions, since domain.Checkpoint, asJSON bool, notify bool) error {
	app, err := wireApp(cmd, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	creds := app.credentials(cmd.Context())
	if notify {
		if !application.CheckTokens(app.logger, creds) {
			return application.ErrMissingCredentials
		}
	} else if strings.TrimSpace(creds.PracticumToken) == "" {
		logging.Critical(app.logger, "missing required environment variable PRACTICUM_TOKEN", "name", "PRACTICUM_TOKEN")
		return application.ErrMissingCredentials
	}

	service, err := app.newService(creds)
	if err != nil {
		return err
	}

	if asJSON {
		report, err := service.Check(cmd.Context(), since, notify)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	report, err := runCheckSpinner(cmd.Context(), cmd.ErrOrStderr(), since, func(ctx context.Context) (application.CheckReport, error) {
		return service.Check(ctx, since, notify)
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), statusadapter.Render(report, statusadapter.RenderOptions{Location: time.Local}))
	return err
}
