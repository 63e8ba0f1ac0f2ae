package cmd

import (
	"fmt"

	"github.com/bnema/reviewbot/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	cmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))

	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configFile
			if path == "" {
				var err error
				path, err = config.DefaultPath("")
				if err != nil {
					return err
				}
			}

			if err := config.WriteDefault(path, "", force); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (credentials are never printed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Options{ConfigFile: opts.configFile})
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			file := cfg.File
			if file == "" {
				file = "(none)"
			}

			out := cmd.OutOrStdout()
			lines := []string{
				"config file: " + file,
				"endpoint: " + cfg.Endpoint,
				"telegram api endpoint: " + cfg.TelegramAPIEndpoint,
				"retry period: " + cfg.RetryPeriod.String(),
				"request timeout: " + cfg.RequestTimeout.String(),
				"log file: " + cfg.Log.File,
				"log level: " + cfg.Log.Level.String() + " (console " + cfg.Log.ConsoleLevel.String() + ")",
				"secrets dir: " + cfg.SecretsDir,
				fmt.Sprintf("secret backends: %v", cfg.SecretBackends),
				"PRACTICUM_TOKEN: " + presence(cfg.PracticumToken),
				"TELEGRAM_TOKEN: " + presence(cfg.TelegramToken),
				"TELEGRAM_CHAT_ID: " + presence(cfg.TelegramChatID),
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func presence(value string) string {
	if value == "" {
		return "unset"
	}

	return "set"
}
