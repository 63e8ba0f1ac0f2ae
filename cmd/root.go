package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "reviewbot",
		Short:         "Review status bot: watch submission reviews and notify Telegram",
		Long:          "reviewbot polls the Practicum review API on a fixed period and sends a Telegram message whenever the review status of your latest submission changes.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default $REVIEWBOT_CONFIG or ~/.config/reviewbot/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(opts),
		newCheckCmd(opts),
		newSecretCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}
