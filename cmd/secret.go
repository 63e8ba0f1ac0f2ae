package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/reviewbot/internal/application"
	"github.com/spf13/cobra"
)

func newSecretCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage credentials in the secret store",
		Long:  "Credentials missing from the environment and config file are read from the secret store chain (keyring, pass, file). Names: " + strings.Join(application.CredentialNames(), ", ") + ".",
	}

	cmd.AddCommand(newSecretSetCmd(opts), newSecretGetCmd(opts), newSecretDeleteCmd(opts))

	return cmd
}

func newSecretSetCmd(opts *rootOptions) *cobra.Command {
	var name string
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := parseCredentialName(name)
			if err != nil {
				return err
			}

			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.secretStore.Put(cmd.Context(), key, strings.TrimSpace(value)); err != nil {
				return fmt.Errorf("store secret %s: %w", name, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Credential name")
	cmd.Flags().StringVar(&value, "value", "", "Credential value")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newSecretGetCmd(opts *rootOptions) *cobra.Command {
	var name string
	var show bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a stored credential (masked unless --show)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := parseCredentialName(name)
			if err != nil {
				return err
			}

			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			value, err := app.secretStore.Get(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("load secret %s: %w", name, err)
			}
			if !show {
				value = maskSecret(value)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Credential name")
	cmd.Flags().BoolVar(&show, "show", false, "Print the value unmasked")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSecretDeleteCmd(opts *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a credential from every secret backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := parseCredentialName(name)
			if err != nil {
				return err
			}

			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.secretStore.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("delete secret %s: %w", name, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Credential name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func parseCredentialName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if !slices.Contains(application.CredentialNames(), name) {
		return "", fmt.Errorf("unsupported credential name %q (want one of %s)", raw, strings.Join(application.CredentialNames(), ", "))
	}

	return application.SecretKey(name), nil
}

func maskSecret(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}

	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
