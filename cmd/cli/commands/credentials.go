package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdash/jobdash/internal/credentials"
	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/render"
	"github.com/jobdash/jobdash/internal/secrets"
)

const (
	flagEmail       = "email"
	flagPassword    = "password"
	flagFromKeyring = "from-keyring"
)

func newCredentialsCmd() *cobra.Command {
	credentialsCmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the LinkedIn credentials the agent crawls with",
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Send LinkedIn credentials to the agent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString(flagEmail)
			password, _ := cmd.Flags().GetString(flagPassword)
			fromKeyring, _ := cmd.Flags().GetBool(flagFromKeyring)

			if fromKeyring {
				if password != "" {
					return errs.ValidationError("use either --password or --from-keyring, not both")
				}
				pw, err := secrets.NewStore(cfg.Keyring.Service).GetPassword(email)
				if err != nil {
					return err
				}
				password = pw
			}

			res, err := credentials.NewFlow(getAPIClient()).Submit(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	setCmd.Flags().String(flagEmail, "", "LinkedIn email")
	setCmd.Flags().String(flagPassword, "", "LinkedIn password")
	setCmd.Flags().Bool(flagFromKeyring, false, "Read the password from the OS keychain")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the agent has credentials stored",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := getAPIClient().GetCredentialsStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("error checking credentials: %w", err)
			}

			w := cmd.OutOrStdout()
			if ok, err := printStructured(w, outputFormat(cmd), state); ok {
				return err
			}
			if state.Set {
				fmt.Fprintln(w, "LinkedIn credentials are set")
				return nil
			}
			fmt.Fprintln(w, render.CredentialWarning)
			return nil
		},
	}

	rememberCmd := &cobra.Command{
		Use:   "remember",
		Short: "Store the LinkedIn password in the OS keychain (nothing is sent to the agent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString(flagEmail)
			password, _ := cmd.Flags().GetString(flagPassword)

			if err := secrets.NewStore(cfg.Keyring.Service).SetPassword(email, password); err != nil {
				return fmt.Errorf("error storing password: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password for %s stored in the OS keychain\n", email)
			return nil
		},
	}
	rememberCmd.Flags().String(flagEmail, "", "LinkedIn email")
	rememberCmd.Flags().String(flagPassword, "", "LinkedIn password")
	_ = rememberCmd.MarkFlagRequired(flagEmail)
	_ = rememberCmd.MarkFlagRequired(flagPassword)

	credentialsCmd.AddCommand(setCmd, statusCmd, rememberCmd)
	return credentialsCmd
}
