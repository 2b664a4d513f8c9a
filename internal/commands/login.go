package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = os.Getenv("COSTMN_EMAIL")
			}
			if password == "" {
				password = os.Getenv("COSTMN_PASSWORD")
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required (flags or COSTMN_EMAIL/COSTMN_PASSWORD)")
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			user, err := client.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if err := client.Auth.SaveSession(opts.sessionFile()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}
