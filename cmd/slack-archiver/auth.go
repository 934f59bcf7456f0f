package main

import (
	"errors"

	"github.com/spf13/cobra"

	"slack-archiver/internal/usecases"
)

func newAuthTestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "auth-test",
		Short: "Check that the session credentials are accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			identity, err := a.VerifyCredentials(cmd.Context(), c.credentials())
			if err != nil {
				return errors.New(usecases.Describe(err))
			}
			return writeJSON(cmd.OutOrStdout(), identity)
		},
	}
}
