package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"slack-archiver/internal/adapters/browser"
	"slack-archiver/pkg/log"
)

const extractTimeout = time.Minute

func newCredentialsCmd(c *cli) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "credentials <workspace-url>",
		Short: "Read the session token and cookie from a signed-in browser profile",
		Long: `Opens the workspace, for example https://app.slack.com/client/T0001, in Chrome
using $BROWSER_PROFILE_DIR (or the browser at $BROWSER_WS_URL) and prints the
SLACK_TOKEN and SLACK_COOKIE lines for a .env file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := browser.NewPool(browser.PoolConfig{
				RemoteURL:  c.cfg.BrowserWSURL,
				ProfileDir: c.cfg.BrowserProfileDir,
			})
			if err != nil {
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), extractTimeout)
			defer cancel()

			session, err := browser.NewCredentialExtractor(pool).Extract(ctx, args[0])
			if err != nil {
				return err
			}

			if verify {
				a, err := c.app(cmd)
				if err != nil {
					return err
				}
				defer a.Close()

				identity, err := a.VerifyCredentials(ctx, session.Credentials)
				if err != nil {
					return fmt.Errorf("extracted credentials were rejected: %w", err)
				}
				log.GlobalInfo("credentials verified", "team", identity.Team, "user", identity.User)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s (%s)\n", session.TeamName, session.TeamID)
			fmt.Fprintf(out, "SLACK_TOKEN=%s\n", session.Credentials.Token)
			fmt.Fprintf(out, "SLACK_COOKIE=%s\n", session.Credentials.Cookie)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", true, "call auth.test with the extracted credentials")
	return cmd
}
