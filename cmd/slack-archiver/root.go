package main

import (
	"encoding/json"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"slack-archiver/internal/app"
	"slack-archiver/internal/config"
	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
	"slack-archiver/pkg/log/transporters"
)

// cli is the state shared by all subcommands.
type cli struct {
	cfg     config.Config
	logger  *log.Logger
	verbose bool
	token   string
	cookie  string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "slack-archiver",
		Short:         "Archive Slack conversations from their permalinks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg

			level := cfg.LogLevel
			if c.verbose {
				level = log.Debug
			}
			c.logger = log.New(level, transporters.NewConsoleWithWriter(cmd.ErrOrStderr()))
			log.SetDefault(c.logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				c.logger.Close()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&c.token, "token", "", "xoxc api token (default $SLACK_TOKEN)")
	cmd.PersistentFlags().StringVar(&c.cookie, "cookie", "", "xoxd value of the d cookie (default $SLACK_COOKIE)")

	cmd.AddCommand(
		newRetrieveCmd(c),
		newAuthTestCmd(c),
		newCredentialsCmd(c),
	)
	return cmd
}

// credentials prefers the flags and falls back to the configured session.
// Token and cookie fall back together.
func (c *cli) credentials() domain.Credentials {
	if c.token == "" && c.cookie == "" {
		return domain.Credentials{Token: c.cfg.SlackToken, Cookie: c.cfg.SlackCookie}
	}
	return domain.Credentials{Token: c.token, Cookie: c.cookie}
}

// app builds the application graph. Metrics stay in a private registry.
func (c *cli) app(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), c.cfg, prometheus.NewRegistry())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
