package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"slack-archiver/internal/config"
	"slack-archiver/internal/domain"
	"slack-archiver/internal/usecases"
	"slack-archiver/pkg/log"
)

type retrieveOptions struct {
	flags         domain.FeatureFlags
	stdout        bool
	downloadFiles bool
}

func newRetrieveCmd(c *cli) *cobra.Command {
	opts := &retrieveOptions{}

	cmd := &cobra.Command{
		Use:   "retrieve <permalink>",
		Short: "Retrieve a message and its thread and archive the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyChanged(cmd, "users", "channel", "team", "files") {
				opts.flags = defaultFlags(c.cfg.FeaturesFile)
			}
			return runRetrieve(cmd, c, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.flags.FetchUsers, "users", false, "fetch the users referenced by the thread")
	cmd.Flags().BoolVar(&opts.flags.FetchChannel, "channel", false, "fetch the channel")
	cmd.Flags().BoolVar(&opts.flags.FetchTeam, "team", false, "fetch the users' teams (needs --users)")
	cmd.Flags().BoolVar(&opts.flags.FetchFiles, "files", false, "include links to attached files")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the document instead of archiving it")
	cmd.Flags().BoolVar(&opts.downloadFiles, "download-files", false, "download linked files next to the document (needs --files)")

	return cmd
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// defaultFlags reads the feature profile once. A missing profile means no extras.
func defaultFlags(path string) domain.FeatureFlags {
	profile, err := config.LoadFeatureProfile(path)
	if err != nil {
		log.GlobalDebug("feature profile not loaded", "path", path, "error", err)
		return domain.FeatureFlags{}
	}
	defer profile.Close()
	return profile.Flags()
}

func runRetrieve(cmd *cobra.Command, c *cli, opts *retrieveOptions, permalink string) error {
	a, err := c.app(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.RequestTimeout)
	defer cancel()

	creds := c.credentials()

	if opts.stdout {
		agg, err := a.Retrieve.Execute(ctx, creds, permalink, opts.flags)
		if err != nil {
			return errors.New(usecases.Describe(err))
		}
		return writeJSON(cmd.OutOrStdout(), agg)
	}

	result, err := a.Archive.Execute(ctx, creds, permalink, opts.flags)
	if err != nil {
		return errors.New(usecases.Describe(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Location)

	if !opts.downloadFiles {
		return nil
	}
	if len(result.Aggregate.FileLinks) == 0 {
		log.GlobalInfo("no file links to download, pass --files to include them")
		return nil
	}

	names, err := a.Download.Execute(ctx, creds, result.Aggregate)
	if err != nil {
		return errors.New(usecases.Describe(err))
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), a.Location(name))
	}
	return nil
}
