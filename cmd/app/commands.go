package main

import (
	"fmt"
	"strconv"
	"strings"

	"trackersync/internal/domain"
	"trackersync/internal/tracker"

	"github.com/spf13/cobra"
)

const defaultStoryQuery = "state:started or state:finished"

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "trackersync",
		Short: "Deliver Pivotal Tracker stories when their GitHub pull requests merge",
		Long: `trackersync moves Tracker stories to "delivered" once the pull request
linked to them is merged.

Configuration comes from the environment (or a .env file):
TRACKER_TOKEN, TRACKER_PROJECT_ID, GITHUB_OWNER, GITHUB_REPO, GITHUB_TOKEN,
GITHUB_WEBHOOK_SECRET, SWEEP_INTERVAL, POSTGRES_DSN, LOGGING_LEVEL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOGGING_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(opts),
		newSweepCommand(opts),
		newDeliverCommand(opts),
		newStoriesCommand(opts),
		newStoryCommand(opts),
		newPullsCommand(opts),
		newMigrateCommand(opts),
	)
	return root
}

func newSweepCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Deliver every finished story whose pull request is merged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.service.TransitionMergedStories(cmd.Context())
			printPass(cmd.OutOrStdout(), result)
			return passError(result, err)
		},
	}
}

func newDeliverCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deliver <pull-number>",
		Short: "Deliver the started or finished stories linked to a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
			if err != nil || number <= 0 {
				return fmt.Errorf("invalid pull request number %q", args[0])
			}

			a, err := newApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.service.Deliver(cmd.Context(), number)
			printPass(cmd.OutOrStdout(), result)
			return passError(result, err)
		},
	}
}

func newStoriesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stories [query]",
		Short: "List stories with their owner and linked pull request",
		Long: `List stories matching a Tracker search query (default "` + defaultStoryQuery + `")
together with the owner and the pull request found in each story's activity.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := defaultStoryQuery
			if len(args) == 1 {
				query = args[0]
			}

			a, err := newApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			infos, err := a.service.StoryInfo(cmd.Context(), query)
			if err != nil {
				return err
			}
			printStories(cmd.OutOrStdout(), infos)
			return nil
		},
	}
}

func newStoryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "story <id>",
		Short: "Show one story with its owner and linked pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := tracker.ParseStoryID(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			info, err := a.service.Story(cmd.Context(), id)
			if err != nil {
				return err
			}
			printStories(cmd.OutOrStdout(), []domain.StoryInfo{info})
			return nil
		},
	}
}

func newPullsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pulls",
		Short: "List the repository's open pull requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			pulls, err := a.service.PullRequests(cmd.Context())
			if err != nil {
				return err
			}
			printPulls(cmd.OutOrStdout(), pulls)
			return nil
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the delivery journal migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.storage == nil {
				return fmt.Errorf("postgres.dsn is not set (POSTGRES_DSN)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "journal schema is up to date")
			return nil
		},
	}
}

// passError turns a pass outcome into the command's exit status.
func passError(result domain.PassResult, err error) error {
	if err != nil {
		return err
	}
	if result.Failed() {
		return fmt.Errorf("%s pass finished with %d failure(s)", result.Kind, len(result.Failures))
	}
	if result.Interrupted {
		return fmt.Errorf("%s pass interrupted", result.Kind)
	}
	return nil
}
