package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/facesconfig/pkg/cli"
	"mercator-hq/facesconfig/pkg/history"
)

// historyTable prints load records as a table in text mode.
type historyTable []*history.Record

func (t historyTable) WriteText(w io.Writer) error {
	if len(t) == 0 {
		_, err := fmt.Fprintln(w, "No loads recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTRIGGER\tSTATUS\tVERSION\tDOCS\tDURATION\tERROR")
	for _, r := range t {
		errType := r.ErrorType
		if errType == "" {
			errType = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Time.Local().Format(time.DateTime),
			r.Trigger,
			r.Status,
			r.Version,
			len(r.Documents),
			r.Duration.Round(time.Millisecond),
			errType,
		)
	}
	return tw.Flush()
}

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and prune the load history",
		Long: `Every load (parse, watch reload) is recorded when history.enabled is
set. The history subcommands read the configured store directly.`,
	}
	cmd.AddCommand(newHistoryListCommand(a))
	cmd.AddCommand(newHistoryPruneCommand(a))
	return cmd
}

func newHistoryListCommand(a *app) *cobra.Command {
	var (
		format string
		status string
		since  time.Duration
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded loads, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}
			q := &history.Query{Limit: limit}
			switch history.Status(status) {
			case "":
			case history.StatusSuccess, history.StatusFailure:
				q.Status = history.Status(status)
			default:
				return cli.Usagef("invalid --status %q (want success or failure)", status)
			}
			if since > 0 {
				q.Since = time.Now().Add(-since)
			}

			store, err := history.Open(&a.config.History, a.logger)
			if err != nil {
				return cli.NewCommandError("history", err)
			}
			defer store.Close()

			records, err := store.Query(cmd.Context(), q)
			if err != nil {
				return cli.NewCommandError("history", err)
			}
			return cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), historyTable(records))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().StringVar(&status, "status", "", "only show loads with this status: success, failure")
	cmd.Flags().DurationVar(&since, "since", 0, "only show loads newer than this (e.g. 24h)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of records (0 for all)")
	return cmd
}

func newHistoryPruneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Apply the retention policy once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(&a.config.History, a.logger)
			if err != nil {
				return cli.NewCommandError("history", err)
			}
			defer store.Close()

			deleted, err := history.NewPruner(store, a.config.History.Retention, a.logger).Prune(cmd.Context())
			if err != nil {
				return cli.NewCommandError("history", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d record(s)\n", deleted)
			return nil
		},
	}
}
