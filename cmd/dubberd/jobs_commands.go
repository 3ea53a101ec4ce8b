package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/j-Karnika/Dubbing/internal/config"
	"github.com/j-Karnika/Dubbing/internal/jobs"
	langpkg "github.com/j-Karnika/Dubbing/internal/language"
)

func newJobsCommand(configFlag *string) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and manage dubbing jobs",
	}

	jobsCmd.AddCommand(newJobsListCommand(configFlag))
	jobsCmd.AddCommand(newJobsClearCommand(configFlag))

	return jobsCmd
}

func openStore(configFlag *string) (*jobs.Store, error) {
	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := jobs.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}
	return store, nil
}

func newJobsListCommand(configFlag *string) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dubbing jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			var statuses []jobs.Status
			if trimmed := strings.TrimSpace(statusFilter); trimmed != "" {
				for _, value := range strings.Split(trimmed, ",") {
					status, ok := jobs.ParseStatus(value)
					if !ok {
						return fmt.Errorf("unknown status %q", value)
					}
					statuses = append(statuses, status)
				}
			}

			list, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return fmt.Errorf("list jobs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No jobs found")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, job := range list {
				errText := job.ErrorMessage
				if len(errText) > 40 {
					errText = errText[:37] + "..."
				}
				rows = append(rows, []string{
					job.ID,
					job.Filename,
					langpkg.DisplayName(job.SourceLanguage) + " -> " + langpkg.DisplayName(job.TargetLanguage),
					string(job.Status),
					strconv.Itoa(job.Progress) + "%",
					errText,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "File", "Languages", "Status", "Progress", "Error"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))

			if !isTerminal(out) {
				return nil
			}
			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return nil
			}
			fmt.Fprintf(out, "%d total, %d completed, %d failed\n",
				len(list), stats[jobs.StatusCompleted], stats[jobs.StatusError])
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Comma-separated status filter (e.g. completed,error)")
	return cmd
}

func newJobsClearCommand(configFlag *string) *cobra.Command {
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed (or failed) jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			var cleared int64
			if failedOnly {
				cleared, err = store.ClearFailed(cmd.Context())
			} else {
				cleared, err = store.ClearCompleted(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("clear jobs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job(s)\n", cleared)
			return nil
		},
	}

	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Clear failed jobs instead of completed ones")
	return cmd
}
