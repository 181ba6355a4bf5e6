package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/scribe/errors"
	"github.com/grovetools/scribe/history"
)

func NewRecentCmd() *cobra.Command {
	var (
		since string
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent uploads from the capture tool's history",
		Long: `Reads the upload history file and lists recent uploads, newest
first. By default only audio and video files are shown.

Examples:
  # Media uploads from the last 24 hours
  scribe recent

  # Everything uploaded in the last hour, as JSON
  scribe recent --since 1h --all --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.HistoryPath == "" {
				return errors.ConfigInvalid("history_path is not set")
			}

			data, err := os.ReadFile(cfg.HistoryPath)
			if err != nil {
				return errors.HistoryNotFound(cfg.HistoryPath)
			}
			events, err := history.Parse(data)
			if err != nil {
				return err
			}

			window, err := time.ParseDuration(since)
			if err != nil {
				return fmt.Errorf("invalid --since value %q: %w", since, err)
			}
			cutoff := time.Now().UTC().Add(-window)

			var selected []history.UploadEvent
			if all {
				for i := len(events) - 1; i >= 0 && len(selected) < limit; i-- {
					if events[i].Timestamp.After(cutoff) {
						selected = append(selected, events[i])
					}
				}
			} else {
				selected = history.RecentMedia(events, cutoff, limit)
			}

			jsonOutput, _ := cmd.Flags().GetBool("json")
			if jsonOutput {
				out := json.NewEncoder(cmd.OutOrStdout())
				out.SetIndent("", "  ")
				return out.Encode(selected)
			}

			if len(selected) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No uploads found.")
				return nil
			}
			for _, e := range selected {
				line := fmt.Sprintf("%s  %s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.FileName)
				if e.URL != "" {
					line += "  " + e.URL
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "24h", "How far back to look (Go duration)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of uploads to show")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include non-media uploads")

	return cmd
}
