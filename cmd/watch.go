package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/scribe/cli"
	"github.com/grovetools/scribe/monitor"
)

func NewWatchCmd() *cobra.Command {
	var (
		timeoutMinutes int
		afterFlag      string
		notionURL      string
		description    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor the upload history and transcribe the next media upload",
		Long: `Polls the capture tool's upload history until a new audio or video
upload appears, then extracts its audio track, transcribes it, and
delivers the transcription to the configured webhook. The session ends
after one file, when the time limit elapses, or on Ctrl-C.

Examples:
  # Watch with the configured time limit
  scribe watch

  # Watch for 15 minutes and tag the result with a task page
  scribe watch --timeout 15 --notion-url https://notion.so/page

  # Only consider uploads after a fixed point in time
  scribe watch --after 2026-08-30T09:00:00Z`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateForMonitoring(); err != nil {
				return err
			}

			after := time.Now().UTC()
			if afterFlag != "" {
				after, err = time.Parse(time.RFC3339, afterFlag)
				if err != nil {
					return fmt.Errorf("invalid --after value %q: %w", afterFlag, err)
				}
			}

			timeout := cfg.Timeout()
			if timeoutMinutes > 0 {
				timeout = time.Duration(timeoutMinutes) * time.Minute
			}

			log := componentLogger("scribe-watch")
			orch := buildOrchestrator(cfg, log)

			session, err := orch.Start(monitor.StartOptions{
				After:       after,
				Timeout:     timeout,
				NotionURL:   notionURL,
				Description: description,
			})
			if err != nil {
				return err
			}

			// Ctrl-C requests cooperative cancellation; the worker finishes
			// any pipeline already in flight.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				orch.Stop()
			}()

			printer := cli.NewStatusPrinter(cmd.OutOrStdout())
			var outcome monitor.Outcome
			for event := range session.Events() {
				switch e := event.(type) {
				case monitor.Status:
					printer.Update(e.Message)
				case monitor.Result:
					printer.Success(fmt.Sprintf("Transcribed %s (%d characters)", e.LocalPath, len(e.Text)))
				case monitor.Complete:
					outcome = e.Outcome
				}
			}
			printer.Done(string(outcome))

			if outcome == monitor.OutcomeFailed {
				return fmt.Errorf("monitoring session failed")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&timeoutMinutes, "timeout", "t", 0, "Time limit in minutes (overrides wait_timer_minutes)")
	cmd.Flags().StringVar(&afterFlag, "after", "", "Only consider uploads after this RFC3339 timestamp")
	cmd.Flags().StringVar(&notionURL, "notion-url", "", "Notion page URL attached to the webhook payload")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-form description attached to the webhook payload")

	return cmd
}
