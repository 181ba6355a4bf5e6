package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/scribe/errors"
	"github.com/grovetools/scribe/webhook"
)

func NewReportCmd() *cobra.Command {
	var (
		result      string
		reason      string
		notionURL   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Send a status report to the configured webhook",
		Long: `Delivers a result/reason payload to the webhook without running the
pipeline. Useful for reporting a session outcome from scripts wrapping
scribe.

Examples:
  # Report a failed recording session
  scribe report --result failure --reason "no upload appeared"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if result != "success" && result != "failure" {
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("result must be 'success' or 'failure', got %q", result))
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateForDelivery(); err != nil {
				return err
			}

			log := componentLogger("scribe-report")
			client := webhook.NewClient(cfg.ResolveWebhookURL(), log)
			if !client.DeliverResult(context.Background(), notionURL, description, result, reason) {
				return errors.WebhookFailed(cfg.ResolveWebhookURL(), nil)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Report delivered.")
			return nil
		},
	}

	cmd.Flags().StringVar(&result, "result", "failure", "Report outcome: success or failure")
	cmd.Flags().StringVar(&reason, "reason", "", "Human-readable reason for the outcome")
	cmd.Flags().StringVar(&notionURL, "notion-url", "", "Notion page URL attached to the webhook payload")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-form description attached to the webhook payload")

	return cmd
}
