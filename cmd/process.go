package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/scribe/audio"
	"github.com/grovetools/scribe/command"
	"github.com/grovetools/scribe/errors"
	"github.com/grovetools/scribe/transcribe"
	"github.com/grovetools/scribe/webhook"
)

func NewProcessCmd() *cobra.Command {
	var (
		model       string
		device      string
		deliver     bool
		notionURL   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "process <media-file>",
		Short: "Transcribe a single media file without monitoring",
		Long: `Runs the extraction and transcription pipeline on one local file
and prints the transcription to stdout. With --deliver the result is
also sent to the configured webhook.

Examples:
  # Transcribe a recording
  scribe process ~/recordings/standup.mp4

  # Transcribe on GPU and deliver the result
  scribe process meeting.mp4 --device cuda --deliver`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			inputPath := args[0]
			if _, err := os.Stat(inputPath); err != nil {
				return errors.SourceFileNotFound(inputPath)
			}

			if model == "" {
				model = cfg.WhisperModel
			}
			if device == "" {
				device = cfg.WhisperDevice
			}

			log := componentLogger("scribe-process")
			executor := &command.RealExecutor{}
			ctx := context.Background()

			extractor := audio.NewExtractor(executor, "", log)
			wavPath, err := extractor.Extract(ctx, inputPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := os.Remove(wavPath); err != nil {
					log.WithError(err).Warn("Failed to remove temporary audio file")
				}
			}()

			transcriber := transcribe.NewTranscriber(executor, model, device, log)
			text, err := transcriber.Transcribe(ctx, wavPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)

			if deliver {
				if err := cfg.ValidateForDelivery(); err != nil {
					return err
				}
				client := webhook.NewClient(cfg.ResolveWebhookURL(), log)
				if !client.DeliverTranscription(ctx, notionURL, description, text, "", inputPath) {
					return errors.WebhookFailed(cfg.ResolveWebhookURL(), nil)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Speech model to use (overrides whisper_model)")
	cmd.Flags().StringVar(&device, "device", "", "Compute device to use (overrides whisper_device)")
	cmd.Flags().BoolVar(&deliver, "deliver", false, "Send the transcription to the configured webhook")
	cmd.Flags().StringVar(&notionURL, "notion-url", "", "Notion page URL attached to the webhook payload")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-form description attached to the webhook payload")

	return cmd
}
