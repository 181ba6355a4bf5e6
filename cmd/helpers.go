package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/scribe/audio"
	"github.com/grovetools/scribe/cli"
	"github.com/grovetools/scribe/command"
	"github.com/grovetools/scribe/config"
	"github.com/grovetools/scribe/errors"
	"github.com/grovetools/scribe/history"
	"github.com/grovetools/scribe/logging"
	"github.com/grovetools/scribe/monitor"
	"github.com/grovetools/scribe/transcribe"
	"github.com/grovetools/scribe/webhook"
)

// loadConfig resolves and loads the configuration for a command: the
// --config flag wins, otherwise the nearest scribe.yml walking up from the
// working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := cli.GetOptions(cmd)

	path, err := cli.InitConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path == "" {
		if opts.ConfigFile != "" {
			return nil, errors.ConfigNotFound(opts.ConfigFile)
		}
		return nil, errors.ConfigNotFound("scribe.yml")
	}

	return config.Load(path)
}

// buildOrchestrator wires the full pipeline from configuration.
func buildOrchestrator(cfg *config.Config, log *logrus.Entry) *monitor.Orchestrator {
	executor := &command.RealExecutor{}
	return monitor.New(
		history.NewReader(cfg.HistoryPath, log),
		audio.NewExtractor(executor, "", log),
		transcribe.NewTranscriber(executor, cfg.WhisperModel, cfg.WhisperDevice, log),
		webhook.NewClient(cfg.ResolveWebhookURL(), log),
		cfg.PollEvery(),
		log,
	)
}

// componentLogger returns the shared file-sink logger for a command.
func componentLogger(component string) *logrus.Entry {
	return logging.NewLogger(component)
}
