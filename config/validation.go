package config

import (
	"os"

	"github.com/grovetools/scribe/errors"
)

// ValidateForMonitoring checks the preconditions a monitoring session
// refuses to start without. These are caller-input failures and must be
// surfaced before any worker is spawned.
func (c *Config) ValidateForMonitoring() error {
	if c.HistoryPath == "" {
		return errors.New(errors.ErrCodeConfigValidation, "history_path is not configured")
	}
	if _, err := os.Stat(c.HistoryPath); err != nil {
		if os.IsNotExist(err) {
			return errors.HistoryNotFound(c.HistoryPath)
		}
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "history_path is not readable").
			WithDetail("path", c.HistoryPath)
	}
	if c.WaitTimerMinutes <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, "wait_timer_minutes must be positive").
			WithDetail("wait_timer_minutes", c.WaitTimerMinutes)
	}
	return nil
}

// ValidateForDelivery checks that a webhook endpoint is configured.
func (c *Config) ValidateForDelivery() error {
	if c.ResolveWebhookURL() == "" {
		return errors.WebhookNotConfigured()
	}
	return nil
}
