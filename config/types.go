package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DefaultPollInterval is the monitoring poll cadence used when the config
// does not override it.
const DefaultPollInterval = time.Second

// DefaultWaitTimerMinutes is the monitoring timeout used when the config
// does not override it.
const DefaultWaitTimerMinutes = 60

// Config is the root scribe configuration, loaded from scribe.yml (or
// scribe.toml) with environment variable expansion applied.
type Config struct {
	Version string `yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`

	// HistoryPath is the capture tool's upload history file. The file is
	// owned and written by the capture tool; scribe only ever reads it.
	HistoryPath string `yaml:"history_path" toml:"history_path" jsonschema:"description=Path to the capture tool's upload history JSON log"`

	// WhisperModel is the speech engine model selector. Opaque to scribe.
	WhisperModel string `yaml:"whisper_model,omitempty" toml:"whisper_model,omitempty" jsonschema:"description=Speech engine model size (e.g. base, small, large)"`

	// WhisperDevice is the speech engine compute device selector. Opaque to scribe.
	WhisperDevice string `yaml:"whisper_device,omitempty" toml:"whisper_device,omitempty" jsonschema:"description=Speech engine compute device (e.g. cpu, cuda)"`

	// WaitTimerMinutes is the default monitoring timeout in minutes.
	WaitTimerMinutes int `yaml:"wait_timer_minutes,omitempty" toml:"wait_timer_minutes,omitempty" jsonschema:"description=Default monitoring timeout in minutes"`

	// PollInterval is the monitoring poll cadence as a Go duration string
	// (e.g. "1s"). Mostly useful for tests and slow filesystems.
	PollInterval string `yaml:"poll_interval,omitempty" toml:"poll_interval,omitempty" jsonschema:"description=Poll cadence as a Go duration string (default 1s)"`

	// WebhookURL is the delivery endpoint. Usually supplied via the
	// WEBHOOK_URL environment variable (a .env file is honored); a config
	// value takes precedence when set.
	WebhookURL string `yaml:"webhook_url,omitempty" toml:"webhook_url,omitempty" jsonschema:"description=Webhook endpoint URL (falls back to WEBHOOK_URL env var)"`

	// Extensions holds tool-specific configuration blocks (e.g. "logging")
	// that are decoded on demand with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// UnmarshalExtension decodes a named extension block into out. Returns an
// error only when the block exists and cannot be decoded; a missing block
// leaves out untouched.
func (c *Config) UnmarshalExtension(name string, out interface{}) error {
	raw, ok := c.Extensions[name]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode extension %q: %w", name, err)
	}
	return nil
}

// PollEvery returns the configured poll interval, falling back to the
// default when unset or unparseable.
func (c *Config) PollEvery() time.Duration {
	if c.PollInterval == "" {
		return DefaultPollInterval
	}
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}

// Timeout returns the configured monitoring timeout as a duration.
func (c *Config) Timeout() time.Duration {
	minutes := c.WaitTimerMinutes
	if minutes <= 0 {
		minutes = DefaultWaitTimerMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// applyDefaults fills zero values with the defaults the original tool shipped.
func (c *Config) applyDefaults() {
	if c.WhisperModel == "" {
		c.WhisperModel = "base"
	}
	if c.WhisperDevice == "" {
		c.WhisperDevice = "cpu"
	}
	if c.WaitTimerMinutes == 0 {
		c.WaitTimerMinutes = DefaultWaitTimerMinutes
	}
}
