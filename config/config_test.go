package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytesYAML(t *testing.T) {
	data := []byte(`
version: "1.0"
history_path: /tmp/History.json
whisper_model: small
wait_timer_minutes: 30
`)

	cfg, err := LoadFromBytes(data, ".yml")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/History.json", cfg.HistoryPath)
	assert.Equal(t, "small", cfg.WhisperModel)
	assert.Equal(t, 30, cfg.WaitTimerMinutes)
	// Defaults fill unset fields
	assert.Equal(t, "cpu", cfg.WhisperDevice)
}

func TestLoadFromBytesTOML(t *testing.T) {
	data := []byte(`
history_path = "/tmp/History.json"
whisper_device = "cuda"
`)

	cfg, err := LoadFromBytes(data, ".toml")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/History.json", cfg.HistoryPath)
	assert.Equal(t, "cuda", cfg.WhisperDevice)
	assert.Equal(t, "base", cfg.WhisperModel)
	assert.Equal(t, DefaultWaitTimerMinutes, cfg.WaitTimerMinutes)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("SCRIBE_TEST_HISTORY", "/var/capture/History.json")

	cfg, err := LoadFromBytes([]byte("history_path: ${SCRIBE_TEST_HISTORY}\n"), ".yml")
	require.NoError(t, err)
	assert.Equal(t, "/var/capture/History.json", cfg.HistoryPath)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("history_path: [unclosed"), ".yml")
	assert.Error(t, err)
}

func TestUnmarshalExtension(t *testing.T) {
	data := []byte(`
history_path: /tmp/History.json
logging:
  level: debug
  format:
    preset: json
`)

	cfg, err := LoadFromBytes(data, ".yml")
	require.NoError(t, err)

	var logCfg struct {
		Level  string `mapstructure:"level"`
		Format struct {
			Preset string `mapstructure:"preset"`
		} `mapstructure:"format"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "json", logCfg.Format.Preset)

	// Missing extension is not an error
	var other struct{ X string }
	assert.NoError(t, cfg.UnmarshalExtension("nope", &other))
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	configPath := filepath.Join(root, "scribe.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("history_path: /tmp/h\n"), 0644))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, configPath, found)
}

func TestFindConfigFileMissing(t *testing.T) {
	_, err := FindConfigFile(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scribe.yml"),
		[]byte("history_path: /tmp/History.json\n"), 0644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/History.json", cfg.HistoryPath)
}

func TestLoadReadsAdjacentDotenv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scribe.yml"),
		[]byte("history_path: /tmp/History.json\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("WEBHOOK_URL=https://hooks.example.com/adjacent\n"), 0644))

	// The endpoint must come from the .env file, not the ambient env.
	t.Setenv("WEBHOOK_URL", "")
	os.Unsetenv("WEBHOOK_URL")

	cfg, err := Load(filepath.Join(dir, "scribe.yml"))
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/adjacent", cfg.ResolveWebhookURL())
	require.NoError(t, cfg.ValidateForDelivery())
}

func TestResolveWebhookURL(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "https://env.example.com/hook")

	cfg := &Config{}
	assert.Equal(t, "https://env.example.com/hook", cfg.ResolveWebhookURL())

	// Config value wins over the environment
	cfg.WebhookURL = "https://cfg.example.com/hook"
	assert.Equal(t, "https://cfg.example.com/hook", cfg.ResolveWebhookURL())
}

func TestPollEvery(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, time.Second, cfg.PollEvery())

	cfg.PollInterval = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.PollEvery())

	cfg.PollInterval = "garbage"
	assert.Equal(t, time.Second, cfg.PollEvery())
}

func TestTimeout(t *testing.T) {
	cfg := &Config{WaitTimerMinutes: 5}
	assert.Equal(t, 5*time.Minute, cfg.Timeout())

	cfg.WaitTimerMinutes = 0
	assert.Equal(t, time.Duration(DefaultWaitTimerMinutes)*time.Minute, cfg.Timeout())
}
