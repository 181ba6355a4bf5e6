package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/scribe/errors"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// ConfigFileNames are the file names searched for, in priority order.
var ConfigFileNames = []string{"scribe.yml", "scribe.yaml", "scribe.toml"}

// Load reads and parses a scribe configuration file. A .env sitting next
// to the config file is loaded first so that ${VAR} expansion and the
// WEBHOOK_URL fallback see it, regardless of how the path was resolved.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		if scribeErr, ok := err.(*errors.ScribeError); ok {
			return nil, scribeErr.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromBytes parses configuration data. ext selects the decoder
// (".toml" for TOML, anything else is treated as YAML).
func LoadFromBytes(data []byte, ext string) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if ext == ".toml" {
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config")
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config")
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault finds and loads the configuration starting from the current
// working directory. A .env file next to the config (or in the working
// directory) is loaded first so that ${VAR} expansion and the WEBHOOK_URL
// fallback see it.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration searching upward from the given directory.
func LoadFrom(startDir string) (*Config, error) {
	// Best effort: a missing .env is not an error. Load handles the .env
	// next to the config file itself.
	_ = godotenv.Load(filepath.Join(startDir, ".env"))

	path, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	return Load(path)
}

// FindConfigFile walks up from startDir looking for a scribe config file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, ConfigFileNames[0]))
		}
		dir = parent
	}
}

// ResolveWebhookURL returns the delivery endpoint: the config value when
// set, otherwise the WEBHOOK_URL environment variable. Empty means
// unconfigured.
func (c *Config) ResolveWebhookURL() string {
	if c.WebhookURL != "" {
		return strings.TrimSpace(c.WebhookURL)
	}
	return strings.TrimSpace(os.Getenv("WEBHOOK_URL"))
}

// expandEnvVars replaces ${VAR} references with their environment values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
