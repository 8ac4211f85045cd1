package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable pointing at a config file.
const PathEnv = "NAMELOCATOR_CONFIG"

const defaultPath = "config.yaml"

// Load builds the configuration: defaults < file < environment.
// path may be empty; then $NAMELOCATOR_CONFIG or ./config.yaml is used if
// present. An explicitly named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path == "" {
		path = defaultPath
		explicit = false
	}

	if err := loadFromFile(cfg, path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config: %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) error {
	cfg.Server.Port = strings.TrimPrefix(Get("PORT", cfg.Server.Port), ":")
	cfg.Share.PublicURL = Get("PUBLIC_URL", cfg.Share.PublicURL)
	cfg.Logging.Level = Get("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.LogFile = Get("LOG_FILE", cfg.Logging.LogFile)

	if v := os.Getenv("GLOBE_ALTITUDE"); v != "" {
		alt, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GLOBE_ALTITUDE: %w", err)
		}
		cfg.Globe.Altitude = alt
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"GLOBE_FOCUS_DURATION", &cfg.Globe.FocusDuration},
		{"GLOBE_INIT_DELAY", &cfg.Globe.InitDelay},
		{"COPIED_RESET_DELAY", &cfg.Session.CopiedResetDelay},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	return nil
}
