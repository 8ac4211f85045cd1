// Package config loads service settings from defaults, an optional YAML file
// and the environment, in increasing order of priority.
package config

import (
	"os"
	"time"
)

// Config holds all service settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Share   ShareConfig   `yaml:"share"`
	Globe   GlobeConfig   `yaml:"globe"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port              string        `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
}

// ShareConfig holds shareable reference settings.
type ShareConfig struct {
	// Origin and path that shareable references point at.
	PublicURL string `yaml:"public_url"`
}

// GlobeConfig holds camera settings for the render collaborator.
type GlobeConfig struct {
	Altitude      float64       `yaml:"altitude"`
	FocusDuration time.Duration `yaml:"focus_duration"`
	InitDelay     time.Duration `yaml:"init_delay"`
}

// SessionConfig holds session timing settings.
type SessionConfig struct {
	CopiedResetDelay time.Duration `yaml:"copied_reset_delay"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the standard values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Share: ShareConfig{
			PublicURL: "http://localhost:8080/",
		},
		Globe: GlobeConfig{
			Altitude:      1.5,
			FocusDuration: 1500 * time.Millisecond,
			InitDelay:     1000 * time.Millisecond,
		},
		Session: SessionConfig{
			CopiedResetDelay: 1500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
