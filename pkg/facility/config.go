package facility

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override config-file values, so credentials can
// stay out of checked-in configuration.
const (
	EnvPortalURL    = "SALT_PORTAL_URL"
	EnvUsername     = "SALT_USERNAME"
	EnvPassword     = "SALT_PASSWORD"
	EnvProposalCode = "SALT_PROPOSAL_CODE"
)

// Config holds the portal connection settings for the SALT facility.
type Config struct {
	// PortalURL is the Web Manager's proposal submission endpoint.
	PortalURL string `yaml:"portal_url"`

	// Username and Password authenticate against the Web Manager.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// ProposalCode is the fallback proposal when a request does not carry
	// its own.
	ProposalCode string `yaml:"proposal_code"`
}

// LoadConfig reads a YAML configuration file and applies environment
// overrides on top of it.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("facility: read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("facility: parse config %q: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv builds a configuration from environment variables alone.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPortalURL); v != "" {
		c.PortalURL = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		c.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvProposalCode); v != "" {
		c.ProposalCode = v
	}
}

// Validate checks that the settings needed to reach the portal are present.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.PortalURL) == "" {
		missing = append(missing, "portal_url")
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(c.Password) == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return errors.New("facility: missing config values: " + strings.Join(missing, ", "))
	}
	return nil
}
