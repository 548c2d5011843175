package facility

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salt.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
portal_url: https://www.salt.ac.za/wm/webservices/proposals
username: observer
password: secret
proposal_code: 2020-1-SCI-001
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PortalURL != "https://www.salt.ac.za/wm/webservices/proposals" {
		t.Fatalf("portal url = %q", cfg.PortalURL)
	}
	if cfg.Username != "observer" || cfg.Password != "secret" {
		t.Fatalf("credentials = %q/%q", cfg.Username, cfg.Password)
	}
	if cfg.ProposalCode != "2020-1-SCI-001" {
		t.Fatalf("proposal code = %q", cfg.ProposalCode)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
portal_url: https://staging.example/proposals
username: observer
password: file-secret
`)

	t.Setenv(EnvPassword, "env-secret")
	t.Setenv(EnvProposalCode, "2021-2-SCI-042")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Password != "env-secret" {
		t.Fatalf("password = %q, want env override", cfg.Password)
	}
	if cfg.ProposalCode != "2021-2-SCI-042" {
		t.Fatalf("proposal code = %q, want env override", cfg.ProposalCode)
	}
	if cfg.Username != "observer" {
		t.Fatalf("username = %q, want file value", cfg.Username)
	}
}

func TestLoadConfigReportsMissingValues(t *testing.T) {
	path := writeConfig(t, `
portal_url: https://staging.example/proposals
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if !strings.Contains(err.Error(), "username") || !strings.Contains(err.Error(), "password") {
		t.Fatalf("error = %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvPortalURL, "https://env.example/proposals")
	t.Setenv(EnvUsername, "observer")
	t.Setenv(EnvPassword, "secret")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.PortalURL != "https://env.example/proposals" {
		t.Fatalf("portal url = %q", cfg.PortalURL)
	}
}
