package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/meetingctl/meetingctl/internal/errs"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.MaxIterations != 15 {
		t.Errorf("MaxIterations = %d, want 15", cfg.MaxIterations)
	}
	if cfg.Jira.ProjectKey != "KAN" {
		t.Errorf("Jira.ProjectKey = %q, want KAN", cfg.Jira.ProjectKey)
	}
	if cfg.Schedule.Host != "smtp.gmail.com" || cfg.Schedule.Port != 465 {
		t.Errorf("schedule defaults = %s:%d", cfg.Schedule.Host, cfg.Schedule.Port)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
provider: anthropic
jira:
  url: https://file.atlassian.net
  username: file-user
slack:
  api_token: file-token
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("JIRA_URL", "https://env.atlassian.net")
	t.Setenv("JIRA_API_TOKEN", "env-token")
	t.Setenv("SMTP_PORT", "587")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	// Env wins over file.
	if cfg.Jira.URL != "https://env.atlassian.net" {
		t.Errorf("Jira.URL = %q", cfg.Jira.URL)
	}
	// File value survives where no env is set.
	if cfg.Jira.Username != "file-user" {
		t.Errorf("Jira.Username = %q", cfg.Jira.Username)
	}
	if cfg.Jira.APIToken != "env-token" {
		t.Errorf("Jira.APIToken = %q", cfg.Jira.APIToken)
	}
	if cfg.SMTP.Port != "587" {
		t.Errorf("SMTP.Port = %q", cfg.SMTP.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("provider: [unclosed"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestJiraValidate(t *testing.T) {
	c := JiraConfig{URL: "https://x", Username: "u", APIToken: "t"}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	c.APIToken = ""
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !errs.IsKind(err, errs.KindConfig) {
		t.Errorf("kind = %v, want KindConfig", errs.KindOf(err))
	}
}

func TestSMTPValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SMTPConfig
		wantErr bool
	}{
		{"valid", SMTPConfig{Host: "h", Port: "465", Username: "u", Password: "p"}, false},
		{"missing host", SMTPConfig{Port: "465", Username: "u", Password: "p"}, true},
		{"port not integer", SMTPConfig{Host: "h", Port: "four-sixty-five", Username: "u", Password: "p"}, true},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errs.IsKind(err, errs.KindConfig) {
			t.Errorf("%s: kind = %v, want KindConfig", tt.name, errs.KindOf(err))
		}
	}

	valid := SMTPConfig{Host: "h", Port: "587", Username: "u", Password: "p"}
	if valid.PortNumber() != 587 {
		t.Errorf("PortNumber() = %d, want 587", valid.PortNumber())
	}
}

func TestScheduleValidate(t *testing.T) {
	c := ScheduleConfig{SenderEmail: "a@b.c", SenderPassword: "pw"}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	c.SenderPassword = ""
	if err := c.Validate(); !errs.IsKind(err, errs.KindConfig) {
		t.Errorf("expected KindConfig, got %v", err)
	}
}

func TestSlackValidate(t *testing.T) {
	c := SlackConfig{}
	if err := c.Validate(); !errs.IsKind(err, errs.KindConfig) {
		t.Errorf("expected KindConfig, got %v", err)
	}
	c.APIToken = "xoxb-1"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
