// Package config loads and manages meetingctl configuration.
// Sources, highest priority first:
//  1. environment variables (LLM_API_KEY, JIRA_URL, SLACK_API_TOKEN, SMTP_* ...)
//  2. the --config flag
//  3. ~/.config/meetingctl/config.yaml
//
// Integration credentials are validated eagerly by the executors, before any
// network call, via the Validate methods below.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/meetingctl/meetingctl/internal/errs"
)

// ProviderConfig holds one LLM provider's settings.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// PermissionConfig controls tool-call confirmation.
type PermissionConfig struct {
	// Mode: "interactive" (default) | "auto-approve"
	Mode string `yaml:"mode"`

	// AutoApproveTools lists tools that never prompt
	// (e.g. ["process_url", "analyze_actions"]).
	AutoApproveTools []string `yaml:"auto_approve_tools"`
}

// JiraConfig holds the issue-tracker connection settings.
type JiraConfig struct {
	URL        string `yaml:"url"`
	Username   string `yaml:"username"`
	APIToken   string `yaml:"api_token"`
	ProjectKey string `yaml:"project_key"`
}

// Validate checks that everything needed for an issue-creation call is set.
func (c *JiraConfig) Validate() error {
	if c.URL == "" || c.Username == "" || c.APIToken == "" {
		return errs.New(errs.KindConfig, "jira",
			"JIRA_URL, JIRA_USERNAME and JIRA_API_TOKEN must all be set")
	}
	return nil
}

// SlackConfig holds the chat-notification settings.
type SlackConfig struct {
	APIToken string `yaml:"api_token"`
	// BaseURL overrides https://slack.com, for tests.
	BaseURL string `yaml:"base_url"`
}

func (c *SlackConfig) Validate() error {
	if c.APIToken == "" {
		return errs.New(errs.KindConfig, "slack", "SLACK_API_TOKEN is not set")
	}
	return nil
}

// SMTPConfig holds mail-submission settings for the MoM email executor.
// Port stays a string so a malformed SMTP_PORT surfaces as a config error
// at validation time, not as a silent zero.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func (c *SMTPConfig) Validate() error {
	if c.Host == "" || c.Port == "" || c.Username == "" || c.Password == "" {
		return errs.New(errs.KindConfig, "smtp",
			"SMTP_HOST, SMTP_PORT, SMTP_USERNAME and SMTP_PASSWORD must all be set")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errs.New(errs.KindConfig, "smtp", "SMTP_PORT must be an integer, got %q", c.Port)
	}
	return nil
}

// PortNumber returns the parsed port. Call Validate first.
func (c *SMTPConfig) PortNumber() int {
	n, _ := strconv.Atoi(c.Port)
	return n
}

// ScheduleConfig holds the call-scheduling executor's settings.
// The attendee is configuration rather than something derived from the
// action item's owner; deriving it would be guessing at intent.
type ScheduleConfig struct {
	SenderEmail    string `yaml:"sender_email"`
	SenderPassword string `yaml:"sender_password"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Attendee       string `yaml:"attendee"`
}

func (c *ScheduleConfig) Validate() error {
	if c.SenderEmail == "" || c.SenderPassword == "" {
		return errs.New(errs.KindConfig, "schedule",
			"SENDER_EMAIL and SENDER_PASSWORD must both be set")
	}
	return nil
}

// Config is the complete meetingctl configuration.
type Config struct {
	// Provider selects the active LLM provider ("anthropic", "openai", ...).
	Provider string `yaml:"provider"`

	// Model overrides the provider's default model.
	Model string `yaml:"model"`

	Providers map[string]*ProviderConfig `yaml:"providers"`

	Permissions PermissionConfig `yaml:"permissions"`

	Jira     JiraConfig     `yaml:"jira"`
	Slack    SlackConfig    `yaml:"slack"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Schedule ScheduleConfig `yaml:"schedule"`

	// SystemPrompt replaces the built-in agent instructions when set.
	SystemPrompt string `yaml:"system_prompt"`

	// MaxIterations caps the agent loop (default 15).
	MaxIterations int `yaml:"max_iterations"`

	// LogLevel: "debug", "info", "warn", "error" (default "warn").
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:      "openai",
		MaxIterations: 15,
		LogLevel:      "warn",
		Providers:     make(map[string]*ProviderConfig),
		Permissions: PermissionConfig{
			Mode:             "interactive",
			AutoApproveTools: []string{"process_url", "analyze_actions"},
		},
		Jira: JiraConfig{
			ProjectKey: "KAN",
		},
		Schedule: ScheduleConfig{
			Host:     "smtp.gmail.com",
			Port:     465,
			Attendee: "abhishek.chauhan@neosalpha.com",
		},
	}
}

// Load reads the config file and applies environment overrides.
// A missing file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".config", "meetingctl", "config.yaml")
		}
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]*ProviderConfig)
	}

	return cfg, nil
}

// GetProviderConfig returns the named provider's config, or an empty one.
func (c *Config) GetProviderConfig(name string) *ProviderConfig {
	if pc, ok := c.Providers[name]; ok {
		return pc
	}
	return &ProviderConfig{}
}

func applyEnvOverrides(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	// LLM provider overrides.
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		if cfg.Providers[cfg.Provider] == nil {
			cfg.Providers[cfg.Provider] = &ProviderConfig{}
		}
		cfg.Providers[cfg.Provider].APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		if cfg.Providers[cfg.Provider] == nil {
			cfg.Providers[cfg.Provider] = &ProviderConfig{}
		}
		cfg.Providers[cfg.Provider].BaseURL = v
	}
	setString(&cfg.Model, "LLM_MODEL")
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		if cfg.Providers["anthropic"] == nil {
			cfg.Providers["anthropic"] = &ProviderConfig{}
		}
		cfg.Providers["anthropic"].APIKey = v
	}
	setString(&cfg.Provider, "MEETINGCTL_PROVIDER")
	setString(&cfg.Model, "MEETINGCTL_MODEL")
	setString(&cfg.LogLevel, "MEETINGCTL_LOG")

	// Integration credentials.
	setString(&cfg.Jira.URL, "JIRA_URL")
	setString(&cfg.Jira.Username, "JIRA_USERNAME")
	setString(&cfg.Jira.APIToken, "JIRA_API_TOKEN")
	setString(&cfg.Jira.ProjectKey, "JIRA_PROJECT_KEY")

	setString(&cfg.Slack.APIToken, "SLACK_API_TOKEN")

	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setString(&cfg.SMTP.Port, "SMTP_PORT")
	setString(&cfg.SMTP.Username, "SMTP_USERNAME")
	setString(&cfg.SMTP.Password, "SMTP_PASSWORD")

	setString(&cfg.Schedule.SenderEmail, "SENDER_EMAIL")
	setString(&cfg.Schedule.SenderPassword, "SENDER_PASSWORD")
	setString(&cfg.Schedule.Attendee, "SCHEDULE_ATTENDEE")
}
