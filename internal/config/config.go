package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a required setting is missing or malformed
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	BadgeModeAll     = "all"
	BadgeModeHighest = "highest"

	defaultSlackAPIURL   = "https://slack.com/api"
	defaultGitHubTimeout = 15 * time.Second
	defaultSlackTimeout  = 15 * time.Second
)

// Config represents the application configuration
type Config struct {
	RepoURLs  string          `yaml:"repo_urls" env:"INPUT_REPOURLS"`
	GitHub    GitHubConfig    `yaml:"github"`
	Slack     SlackConfig     `yaml:"slack"`
	Notifiers NotifiersConfig `yaml:"notifiers"`
	Message   MessageConfig   `yaml:"message"`
	Log       LogConfig       `yaml:"log"`
	DryRun    bool            `yaml:"dry_run" env:"DRY_RUN"`
}

// GitHubConfig holds the hosting platform credentials
type GitHubConfig struct {
	Token   string        `yaml:"token" env:"INPUT_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env:"GITHUB_TIMEOUT"`
}

// SlackConfig holds the chat delivery settings
type SlackConfig struct {
	BotToken string        `yaml:"bot_token" env:"INPUT_SLACKBOTTOKEN"`
	Channel  string        `yaml:"channel" env:"INPUT_CHANNEL"`
	APIURL   string        `yaml:"api_url" env:"SLACK_API_URL"`
	Timeout  time.Duration `yaml:"timeout" env:"SLACK_TIMEOUT"`
}

// NotifiersConfig holds optional secondary sinks
type NotifiersConfig struct {
	Teams struct {
		WebhookURL string `yaml:"webhook_url" env:"TEAMS_WEBHOOK_URL"`
	} `yaml:"teams"`
}

// MessageConfig controls how the reminder is rendered.
// UrgencyLabels is ordered from least to most urgent; UrgentLabels lists the
// tiers that add the call-to-action line.
type MessageConfig struct {
	Language      string   `yaml:"language" env:"INPUT_LANGUAGE"`
	BadgeMode     string   `yaml:"badge_mode" env:"INPUT_BADGEMODE"`
	UrgencyLabels []string `yaml:"urgency_labels" env:"INPUT_URGENCYLABELS" env-separator:","`
	UrgentLabels  []string `yaml:"urgent_labels" env:"INPUT_URGENTLABELS" env-separator:","`
}

// LogConfig mirrors the logger settings
type LogConfig struct {
	File       string `yaml:"file" env:"LOG_FILE"`
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
	Stdout     bool   `yaml:"stdout" env:"LOG_STDOUT"`
}

// Load reads the optional configuration file, applies environment overrides
// and fills in defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading configuration file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	// Trim spaces from credentials pasted into secrets
	originalToken := cfg.GitHub.Token
	originalBot := cfg.Slack.BotToken
	cfg.GitHub.Token = strings.TrimSpace(cfg.GitHub.Token)
	cfg.Slack.BotToken = strings.TrimSpace(cfg.Slack.BotToken)
	if cfg.GitHub.Token != originalToken {
		slog.Debug("Trimmed spaces from GitHub token in config.")
	}
	if cfg.Slack.BotToken != originalBot {
		slog.Debug("Trimmed spaces from Slack bot token in config.")
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LogOnly returns a configuration carrying only the logging settings found in
// the environment with defaults applied. Used to report a failed Load.
func LogOnly() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg.Log); err != nil {
		cfg.Log = LogConfig{}
	}
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.GitHub.Timeout == 0 {
		c.GitHub.Timeout = defaultGitHubTimeout
	}
	if c.Slack.APIURL == "" {
		c.Slack.APIURL = defaultSlackAPIURL
	}
	c.Slack.APIURL = strings.TrimSuffix(c.Slack.APIURL, "/")
	if c.Slack.Timeout == 0 {
		c.Slack.Timeout = defaultSlackTimeout
	}
	if c.Message.Language == "" {
		c.Message.Language = "en"
	}
	if c.Message.BadgeMode == "" {
		c.Message.BadgeMode = BadgeModeAll
	}
	if len(c.Message.UrgencyLabels) == 0 {
		c.Message.UrgencyLabels = []string{"D-3", "D-2", "D-1", "D-0"}
	}
	// The most urgent tier always carries the call to action
	if len(c.Message.UrgentLabels) == 0 {
		c.Message.UrgentLabels = c.Message.UrgencyLabels[len(c.Message.UrgencyLabels)-1:]
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.File == "" {
		c.Log.Stdout = true
	}
}

// Validate checks that every setting a run needs is present
func (c *Config) Validate() error {
	if len(c.RepositoryURLs()) == 0 {
		return fmt.Errorf("%w: repo_urls is required", ErrInvalidConfig)
	}
	if !c.DryRun {
		if c.Slack.BotToken == "" {
			return fmt.Errorf("%w: slack bot token is required", ErrInvalidConfig)
		}
		if c.Slack.Channel == "" {
			return fmt.Errorf("%w: slack channel is required", ErrInvalidConfig)
		}
	}
	switch c.Message.BadgeMode {
	case BadgeModeAll, BadgeModeHighest:
	default:
		return fmt.Errorf("%w: unknown badge_mode %q", ErrInvalidConfig, c.Message.BadgeMode)
	}
	if _, err := language.Parse(c.Message.Language); err != nil {
		return fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, c.Message.Language, err)
	}
	for _, urgent := range c.Message.UrgentLabels {
		if !contains(c.Message.UrgencyLabels, urgent) {
			return fmt.Errorf("%w: urgent label %q is not an urgency label", ErrInvalidConfig, urgent)
		}
	}
	return nil
}

// RepositoryURLs splits the comma-separated repository list, trimming
// whitespace and dropping empty entries
func (c *Config) RepositoryURLs() []string {
	var urls []string
	for _, u := range strings.Split(c.RepoURLs, ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		urls = append(urls, u)
	}
	return urls
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
