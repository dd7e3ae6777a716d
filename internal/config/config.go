package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

type Config struct {
	Jira   JiraConfig
	Slack  SlackConfig
	Output OutputConfig
	Log    LogConfig
}

type JiraConfig struct {
	URL           string
	Email         string
	APIToken      string
	Project       string
	WorkTypeField string
}

type SlackConfig struct {
	BotToken string
	Channel  string
}

type OutputConfig struct {
	Directory string
	Workbook  string // xlsx file name, empty to skip
	Tables    bool   // write one csv per report
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadDotEnv loads variables from the given files (".env" by default)
// without overriding the environment. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return goerr.Wrap(err, "failed to load dotenv file", goerr.V("file", name))
		}
	}
	return nil
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Jira: JiraConfig{
			URL:           strings.TrimSpace(os.Getenv("JIRA_URL")),
			Email:         strings.TrimSpace(os.Getenv("JIRA_EMAIL")),
			APIToken:      os.Getenv("JIRA_API_TOKEN"),
			Project:       getEnvOrDefault("JIRA_PROJECT", "FS"),
			WorkTypeField: strings.TrimSpace(os.Getenv("WORK_TYPE_FIELD_ID")),
		},
		Slack: SlackConfig{
			BotToken: os.Getenv("SLACK_BOT_TOKEN"),
			Channel:  strings.TrimSpace(os.Getenv("SLACK_CHANNEL")),
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("OUTPUT_DIR", "."),
			Workbook:  strings.TrimSpace(os.Getenv("REPORT_WORKBOOK")),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "auto"),
		},
	}

	if v := os.Getenv("REPORT_TABLES"); v != "" {
		tables, err := strconv.ParseBool(v)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid REPORT_TABLES", goerr.V("value", v))
		}
		cfg.Output.Tables = tables
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.Jira.URL == "" {
		missing = append(missing, "JIRA_URL")
	}
	if c.Jira.Email == "" {
		missing = append(missing, "JIRA_EMAIL")
	}
	if c.Jira.APIToken == "" {
		missing = append(missing, "JIRA_API_TOKEN")
	}
	if len(missing) > 0 {
		return goerr.New("jira is not configured", goerr.V("missing", strings.Join(missing, ",")))
	}

	if c.Jira.Project == "" {
		return goerr.New("JIRA_PROJECT must not be empty")
	}

	return nil
}

// IsConfigured reports whether both the bot token and channel are set.
func (s SlackConfig) IsConfigured() bool {
	return s.BotToken != "" && s.Channel != ""
}

func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("jira_url", c.Jira.URL),
		slog.String("jira_project", c.Jira.Project),
		slog.Bool("has_jira_email", c.Jira.Email != ""),
		slog.Bool("has_jira_token", c.Jira.APIToken != ""),
		slog.String("work_type_field", c.Jira.WorkTypeField),
		slog.Bool("has_slack_token", c.Slack.BotToken != ""),
		slog.String("slack_channel", c.Slack.Channel),
		slog.String("output_dir", c.Output.Directory),
		slog.String("workbook", c.Output.Workbook),
		slog.Bool("tables", c.Output.Tables),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
