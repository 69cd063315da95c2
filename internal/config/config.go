// Package config resolves the runtime configuration from flags, environment
// variables, an optional config file and a local .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Output formats.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

const (
	// EnvPrefix is the prefix of every environment variable read by viper.
	EnvPrefix = "PR_INSIGHTS"

	inputDateLayout  = "2006/01/02"
	githubDateLayout = "2006-01-02"
)

// OfflineUser labels a report built from an input file without --user.
const OfflineUser = "local"

var (
	// ErrMissingToken is returned when an online command has no GitHub token.
	ErrMissingToken = errors.New("GITHUB_TOKEN environment variable is not set")
	// ErrMissingUser is returned when neither a user nor an input file was given.
	ErrMissingUser = errors.New("at least one --user is required unless --input is set")
)

// Config is the validated configuration of one invocation.
type Config struct {
	Token     string
	Users     []string
	From      time.Time
	To        time.Time
	InputFile string
	Output    string
	OutFile   string
	Now       time.Time
	Verbose   bool
	NoColor   bool
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The token keeps the conventional name used by gh and other tools.
	_ = v.BindEnv("token", "GITHUB_TOKEN", EnvPrefix+"_TOKEN")

	v.SetDefault("output", OutputText)
	v.SetDefault("verbose", false)
	v.SetDefault("no-color", false)
}

// ReadFile reads the config file named by the "config" key, or
// .pr-insights.yaml from the working or home directory. A missing default
// file is ignored.
func ReadFile(v *viper.Viper) error {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".pr-insights")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Load builds a validated Config from v. wallClock is used when no
// reference time was configured.
func Load(v *viper.Viper, wallClock func() time.Time) (*Config, error) {
	cfg := &Config{
		Token:     strings.TrimSpace(v.GetString("token")),
		InputFile: v.GetString("input"),
		Output:    strings.ToLower(v.GetString("output")),
		OutFile:   v.GetString("out"),
		Verbose:   v.GetBool("verbose"),
		NoColor:   v.GetBool("no-color"),
	}

	for _, u := range v.GetStringSlice("user") {
		if u = strings.TrimSpace(u); u != "" {
			cfg.Users = append(cfg.Users, u)
		}
	}
	if len(cfg.Users) == 0 {
		if cfg.InputFile == "" {
			return nil, ErrMissingUser
		}
		cfg.Users = []string{OfflineUser}
	}
	if cfg.InputFile == "" && cfg.Token == "" {
		return nil, ErrMissingToken
	}

	switch cfg.Output {
	case OutputText, OutputJSON, OutputMarkdown:
	default:
		return nil, fmt.Errorf("invalid --output %q: use %s, %s or %s", cfg.Output, OutputText, OutputJSON, OutputMarkdown)
	}

	var err error
	if cfg.From, err = parseDate("from", v.GetString("from")); err != nil {
		return nil, err
	}
	if cfg.To, err = parseDate("to", v.GetString("to")); err != nil {
		return nil, err
	}
	if !cfg.From.IsZero() && !cfg.To.IsZero() && cfg.To.Before(cfg.From) {
		return nil, fmt.Errorf("invalid date range: --to %s is before --from %s",
			cfg.To.Format(inputDateLayout), cfg.From.Format(inputDateLayout))
	}

	cfg.Now = wallClock()
	if raw := v.GetString("now"); raw != "" {
		if cfg.Now, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, fmt.Errorf("invalid --now %q, use RFC 3339 (2006-01-02T15:04:05Z): %w", raw, err)
		}
	}
	return cfg, nil
}

// Token returns the configured GitHub token for commands that need nothing else.
func Token(v *viper.Viper) (string, error) {
	token := strings.TrimSpace(v.GetString("token"))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// DateRange renders the search qualifier for the configured dates, with a
// leading space so it can be appended to a query. It is empty when neither
// bound is set.
func (c *Config) DateRange() string {
	if c.From.IsZero() && c.To.IsZero() {
		return ""
	}
	fromQuery, toQuery := "*", "*"
	if !c.From.IsZero() {
		fromQuery = c.From.Format(githubDateLayout)
	}
	if !c.To.IsZero() {
		toQuery = c.To.Format(githubDateLayout)
	}
	return fmt.Sprintf(" created:%s..%s", fromQuery, toQuery)
}

func parseDate(flag, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(inputDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date format, use YYYY/MM/DD: %w", flag, err)
	}
	return t, nil
}
