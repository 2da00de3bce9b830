package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samvad-hq/yelp-go/pkg/auth"
	"github.com/samvad-hq/yelp-go/pkg/yelp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the CLI configuration loaded from flags, environment variables
// and an optional credentials file.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	OutputFormat       string        `mapstructure:"output_format"`
	BaseURL            string        `mapstructure:"yelp_api_base_url"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	CredentialsFile    string        `mapstructure:"credentials_file"`

	ConsumerKey    string `mapstructure:"yelp_consumer_key"`
	ConsumerSecret string `mapstructure:"yelp_consumer_secret"`
	Token          string `mapstructure:"yelp_token"`
	TokenSecret    string `mapstructure:"yelp_token_secret"`
}

// flagKeys maps global flag names to config keys.
var flagKeys = map[string]string{
	"log-level":        "log_level",
	"output":           "output_format",
	"base-url":         "yelp_api_base_url",
	"timeout":          "http_timeout_seconds",
	"credentials-file": "credentials_file",
}

// RegisterFlags declares the global flags Load understands.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.StringP("output", "o", "", "output format (json or yaml)")
	fs.String("base-url", "", "API base URL")
	fs.Int64("timeout", 0, "HTTP timeout in seconds, 0 disables it")
	fs.String("credentials-file", "", "YAML or JSON file holding the OAuth credentials")
}

// Load reads configuration from environment variables, configs/.env and the
// flags in fs (which may be nil). Flags that were set win over the environment.
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "yelp-go")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("output_format", OutputJSON)
	v.SetDefault("yelp_api_base_url", yelp.DefaultBaseURL)
	v.SetDefault("http_timeout_seconds", 0)
	v.SetDefault("credentials_file", "")
	v.SetDefault("yelp_consumer_key", "")
	v.SetDefault("yelp_consumer_secret", "")
	v.SetDefault("yelp_token", "")
	v.SetDefault("yelp_token_secret", "")

	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	switch cfg.OutputFormat {
	case OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("invalid output_format %q (expected json or yaml)", cfg.OutputFormat)
	}

	if cfg.HTTPTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if path := strings.TrimSpace(cfg.CredentialsFile); path != "" {
		fileCreds, err := LoadCredentials(path)
		if err != nil {
			return nil, err
		}
		cfg.fillCredentials(fileCreds)
	}

	return &cfg, nil
}

// fillCredentials copies credentials from c only where the environment left a
// blank.
func (cfg *Config) fillCredentials(c auth.Credentials) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = strings.TrimSpace(src)
		}
	}
	fill(&cfg.ConsumerKey, c.ConsumerKey)
	fill(&cfg.ConsumerSecret, c.ConsumerSecret)
	fill(&cfg.Token, c.Token)
	fill(&cfg.TokenSecret, c.TokenSecret)
}

// Credentials returns the OAuth credentials held by cfg.
func (cfg *Config) Credentials() auth.Credentials {
	return auth.Credentials{
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		Token:          cfg.Token,
		TokenSecret:    cfg.TokenSecret,
	}
}

// Redacted is a loggable view of cfg with secrets masked.
func (cfg *Config) Redacted() map[string]any {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	return map[string]any{
		"app_name":             cfg.AppName,
		"app_env":              cfg.Env,
		"log_level":            cfg.LogLevel,
		"output_format":        cfg.OutputFormat,
		"yelp_api_base_url":    cfg.BaseURL,
		"http_timeout_seconds": cfg.HTTPTimeoutSeconds,
		"credentials_file":     cfg.CredentialsFile,
		"yelp_consumer_key":    mask(cfg.ConsumerKey),
		"yelp_consumer_secret": mask(cfg.ConsumerSecret),
		"yelp_token":           mask(cfg.Token),
		"yelp_token_secret":    mask(cfg.TokenSecret),
	}
}
