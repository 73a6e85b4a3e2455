package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "TERMINALQA"

// Config holds application-level configuration.
type Config struct {
	BaseURL        string `mapstructure:"base_url"`        // e.g. "http://127.0.0.1:8000"
	CredentialPath string `mapstructure:"credential_path"` // JSON file holding token and username
	LogLevel       string `mapstructure:"log_level"`
	LogPath        string `mapstructure:"log_path"`
}

// Load merges defaults, an optional YAML file and environment variables.
// A .env file in the working directory is applied first if present.
//
//	TERMINALQA_BASE_URL         backend URL (default: http://127.0.0.1:8000)
//	TERMINALQA_CREDENTIAL_PATH  credential file (default: ~/.config/terminalqa/credential.json)
//	TERMINALQA_LOG_LEVEL        debug, info, warn or error (default: warn)
//	TERMINALQA_LOG_PATH         log file (default: ~/.config/terminalqa/terminalqa.log)
//
// An explicit path must exist; the default config.yaml is optional.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("base_url", "http://127.0.0.1:8000")
	v.SetDefault("credential_path", filepath.Join(dir, "credential.json"))
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_path", filepath.Join(dir, "terminalqa.log"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.BaseURL, err = normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", cfg.LogLevel)
	}
	return cfg, nil
}

// Dir returns ~/.config/terminalqa.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "terminalqa"), nil
}

func normalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid base_url: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", fmt.Errorf("invalid base_url: http is only allowed for loopback hosts")
		}
	default:
		return "", fmt.Errorf("invalid base_url: unsupported scheme %q", parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
