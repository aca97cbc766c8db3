// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dormdex/dormdex-server/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Source SourceConfig
	Reddit RedditConfig
	Imgur  ImgurConfig
	Server ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `json:"environment" validate:"required,oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `json:"level" validate:"required,oneof=debug info warn error"`
}

// DataConfig holds storage configuration.
type DataConfig struct {
	// BasePath is the directory holding the badger database and JSON exports.
	BasePath string `json:"base_path" validate:"required"`
}

// SourceConfig holds the target listing configuration.
type SourceConfig struct {
	// Subreddit is the forum the archiver ingests, without the "r/" prefix.
	Subreddit string `json:"subreddit" validate:"required"`
	// PageSize is the listing page size per request (Reddit caps at 100).
	PageSize int `json:"page_size" validate:"gte=1,lte=100"`
	// UserAgent identifies the archiver to upstream APIs.
	UserAgent string `json:"user_agent" validate:"required"`
}

// RedditConfig holds Reddit API credentials for the listing fetch.
// The avatar lookup is unauthenticated and does not use these.
type RedditConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// HasCredentials reports whether a full credential set is present.
func (r RedditConfig) HasCredentials() bool {
	return r.ClientID != "" && r.ClientSecret != "" && r.Username != "" && r.Password != ""
}

// ImgurConfig holds the Imgur API credential for album expansion.
type ImgurConfig struct {
	ClientID string `json:"client_id"`
}

// ServerConfig holds catalog API server configuration.
type ServerConfig struct {
	Port         string        `json:"port" validate:"required"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// Flags carries parsed command-line overrides into LoadConfig.
// Commands register the flags they support and pass the values through,
// which keeps flag.Parse out of this package.
type Flags struct {
	Environment string
	LogLevel    string
	DataPath    string
	Subreddit   string
	PageSize    string
	Port        string
	EnvFile     string
}

// Load builds configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Environment, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(flags.DataPath, "DATA_PATH", ""),
		},
		Source: SourceConfig{
			Subreddit: getConfigValue(flags.Subreddit, "TARGET", "UConnDorms"),
			PageSize:  getIntConfigValue(flags.PageSize, "PAGE_SIZE", 100),
			UserAgent: getConfigValue("", "USER_AGENT", "dormdex-archiver/1.0"),
		},
		Reddit: RedditConfig{
			ClientID:     getConfigValue("", "CLIENT_ID", ""),
			ClientSecret: getConfigValue("", "CLIENT_SECRET", ""),
			Username:     getConfigValue("", "REDDIT_USERNAME", ""),
			Password:     getConfigValue("", "REDDIT_PASSWORD", ""),
		},
		Imgur: ImgurConfig{
			ClientID: getConfigValue("", "IMGUR_CLIENT_ID", ""),
		},
		Server: ServerConfig{
			Port: getConfigValue(flags.Port, "SERVER_PORT", "8080"),
		},
	}

	// Parse server timeouts.
	var err error
	cfg.Server.ReadTimeout, err = getDurationConfigValue("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.WriteTimeout, err = getDurationConfigValue("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.IdleTimeout, err = getDurationConfigValue("SERVER_IDLE_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	// Expand and validate data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	v := validation.New()
	if err := v.Validate(c.App); err != nil {
		return err
	}
	if err := v.Validate(c.Logger); err != nil {
		return err
	}
	if err := v.Validate(c.Data); err != nil {
		return err
	}
	if err := v.Validate(c.Source); err != nil {
		return err
	}
	return v.Validate(c.Server)
}

// DatabasePath returns the badger database directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.BasePath, "db")
}

// ExportPath returns the path of the final catalog JSON artifact.
func (c *Config) ExportPath() string {
	return filepath.Join(c.Data.BasePath, c.Source.Subreddit+".json")
}

// RawExportPath returns the path of the raw listing JSON export.
func (c *Config) RawExportPath() string {
	return filepath.Join(c.Data.BasePath, c.Source.Subreddit+"-raw.json")
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/dormdex when unset.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "dormdex")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getDurationConfigValue returns a duration from env var or default.
func getDurationConfigValue(envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue("", envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
