// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LocalEnvFile seeds the environment for local runs. Variables already set
// take precedence over the file.
const LocalEnvFile = "config/local.env"

// DefaultPersonalEmailDomains are webmail providers whose users sign up as
// employees rather than as a new company.
var DefaultPersonalEmailDomains = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"icloud.com",
	"aol.com",
}

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Security  SecurityConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	Accounts  AccountsConfig
	Notify    NotifyConfig
	Bootstrap BootstrapConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds the signing secret and lifetime of session tokens,
// and the admins who operate the whole platform.
type SecurityConfig struct {
	SessionSecret  string
	SessionTTL     time.Duration
	OperatorEmails []string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AccountsConfig tunes signup classification.
type AccountsConfig struct {
	PersonalEmailDomains []string
}

// NotifyConfig configures new-lead notifications. An empty token disables them.
type NotifyConfig struct {
	TelegramToken  string
	TelegramChatID int64
}

// BootstrapConfig names a company and admin to create on startup if missing,
// so a fresh install has someone able to use the admin API.
type BootstrapConfig struct {
	CompanyName string
	AdminEmail  string
}

// Load seeds the environment from LocalEnvFile when present, then reads and
// validates the configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(LocalEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", LocalEnvFile, err)
	}
	return FromEnv(os.Getenv)
}

// LoadDatabase reads only the database settings, for tools that do not
// serve requests.
func LoadDatabase() (DatabaseConfig, error) {
	if err := godotenv.Load(LocalEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DatabaseConfig{}, fmt.Errorf("load %s: %w", LocalEnvFile, err)
	}

	var db DatabaseConfig
	if err := (loader{getenv: os.Getenv}).database(&db); err != nil {
		return DatabaseConfig{}, err
	}
	if db.URL == "" {
		return DatabaseConfig{}, errors.New("DATABASE_URL is required (or DB_USER and DB_NAME)")
	}
	return db, nil
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	l := loader{getenv: getenv}
	cfg := &Config{}

	if err := l.database(&cfg.Database); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	if err := l.server(&cfg.Server); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := l.security(&cfg.Security); err != nil {
		return nil, fmt.Errorf("load security config: %w", err)
	}
	if err := l.notify(&cfg.Notify); err != nil {
		return nil, fmt.Errorf("load notify config: %w", err)
	}

	cfg.CORS.AllowedOrigins = splitList(l.getOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))
	cfg.Logging.Level = l.getOrDefault("LOG_LEVEL", "info")
	cfg.Logging.Format = l.getOrDefault("LOG_FORMAT", "json")

	cfg.Accounts.PersonalEmailDomains = DefaultPersonalEmailDomains
	if raw := getenv("PERSONAL_EMAIL_DOMAINS"); raw != "" {
		cfg.Accounts.PersonalEmailDomains = splitList(strings.ToLower(raw))
	}

	cfg.Bootstrap.CompanyName = strings.TrimSpace(getenv("BOOTSTRAP_COMPANY_NAME"))
	cfg.Bootstrap.AdminEmail = strings.ToLower(strings.TrimSpace(getenv("BOOTSTRAP_ADMIN_EMAIL")))

	cfg.Security.OperatorEmails = splitList(strings.ToLower(getenv("OPERATOR_EMAILS")))
	if email := cfg.Bootstrap.AdminEmail; email != "" && !slices.Contains(cfg.Security.OperatorEmails, email) {
		cfg.Security.OperatorEmails = append(cfg.Security.OperatorEmails, email)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

type loader struct {
	getenv func(string) string
}

func (l loader) getOrDefault(key, fallback string) string {
	if value := l.getenv(key); value != "" {
		return value
	}
	return fallback
}

func (l loader) database(db *DatabaseConfig) error {
	db.URL = l.getenv("DATABASE_URL")
	if db.URL != "" {
		return nil
	}

	db.Host = l.getOrDefault("DB_HOST", "localhost")
	db.User = l.getenv("DB_USER")
	db.Password = l.getenv("DB_PASSWORD")
	db.Name = l.getenv("DB_NAME")
	db.SSLMode = l.getOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(l.getOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	db.Port = port

	if db.User != "" && db.Name != "" {
		db.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			db.User, db.Password, db.Host, db.Port, db.Name, db.SSLMode,
		)
	}
	return nil
}

func (l loader) server(s *ServerConfig) error {
	port, err := strconv.Atoi(l.getOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	s.Port = port
	s.Host = l.getOrDefault("HOST", "0.0.0.0")
	return nil
}

func (l loader) security(s *SecurityConfig) error {
	s.SessionSecret = l.getenv("SESSION_SECRET")
	ttl, err := time.ParseDuration(l.getOrDefault("SESSION_TTL", "12h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	s.SessionTTL = ttl
	return nil
}

func (l loader) notify(n *NotifyConfig) error {
	n.TelegramToken = l.getenv("TELEGRAM_BOT_TOKEN")
	if raw := l.getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		n.TelegramChatID = id
	}
	return nil
}

// Validate checks that all required configuration is present and valid,
// reporting every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required (or DB_USER and DB_NAME)")
	}

	if len(c.Security.SessionSecret) < 16 {
		problems = append(problems, "SESSION_SECRET must be at least 16 characters")
	}
	if c.Security.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	if c.Notify.TelegramToken != "" && c.Notify.TelegramChatID == 0 {
		problems = append(problems, "TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	if (c.Bootstrap.CompanyName == "") != (c.Bootstrap.AdminEmail == "") {
		problems = append(problems, "BOOTSTRAP_COMPANY_NAME and BOOTSTRAP_ADMIN_EMAIL must be set together")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
