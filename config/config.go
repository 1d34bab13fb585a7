package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DBConfig       `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Media    MediaConfig    `yaml:"media"`
	Mail     MailConfig     `yaml:"mail"`
	Staff    StaffConfig    `yaml:"staff"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	LogLevel  string `yaml:"log_level"`
	PublicURL string `yaml:"public_url"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	TokenTTL        time.Duration `yaml:"token_ttl"`
	ConfirmationTTL time.Duration `yaml:"confirmation_ttl"`
}

type MediaConfig struct {
	UploadDir string `yaml:"upload_dir"`
}

type MailConfig struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	From         string `yaml:"from"`
}

// StaffConfig describes a staff account created at startup. It is skipped
// when Username is empty.
type StaffConfig struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

func (db *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		db.Host, db.User, db.Password, db.Name, db.Port, db.SSLMode,
	)
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8080",
			GinMode:   "release",
			LogLevel:  "info",
			PublicURL: "http://localhost:8080",
		},
		Database: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "techfesia",
			SSLMode: "disable",
		},
		Auth: AuthConfig{
			TokenTTL:        24 * time.Hour,
			ConfirmationTTL: 48 * time.Hour,
		},
		Media: MediaConfig{
			UploadDir: "./uploads",
		},
		Mail: MailConfig{
			From: "Techfesia <noreply@techfesia.local>",
		},
	}
}

// LoadConfig starts from DefaultConfig, applies the YAML file named by
// CONFIG_FILE when set, then environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := cfg.ParseEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewDecoder(file).Decode(c)
}

// ParseEnv overrides the configuration from environment variables.
func (c *Config) ParseEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.GinMode, "GIN_MODE")
	setString(&c.Server.LogLevel, "LOG_LEVEL")
	setString(&c.Server.PublicURL, "PUBLIC_URL")

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	if err := setDuration(&c.Auth.TokenTTL, "TOKEN_TTL"); err != nil {
		return err
	}
	if err := setDuration(&c.Auth.ConfirmationTTL, "CONFIRMATION_TTL"); err != nil {
		return err
	}

	setString(&c.Media.UploadDir, "UPLOAD_DIR")

	setString(&c.Mail.ResendAPIKey, "RESEND_API_KEY")
	setString(&c.Mail.From, "MAIL_FROM")

	setString(&c.Staff.Username, "STAFF_USERNAME")
	setString(&c.Staff.Email, "STAFF_EMAIL")
	setString(&c.Staff.Password, "STAFF_PASSWORD")
	return nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Server.Port)
	}
	if c.Staff.Username != "" && (c.Staff.Email == "" || c.Staff.Password == "") {
		return errors.New("STAFF_EMAIL and STAFF_PASSWORD are required when STAFF_USERNAME is set")
	}
	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
