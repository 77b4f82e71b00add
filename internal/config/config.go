package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
		CookieName            string `yaml:"cookie_name" env:"JWT_COOKIE_NAME"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Mail struct {
		Host      string `yaml:"host" env:"MAIL_HOST"`
		Port      int    `yaml:"port" env:"MAIL_PORT"`
		Username  string `yaml:"username" env:"MAIL_USERNAME"`
		Password  string `yaml:"password" env:"MAIL_PASSWORD"`
		FromName  string `yaml:"from_name" env:"MAIL_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"MAIL_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"MAIL_USE_TLS"`
		Langcode  string `yaml:"langcode" env:"MAIL_LANGCODE"`
	} `yaml:"mail"`

	Site struct {
		Name             string `yaml:"name" env:"SITE_NAME"`
		Mail             string `yaml:"mail" env:"SITE_MAIL"`
		StreamVocabulary string `yaml:"stream_vocabulary" env:"SITE_STREAM_VOCABULARY"`
		LoginPath        string `yaml:"login_path" env:"SITE_LOGIN_PATH"`
	} `yaml:"site"`

	Files struct {
		MaxUploadSize     int64  `yaml:"max_upload_size" env:"FILES_MAX_UPLOAD_SIZE"`
		AllowedExtensions string `yaml:"allowed_extensions" env:"FILES_ALLOWED_EXTENSIONS"`
		UploadLocation    string `yaml:"upload_location" env:"FILES_UPLOAD_LOCATION"`
		TemporaryMaxAge   string `yaml:"temporary_max_age" env:"FILES_TEMPORARY_MAX_AGE"`
		CleanupInterval   string `yaml:"cleanup_interval" env:"FILES_CLEANUP_INTERVAL"`
	} `yaml:"files"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; env vars alone are enough in containers.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	// Database defaults
	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "studentportal"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "8h"
	config.JWT.Issuer = "studentportal"
	config.JWT.CookieName = "session"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Mail defaults
	config.Mail.Host = "localhost"
	config.Mail.Port = 587
	config.Mail.FromName = "Student Portal"
	config.Mail.FromEmail = "no-reply@studentportal.local"
	config.Mail.Langcode = "en"

	// Site defaults
	config.Site.Name = "Student Portal"
	config.Site.Mail = "admin@studentportal.local"
	config.Site.StreamVocabulary = "student_streams"
	config.Site.LoginPath = "/user/login"

	// File defaults
	config.Files.MaxUploadSize = 2560000
	config.Files.AllowedExtensions = "png jpg jpeg gif"
	config.Files.UploadLocation = "profile_pictures"
	config.Files.TemporaryMaxAge = "6h"
	config.Files.CleanupInterval = "15m"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Site.Mail == "" {
		return fmt.Errorf("site mail is required")
	}

	if config.Files.MaxUploadSize <= 0 {
		return fmt.Errorf("files max upload size must be positive")
	}

	if len(config.AllowedExtensions()) == 0 {
		return fmt.Errorf("at least one allowed file extension is required")
	}

	if _, err := time.ParseDuration(config.Files.TemporaryMaxAge); err != nil {
		return fmt.Errorf("invalid temporary file max age: %w", err)
	}

	if _, err := time.ParseDuration(config.Files.CleanupInterval); err != nil {
		return fmt.Errorf("invalid file cleanup interval: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AllowedExtensions splits the space separated extension list, lower-cased.
func (c *Config) AllowedExtensions() []string {
	return strings.Fields(strings.ToLower(c.Files.AllowedExtensions))
}

// PublicBaseURL is the absolute URL the app is reachable at.
func (c *Config) PublicBaseURL() string {
	if c.Server.BaseURL != "" {
		return strings.TrimRight(c.Server.BaseURL, "/")
	}
	return "http://localhost:" + c.Server.Port
}
