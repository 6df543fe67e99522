package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig                                 `yaml:"server"`
	Log       LogConfig                                    `yaml:"log"`
	Settings  SettingsConfig                               `yaml:"settings"`
	SES       SESConfig                                    `yaml:"ses"`
	Sender    SenderConfig                                 `yaml:"sender"`
	Host      HostConfig                                   `yaml:"host"`
	Events    map[domain.NotificationEvent]domain.Strategy `yaml:"events"`
	Templates map[domain.NotificationEvent]TemplateConfig  `yaml:"templates"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               int      `yaml:"port"`
	Host               string   `yaml:"host"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_seconds"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Addr returns host:port for the listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.GetHost(), c.Port)
}

// ShutdownTimeout returns the graceful shutdown window as a duration
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// Redact reports whether PII redaction is on (default true)
func (c LogConfig) Redact() bool {
	return c.RedactPII == nil || *c.RedactPII
}

// SettingsConfig selects where the excluded-domain setting is stored
type SettingsConfig struct {
	Backend       string `yaml:"backend"` // memory, postgres, redis, dynamodb, s3
	DatabaseURL   string `yaml:"database_url"`
	RedisURL      string `yaml:"redis_url"`
	RedisHashKey  string `yaml:"redis_hash_key"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	S3Bucket      string `yaml:"s3_bucket"`
	S3Prefix      string `yaml:"s3_prefix"`
	AWSRegion     string `yaml:"aws_region"`
	AWSProfile    string `yaml:"aws_profile"` // Empty string uses default credential chain
	Initial       string `yaml:"initial_excluded_domains"`
}

// SESConfig holds AWS SES API configuration
type SESConfig struct {
	Region           string `yaml:"region"`
	AccessKey        string `yaml:"access_key"`
	SecretKey        string `yaml:"secret_key"`
	ConfigurationSet string `yaml:"configuration_set"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c SESConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SenderConfig picks the delivery backend and sender identity
type SenderConfig struct {
	Type      string `yaml:"type"` // "ses" or "log"
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
	SiteName  string `yaml:"site_name"`
}

// HostConfig describes the commerce host for the activation check
type HostConfig struct {
	ExtensionLoaded         bool     `yaml:"extension_loaded"`
	ActiveExtensions        []string `yaml:"active_extensions"`
	Multisite               bool     `yaml:"multisite"`
	NetworkActiveExtensions []string `yaml:"network_active_extensions"`
}

// TemplateConfig overrides one event's Liquid message
type TemplateConfig struct {
	Subject string `yaml:"subject"`
	HTML    string `yaml:"html"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.ShutdownTimeoutSec == 0 {
		cfg.Server.ShutdownTimeoutSec = 15
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Settings.Backend == "" {
		cfg.Settings.Backend = "memory"
	}
	if cfg.Settings.AWSRegion == "" {
		cfg.Settings.AWSRegion = "us-east-1"
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "us-east-1"
	}
	if cfg.SES.TimeoutSeconds == 0 {
		cfg.SES.TimeoutSeconds = 30
	}
	if cfg.Sender.Type == "" {
		cfg.Sender.Type = "log"
	}
	if cfg.Sender.SiteName == "" {
		cfg.Sender.SiteName = "Shop"
	}
	if len(cfg.Events) == 0 {
		cfg.Events = domain.DefaultEventStrategies()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Settings.Backend {
	case "memory", "postgres", "redis", "dynamodb", "s3":
	default:
		return fmt.Errorf("settings.backend %q: want memory, postgres, redis, dynamodb or s3", c.Settings.Backend)
	}
	switch c.Sender.Type {
	case "log", "ses":
	default:
		return fmt.Errorf("sender.type %q: want log or ses", c.Sender.Type)
	}
	for ev, s := range c.Events {
		if !s.Valid() {
			return fmt.Errorf("events.%s: unknown strategy %q", ev, s)
		}
	}
	return nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("EDF_SETTINGS_BACKEND"); v != "" {
		cfg.Settings.Backend = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Settings.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Settings.RedisURL = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.SES.Region = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetAWSProfile returns the AWS profile, with environment variable override
func (c SettingsConfig) GetAWSProfile() string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return ""
		}
		return envProfile
	}
	// On ECS/Lambda, don't use a profile - use IAM role
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return c.AWSProfile
}
