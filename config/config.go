package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Pagination PaginationConfig `yaml:"pagination"`
	Auth       AuthConfig       `yaml:"auth"`
	Portal     PortalConfig     `yaml:"portal"`
	Worker     WorkerConfig     `yaml:"worker"`
	Log        LogConfig        `yaml:"log"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
	// SwaggerDir enables /swagger/*any when set; it must hold doc.json.
	SwaggerDir             string `yaml:"swagger_dir"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

func (h HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(h.ShutdownTimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	// MigrationsEnabled runs pending schema migrations on startup.
	MigrationsEnabled bool `yaml:"migrations_enabled"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL is the pgx5:// form expected by the migrate driver.
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	EventsTopic string   `yaml:"events_topic"`
	GroupID     string   `yaml:"group_id"`
}

type PaginationConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type AuthConfig struct {
	JWTSecret       string           `yaml:"jwt_secret"`
	Issuer          string           `yaml:"issuer"`
	TokenTTLMinutes int              `yaml:"token_ttl_minutes"`
	BcryptCost      int              `yaml:"bcrypt_cost"`
	SuperAdmin      SuperAdminConfig `yaml:"super_admin"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// SuperAdminConfig seeds the first operator account when it does not exist yet.
type SuperAdminConfig struct {
	UserName string `yaml:"user_name"`
	Password string `yaml:"password"`
}

type PortalConfig struct {
	Address               string `yaml:"address"`
	APIBaseURL            string `yaml:"api_base_url"`
	SessionCookie         string `yaml:"session_cookie"`
	SessionTTLMinutes     int    `yaml:"session_ttl_minutes"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

func (p PortalConfig) SessionTTL() time.Duration {
	return time.Duration(p.SessionTTLMinutes) * time.Minute
}

func (p PortalConfig) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSeconds) * time.Second
}

type WorkerConfig struct {
	// MetricsAddress serves /metrics for the audit worker.
	MetricsAddress string `yaml:"metrics_address"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate fills defaults for optional settings and rejects unusable ones.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.ShutdownTimeoutSeconds <= 0 {
		c.HTTP.ShutdownTimeoutSeconds = 5
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Pagination.DefaultPageSize <= 0 {
		c.Pagination.DefaultPageSize = 10
	}
	if c.Pagination.MaxPageSize <= 0 {
		c.Pagination.MaxPageSize = 100
	}
	if c.Pagination.DefaultPageSize > c.Pagination.MaxPageSize {
		c.Pagination.DefaultPageSize = c.Pagination.MaxPageSize
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		c.Auth.TokenTTLMinutes = 60
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "flightdesk"
	}
	if c.Kafka.EventsTopic == "" {
		c.Kafka.EventsTopic = "flightdesk.resource-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "flightdesk-audit"
	}
	if c.Portal.Address == "" {
		c.Portal.Address = ":8081"
	}
	if c.Portal.APIBaseURL == "" {
		c.Portal.APIBaseURL = "http://localhost:8080"
	}
	if c.Portal.SessionCookie == "" {
		c.Portal.SessionCookie = "flightdesk_session"
	}
	if c.Portal.SessionTTLMinutes <= 0 {
		c.Portal.SessionTTLMinutes = 30
	}
	if c.Portal.RequestTimeoutSeconds <= 0 {
		c.Portal.RequestTimeoutSeconds = 10
	}
	if c.Worker.MetricsAddress == "" {
		c.Worker.MetricsAddress = ":9102"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		errs = append(errs, errors.New("database.host and database.name are required"))
	}
	return errors.Join(errs...)
}
