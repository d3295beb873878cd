package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the complete application configuration
type Config struct {
	Environment string         `yaml:"environment"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	Upload      UploadConfig   `yaml:"upload"`
	Log         LogConfig      `yaml:"log"`
	Auth        AuthConfig     `yaml:"auth"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Port          string `yaml:"port"`
	PublicBaseURL string `yaml:"public_base_url"`
	CORSOrigin    string `yaml:"cors_origin"`
}

// UploadConfig controls where uploaded images go
type UploadConfig struct {
	// Mode is "disk" (files under Dir) or "inline" (data URIs stored with the entity)
	Mode    string `yaml:"mode"`
	Dir     string `yaml:"dir"`
	MaxSize int64  `yaml:"max_size"`
}

// LogConfig controls the application logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// AuthConfig controls admin authentication
type AuthConfig struct {
	Enabled   bool           `yaml:"enabled"`
	JWTSecret string         `yaml:"jwt_secret"`
	TokenTTL  time.Duration  `yaml:"token_ttl"`
	Admins    []AdminAccount `yaml:"admins"`
}

// AdminAccount is a back-office login
type AdminAccount struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// DefaultConfig returns the development defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: EnvDevelopment,
		Server: ServerConfig{
			Port:       "5000",
			CORSOrigin: "*",
		},
		Database: DefaultDatabaseConfig(),
		Upload: UploadConfig{
			Dir:     "uploads",
			MaxSize: 5 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Auth: AuthConfig{
			Enabled:   true,
			JWTSecret: "change-me-in-production",
			TokenTTL:  24 * time.Hour,
			Admins: []AdminAccount{
				{Username: "admin", Password: "admin123", Role: "admin"},
			},
		},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file at
// path and finally environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyEnvironmentDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Environment, "ENVIRONMENT", "NODE_ENV")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.PublicBaseURL, "PUBLIC_BASE_URL")
	setString(&c.Server.CORSOrigin, "CORS_ORIGIN")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Path, "DATABASE_PATH")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	if err := setBool(&c.Database.Seed, "DB_SEED"); err != nil {
		return err
	}

	setString(&c.Upload.Mode, "UPLOAD_MODE")
	setString(&c.Upload.Dir, "UPLOAD_DIR")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.Output, "LOG_OUTPUT")

	if err := setBool(&c.Auth.Enabled, "AUTH_ENABLED"); err != nil {
		return err
	}
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}

	// ADMIN_USERNAME/ADMIN_PASSWORD override the first admin account
	username, password := os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")
	if username != "" || password != "" {
		if len(c.Auth.Admins) == 0 {
			c.Auth.Admins = append(c.Auth.Admins, AdminAccount{Role: "admin"})
		}
		if username != "" {
			c.Auth.Admins[0].Username = username
		}
		if password != "" {
			c.Auth.Admins[0].Password = password
		}
	}
	return nil
}

// applyEnvironmentDefaults mirrors the serverless deployment: in production,
// unless told otherwise, state lives in memory and images are stored inline.
func (c *Config) applyEnvironmentDefaults() {
	production := c.Environment == EnvProduction
	if c.Database.Driver == "" {
		if production {
			c.Database.Driver = DriverMemory
		} else {
			c.Database.Driver = DriverSQLite
		}
	}
	if c.Upload.Mode == "" {
		if production {
			c.Upload.Mode = "inline"
		} else {
			c.Upload.Mode = "disk"
		}
	}
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Server.Port))
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	switch c.Upload.Mode {
	case "disk", "inline":
	default:
		errs = append(errs, fmt.Errorf("unknown upload mode %q", c.Upload.Mode))
	}
	if c.Upload.MaxSize <= 0 {
		errs = append(errs, errors.New("upload max_size must be positive"))
	}
	if c.Auth.Enabled {
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("auth is enabled but jwt_secret is empty"))
		}
		if len(c.Auth.Admins) == 0 {
			errs = append(errs, errors.New("auth is enabled but no admin accounts are configured"))
		}
		if c.Auth.TokenTTL <= 0 {
			errs = append(errs, errors.New("auth token_ttl must be positive"))
		}
	}

	return errors.Join(errs...)
}

func setString(dst *string, keys ...string) {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			*dst = v
			return
		}
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}
