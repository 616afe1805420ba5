package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings read from the environment and an optional config file
type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string
	GinMode    string
	Port       string
	JWTSecret  string
	JWTIssuer  string
	TokenTTL   time.Duration
	LogLevel   string
}

// Load reads configuration. Environment variables win over the config file.
// An empty configFile falls back to ./conductor.yaml when present.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("conductor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DBDriver:   strings.ToLower(v.GetString("db_driver")),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetString("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBPath:     v.GetString("db_path"),
		GinMode:    v.GetString("gin_mode"),
		Port:       v.GetString("port"),
		JWTSecret:  v.GetString("jwt_secret"),
		JWTIssuer:  v.GetString("jwt_issuer"),
		TokenTTL:   v.GetDuration("token_ttl"),
		LogLevel:   v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_driver", "mysql")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "3306")
	v.SetDefault("db_user", "conductor")
	v.SetDefault("db_password", "conductor")
	v.SetDefault("db_name", "conductor")
	v.SetDefault("db_path", "conductor.db")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("port", "8080")
	v.SetDefault("jwt_secret", "default-secret-key-change-me")
	v.SetDefault("jwt_issuer", "conductor")
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("log_level", "info")
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
