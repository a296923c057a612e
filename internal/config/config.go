package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Media     MediaConfig
	Documents DocumentsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DATABASE_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DATABASE_PORT"`
	User     string `mapstructure:"user" envconfig:"DATABASE_USER"`
	Password string `mapstructure:"password" envconfig:"DATABASE_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DATABASE_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DATABASE_SSLMODE"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" envconfig:"REDIS_URL"`
}

// MediaConfig points at the external image upload service.
type MediaConfig struct {
	UploadEndpoint string `mapstructure:"upload_endpoint" envconfig:"MEDIA_UPLOAD_ENDPOINT"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" envconfig:"MEDIA_TIMEOUT_SECONDS"`
}

// DocumentsConfig controls local prescription document storage.
type DocumentsConfig struct {
	Dir     string `mapstructure:"dir" envconfig:"DOCUMENTS_DIR"`
	BaseURL string `mapstructure:"base_url" envconfig:"DOCUMENTS_BASE_URL"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" envconfig:"RATE_LIMIT_RPS"`
	Burst int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

func (c ServerConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c MediaConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads config.yml and then overlays values from the environment,
// so secrets never have to live in the file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return &config, nil
}
