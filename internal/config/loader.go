package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads configuration from a yaml file and environment variables.
// Environment variables use the GLOBETROTTER_ prefix with dots replaced by
// underscores, e.g. GLOBETROTTER_JWT_SECRET overrides jwt.secret.
func LoadConfig() (*Config, error) {
	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/globetrotter")
	}

	viper.SetEnvPrefix("GLOBETROTTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, environment variables take over.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configurations the process cannot run with. The signing
// secret is fatal at startup, not a per-request error.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret must be configured")
	}
	if c.Mongo.URI == "" {
		return errors.New("mongo.uri must be configured")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "15s")

	viper.SetDefault("mongo.database", "globetrotter")
	viper.SetDefault("mongo.connect_timeout", "10s")

	viper.SetDefault("jwt.issuer", "globetrotter")
	viper.SetDefault("jwt.audience", "globetrotter-web")
	viper.SetDefault("jwt.access_token_ttl", "168h")
	viper.SetDefault("jwt.email_verification_ttl", "24h")
	viper.SetDefault("jwt.password_reset_ttl", "1h")

	viper.SetDefault("security.max_active_sessions", 10)
	viper.SetDefault("security.session_idle_timeout", "168h")
	viper.SetDefault("security.password_hash.memory", 65536)
	viper.SetDefault("security.password_hash.iterations", 3)
	viper.SetDefault("security.password_hash.parallelism", 2)
	viper.SetDefault("security.password_hash.salt_length", 16)
	viper.SetDefault("security.password_hash.key_length", 32)

	viper.SetDefault("maintenance.enabled", true)
	viper.SetDefault("maintenance.sweep_interval", "1h")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
