package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		// JWTSecret is the Base64-encoded HMAC signing key. Required.
		JWTSecret string
		// TokenTTLSeconds is the lifetime of issued tokens.
		TokenTTLSeconds int
		// BcryptCost tunes password hashing; 0 means the library default.
		BcryptCost int
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// .env values never override an already-set environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ACCOUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/accounts.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlseconds", 3600)
	v.SetDefault("auth.bcryptcost", 0)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return Config{}, fmt.Errorf("auth jwt secret is required")
	}
	if cfg.Auth.TokenTTLSeconds <= 0 {
		return Config{}, fmt.Errorf("auth token ttl must be positive")
	}

	return cfg, nil
}
