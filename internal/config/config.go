package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string // postgres URL, or sqlite://<path> for local runs
	RedisURL            string
	LogLevel            string
	AutoMigrate         bool
	DefaultPageSize     int
	MaxPageSize         int
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "sqlite://ledger-admin.db")
	viper.SetDefault("DEFAULT_PAGE_SIZE", 100)
	viper.SetDefault("MAX_PAGE_SIZE", 1000)

	cfg := &Config{
		Env:                 viper.GetString("APP_ENV"),
		Port:                viper.GetString("PORT"),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		AutoMigrate:         viper.GetBool("AUTO_MIGRATE"),
		DefaultPageSize:     viper.GetInt("DEFAULT_PAGE_SIZE"),
		MaxPageSize:         viper.GetInt("MAX_PAGE_SIZE"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}
	if cfg.MaxPageSize < 1 {
		cfg.MaxPageSize = 1000
	}
	if cfg.DefaultPageSize < 1 || cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
