package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the service. Everything has a working
// development default; a configs/config.yaml file or environment variables
// (PORT, DATABASE_URL, CORS_ORIGINS) override it.
type Config struct {
	Port        int      `mapstructure:"port"`
	DatabaseURL string   `mapstructure:"database_url"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

func loadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("port", 8080)
	viper.SetDefault("database_url", "user=admin password=password dbname=soulydb sslmode=disable")
	viper.SetDefault("cors_origins", []string{"http://localhost:5173", "http://localhost:3001"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return &cfg, nil
}
