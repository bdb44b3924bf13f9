package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	JWTExpiresHours int    `mapstructure:"JWT_EXPIRES_HOURS"`
	Port            string `mapstructure:"PORT"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	Env             string `mapstructure:"APP_ENV"`
}

var AppConfig *Config

// IsDevelopment reports whether the app runs in development mode. Internal
// error details are only exposed to clients in development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRES_HOURS", 24)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("APP_ENV", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
