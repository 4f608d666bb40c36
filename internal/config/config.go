package config

import (
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv     string
	LogLevel   string
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string
	UploadDir  string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/staffdesk?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("UPLOAD_DIR", "uploads")

	return &Config{
		AppEnv:     v.GetString("APP_ENV"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		ServerPort: v.GetString("SERVER_PORT"),
		MySQLDSN:   v.GetString("MYSQL_DSN"),
		RedisAddr:  v.GetString("REDIS_ADDR"),
		RedisDB:    v.GetInt("REDIS_DB"),
		RedisPass:  v.GetString("REDIS_PASSWORD"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		UploadDir:  v.GetString("UPLOAD_DIR"),
	}
}
