package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string
	// AllowedOrigins is a comma separated list, "*" allows every origin.
	AllowedOrigins string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type SecurityConfig struct {
	BcryptCost int
	ResetTTL   time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "shop-backend")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BASE_URL", "http://localhost:5000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "shop")
	viper.SetDefault("JWT_ACCESS_TTL", "24h")
	viper.SetDefault("JWT_REFRESH_TTL", "72h")
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("RESET_TOKEN_TTL", "30m")
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)

	// A missing .env is fine, the environment still applies.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			BaseURL:        viper.GetString("BASE_URL"),
			AllowedOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
		},
		JWT: JWTConfig{
			AccessSecret:  viper.GetString("JWT_SECRET"),
			RefreshSecret: viper.GetString("JWT_REFRESH_SECRET"),
			AccessTTL:     viper.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL:    viper.GetDuration("JWT_REFRESH_TTL"),
		},
		Security: SecurityConfig{
			BcryptCost: viper.GetInt("BCRYPT_COST"),
			ResetTTL:   viper.GetDuration("RESET_TOKEN_TTL"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetInt("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
	}

	if config.JWT.RefreshSecret == "" {
		config.JWT.RefreshSecret = config.JWT.AccessSecret
	}

	return config, nil
}
