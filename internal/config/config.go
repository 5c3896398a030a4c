package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Port        string
	GinMode     string
	StoreDriver string
	PostgresDSN string
	MongoURI    string
	DBName      string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	UploadDir      string
	MaxUploadBytes int64

	LogLevel  string
	LogFormat string

	AdminEmail    string
	AdminPassword string
}

// Load reads .env files into the environment and builds the configuration.
// notice is non-empty when no .env file could be read.
func Load(files ...string) (Config, string, error) {
	notice := ""
	if err := godotenv.Load(files...); err != nil {
		notice = fmt.Sprintf(".env not loaded: %v", err)
	}
	cfg := FromEnv()
	return cfg, notice, cfg.Validate()
}

func FromEnv() Config {
	return Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		GinMode:     getEnvOrDefault("GIN_MODE", "debug"),
		StoreDriver: strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverMemory)),
		PostgresDSN: getEnvOrDefault("POSTGRES_DSN", ""),
		MongoURI:    getEnvOrDefault("MONGO_URI", ""),
		DBName:      getEnvOrDefault("DB_NAME", "storefront"),

		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 7, 24*time.Hour),

		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "static/images"),
		MaxUploadBytes: int64(getIntEnv("MAX_UPLOAD_MB", 5)) << 20,

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", ""),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", ""),
	}
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=%s", DriverMongo)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}
