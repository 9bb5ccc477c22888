package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

const minJWTSecretBytes = 32

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port             string
	Environment      string
	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
}

// LoadENV loads variables from .env. A missing file is not an error.
func LoadENV() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Info("No .env file found, using process environment")
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:             getEnv("PORT", "3000"),
			Environment:      getEnv("APP_ENV", "development"),
			RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", "")),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		JWT: JWTConfig{
			Secret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate refuses to start without a database or a signing secret.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("you must set the 'DATABASE_URL' environment variable"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("you must set the 'JWT_SECRET' environment variable"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if len(c.JWT.Secret) < minJWTSecretBytes {
		log.Warnf("JWT_SECRET is shorter than %d bytes", minJWTSecretBytes)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Warnf("Invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		log.Warnf("Invalid %s=%q, using default %s", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
