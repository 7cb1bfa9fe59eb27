package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const devSigningKey = "dev-signing-key-change-me"

type Config struct {
	AppEnv string
	Port   string

	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisHost     string
	RedisPort     int
	RedisPassword string

	// SigningKey signs and verifies bearer tokens.
	SigningKey string
	// TokenTTL of zero issues tokens without an exp claim.
	TokenTTL   time.Duration
	BcryptCost int

	LogDir          string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

func LoadConfig() Config {
	// load .env when present; variables already set in the environment win
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	cfg := Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnvInt("DB_PORT", 5432),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnv("DB_NAME", "postgres"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnvInt("REDIS_PORT", 6379),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SigningKey: os.Getenv("JWT_SECRET"),
		TokenTTL:   getEnvDuration("JWT_TTL", 0),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		LogDir:          getEnv("LOG_DIR", "logs"),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
	}
	if cfg.SigningKey == "" && !cfg.IsProduction() {
		cfg.SigningKey = devSigningKey
	}
	return cfg
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate reports settings the server must not start with.
func (c Config) Validate() error {
	if c.SigningKey == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && c.SigningKey == devSigningKey {
		return errors.New("JWT_SECRET must be set explicitly in production")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.TokenTTL < 0 {
		return errors.New("JWT_TTL must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
