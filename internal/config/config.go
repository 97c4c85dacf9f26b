package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For session lifetimes

	"github.com/joho/godotenv" // For loading .env files
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration
type Config struct {
	AppPort       string        // Application port
	DBDriver      string        // Database driver: postgres, mysql or sqlite
	DBUser        string        // Database user
	DBPassword    string        // Database password
	DBHost        string        // Database host
	DBPort        string        // Database port
	DBName        string        // Database name (file path for sqlite)
	DBDSN         string        // Full DSN, overrides the individual DB_* parts
	AutoMigrate   bool          // Run schema migration when the server starts
	SessionSecret string        // HMAC key for the session cookie
	SessionTTL    time.Duration // Session lifetime
	SessionCookie string        // Session cookie name
	SessionStore  string        // Session backend: redis or memory
	RedisAddr     string        // Redis server address
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	BcryptCost    int           // Bcrypt work factor
	StaticDir     string        // Directory served under /static, empty to disable
	IsProd        bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "5000"),                // Application port
		DBDriver:      getEnv("DB_DRIVER", "postgres"),           // Database driver
		DBUser:        os.Getenv("DB_USER"),                      // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),                  // Database password
		DBHost:        getEnv("DB_HOST", "localhost"),            // Database host
		DBPort:        os.Getenv("DB_PORT"),                      // Database port
		DBName:        getEnv("DB_NAME", "hotel_db"),             // Database name
		DBDSN:         os.Getenv("DB_DSN"),                       // DSN override
		AutoMigrate:   os.Getenv("DB_AUTO_MIGRATE") == "true",    // Migrate on boot
		SessionSecret: os.Getenv("SESSION_SECRET"),               // Cookie signing key
		SessionTTL:    24 * time.Hour,                            // Session lifetime
		SessionCookie: getEnv("SESSION_COOKIE", "hotel_session"), // Session cookie name
		SessionStore:  os.Getenv("SESSION_STORE"),                // Session backend
		RedisAddr:     os.Getenv("REDIS_ADDR"),                   // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                   // Redis password
		RedisDB:       redisDB,                                   // Redis database number
		BcryptCost:    bcrypt.DefaultCost,                        // Bcrypt work factor
		StaticDir:     os.Getenv("STATIC_DIR"),                   // Static files directory
		IsProd:        os.Getenv("IS_PROD") == "true",            // Is production environment
	}
	if ttl, err := time.ParseDuration(os.Getenv("SESSION_TTL")); err == nil && ttl > 0 {
		cfg.SessionTTL = ttl
	}
	if cost, err := strconv.Atoi(os.Getenv("BCRYPT_COST")); err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		cfg.BcryptCost = cost
	}
	// Pick the session backend from Redis availability when not set explicitly
	if cfg.SessionStore == "" {
		cfg.SessionStore = "memory"
		if cfg.RedisAddr != "" {
			cfg.SessionStore = "redis"
		}
	}
	return cfg
}

// DSN builds the Data Source Name for the configured driver
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	switch c.DBDriver {
	case "mysql":
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + getOr(c.DBPort, "3306") + ")/" + c.DBName + "?parseTime=true"
	case "sqlite":
		return c.DBName
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, getOr(c.DBPort, "5432"), c.DBUser, c.DBPassword, c.DBName)
	}
}

// getEnv returns the environment value for key, or fallback when unset
func getEnv(key, fallback string) string {
	return getOr(os.Getenv(key), fallback)
}

func getOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
