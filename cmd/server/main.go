package main

import (
	"context" // context package is needed for Redis operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"github.com/lazarmura54-arch/Hotel/internal/account"    // Credential store
	"github.com/lazarmura54-arch/Hotel/internal/api"        // HTTP handlers
	"github.com/lazarmura54-arch/Hotel/internal/catalog"    // Menu catalog
	"github.com/lazarmura54-arch/Hotel/internal/config"     // Configuration
	"github.com/lazarmura54-arch/Hotel/internal/db"         // Database bootstrap
	"github.com/lazarmura54-arch/Hotel/internal/metrics"    // Prometheus collectors
	"github.com/lazarmura54-arch/Hotel/internal/middleware" // Session middleware
	"github.com/lazarmura54-arch/Hotel/internal/orders"     // Order recorder
	"github.com/lazarmura54-arch/Hotel/internal/session"    // Session binder and stores
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProd {
			logrus.Fatal("SESSION_SECRET must be set in production")
		}
		cfg.SessionSecret = "dev-only-session-secret"
		logrus.Warn("SESSION_SECRET not set, using an insecure development key")
	}

	// Connect to the database
	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("%v", err)
		}
	}

	accounts := account.NewService(gdb, cfg.BcryptCost)
	binder := session.NewBinder(newSessionStore(cfg), accounts, cfg.SessionTTL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		DB:        gdb,
		Accounts:  accounts,
		Catalog:   catalog.NewService(gdb),
		Orders:    orders.NewService(gdb),
		Sessions:  middleware.NewSessions(binder, cfg.SessionSecret, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProd),
		Metrics:   metrics.New(),
		StaticDir: cfg.StaticDir,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":          cfg.AppPort,      // Listening port
		"db_driver":     cfg.DBDriver,     // Database driver
		"session_store": cfg.SessionStore, // Session backend
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// newSessionStore returns the Redis store when configured, otherwise the in-memory one
func newSessionStore(cfg *config.Config) session.Store {
	if cfg.SessionStore != "redis" {
		logrus.Warn("Using in-memory sessions; logins are lost on restart")
		return session.NewMemoryStore()
	}
	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return session.NewRedisStore(redisClient)
}
