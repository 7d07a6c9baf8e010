// ============================================================================
// backend/internal/shared/config.go
// Configuration management and environment variable helpers
// ============================================================================

package shared

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================================
// Configuration Structs
// ============================================================================

// Store backends selectable through STORE_BACKEND
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// AppConfig holds common configuration for every binary
type AppConfig struct {
	AppName     string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error

	Store StoreConfig
}

// StoreConfig selects and configures the key-value store backend
type StoreConfig struct {
	Backend string // memory or mongo
	Mongo   MongoConfig
}

// MongoConfig holds MongoDB connection configuration for the mongo backend
type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
	MaxIdleTime    time.Duration
}

// ============================================================================
// Configuration Loading Functions
// ============================================================================

// LoadEnv loads environment variables from a .env file
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s file not found, using system environment variables", envFile)
		return err
	}

	log.Printf("Successfully loaded environment from %s", envFile)
	return nil
}

// LoadAppConfig loads common configuration from the environment
func LoadAppConfig(appName string) (*AppConfig, error) {
	config := &AppConfig{
		AppName:     appName,
		Environment: GetEnv("ENVIRONMENT", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
	}

	config.Store = StoreConfig{
		Backend: GetEnv("STORE_BACKEND", StoreBackendMemory),
	}

	switch config.Store.Backend {
	case StoreBackendMemory:
		// nothing else to configure
	case StoreBackendMongo:
		mongoURI := GetEnv("MONGO_URI", "")
		if mongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is required for the mongo store backend")
		}
		config.Store.Mongo = MongoConfig{
			URI:            mongoURI,
			Database:       GetEnv("MONGO_DB_NAME", "SGASecundaria"),
			Collection:     GetEnv("MONGO_KV_COLLECTION", "kv"),
			ConnectTimeout: GetDurationEnv("MONGO_CONNECT_TIMEOUT", 20*time.Second),
			MaxPoolSize:    uint64(GetIntEnv("MONGO_MAX_POOL_SIZE", 50)),
			MinPoolSize:    uint64(GetIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			MaxIdleTime:    GetDurationEnv("MONGO_MAX_IDLE_TIME", 30*time.Second),
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND: %q", config.Store.Backend)
	}

	return config, nil
}

// ============================================================================
// Environment Variable Helper Functions
// ============================================================================

// GetEnv retrieves an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv retrieves an integer environment variable or returns a default value
func GetIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// GetBoolEnv retrieves a boolean environment variable or returns a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// GetDurationEnv retrieves a duration environment variable or returns a
// default value. Supports formats like "30s", "5m", "1h"
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
