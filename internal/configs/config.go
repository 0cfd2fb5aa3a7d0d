package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

type DBconfig struct {
	URL         string
	AutoMigrate bool
	MaxConns    int
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type RESTconfig struct {
	PORT string
}

type CorsConfig struct {
	AllowedOrigins []string
}

type AuthConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	TTL       time.Duration
}

type PaginationConfig struct {
	DefaultPageSize int
	// MaxPageSize = 0 - без ограничения
	MaxPageSize int
}

type OwnerCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	MaxSize int64
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	Enabled bool
	URL     string

	// Повторы импорта при недоступном хранилище
	ImportRetryTTL   time.Duration
	ImportMaxRetries int
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Storage      string
	Database     DBconfig
	Mongo        MongoConfig
	Rest         RESTconfig
	Cors         CorsConfig
	Auth         AuthConfig
	Pagination   PaginationConfig
	OwnerCache   OwnerCacheConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment variables only.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "property-service")
	cfg.Rest.PORT = getEnvAsString("PORT", "8080")

	cfg.Storage = strings.ToLower(getEnvAsString("STORAGE_DRIVER", StorageDriverPostgres))
	switch cfg.Storage {
	case StorageDriverPostgres:
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for STORAGE_DRIVER=postgres")
		}
		cfg.Database.AutoMigrate = getEnvAsBool("DB_AUTO_MIGRATE", true)
		cfg.Database.MaxConns = getEnvAsInt("DB_MAX_CONNS", 0)
	case StorageDriverMongo:
		cfg.Mongo.URI = os.Getenv("MONGO_URI")
		if cfg.Mongo.URI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is required for STORAGE_DRIVER=mongo")
		}
		cfg.Mongo.Database = getEnvAsString("MONGO_DATABASE", "RealEstateDB")
		cfg.Mongo.ConnectTimeout = time.Duration(getEnvAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second
	case StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (expected postgres, mongo or memory)", cfg.Storage)
	}

	cfg.Auth.SecretKey = os.Getenv("JWT_SECRET_KEY")
	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is required")
	}
	cfg.Auth.Issuer = getEnvAsString("JWT_ISSUER", "PropertyApi")
	cfg.Auth.Audience = getEnvAsString("JWT_AUDIENCE", "PropertyApiUsers")
	cfg.Auth.TTL = time.Duration(getEnvAsInt("JWT_TTL_HOURS", 168)) * time.Hour

	cfg.Pagination.DefaultPageSize = getEnvAsInt("PAGINATION_DEFAULT_PAGE_SIZE", 12)
	cfg.Pagination.MaxPageSize = getEnvAsInt("PAGINATION_MAX_PAGE_SIZE", 0)

	cfg.Cors.AllowedOrigins = splitList(getEnvAsString("CORS_ALLOWED_ORIGINS", "*"))

	cfg.OwnerCache.Enabled = getEnvAsBool("OWNER_CACHE_ENABLED", false)
	cfg.OwnerCache.TTL = time.Duration(getEnvAsInt("OWNER_CACHE_TTL_SECONDS", 300)) * time.Second
	cfg.OwnerCache.MaxSize = int64(getEnvAsInt("OWNER_CACHE_MAX_SIZE", 10000))

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}
	cfg.RabbitMQ.ImportRetryTTL = time.Duration(getEnvAsInt("RABBITMQ_IMPORT_RETRY_TTL_MS", 10000)) * time.Millisecond
	cfg.RabbitMQ.ImportMaxRetries = getEnvAsInt("RABBITMQ_IMPORT_MAX_RETRIES", 5)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
