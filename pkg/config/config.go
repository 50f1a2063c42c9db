package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Upstream UpstreamConfig
	JWT      JWTConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

// UpstreamConfig points at the demo store API the catalog and the login flow
// are backed by.
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type JWTConfig struct {
	SecretKey string
}

// StoreConfig selects the persistent key-value backend for the enriched
// catalog, badge and session caches.
type StoreConfig struct {
	Backend string // "redis" or "postgres"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type CatalogConfig struct {
	SaleProbability  float64
	SaleDiscount     float64
	BadgeProbability float64
	FetchLimit       int
}

const (
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MyFitLane Storefront API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("FAKESTORE_BASE_URL", "https://fakestoreapi.com"),
			TimeoutSeconds: getEnvInt("FAKESTORE_TIMEOUT_SECONDS", 10),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", StoreBackendRedis),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "myfitlane"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			SaleProbability:  getEnvFloat("CATALOG_SALE_PROBABILITY", 0.3),
			SaleDiscount:     getEnvFloat("CATALOG_SALE_DISCOUNT", 0.2),
			BadgeProbability: getEnvFloat("CATALOG_BADGE_PROBABILITY", 0.7),
			FetchLimit:       getEnvInt("CATALOG_FETCH_LIMIT", 20),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Store.Backend != StoreBackendRedis && cfg.Store.Backend != StoreBackendPostgres {
		return nil, errors.New("invalid store backend: " + cfg.Store.Backend)
	}

	if cfg.Store.Backend == StoreBackendPostgres && cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}
