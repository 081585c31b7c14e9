package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	authconstant "github.com/egarc258/ecommerce-app/pkg/constant"
	"github.com/spf13/viper"
)

const (
	DefaultPort               = "8080"
	DefaultStoreDriver        = "postgres"
	DefaultJWTIssuer          = authconstant.DefaultIssuer
	DefaultTokenTTLMinutes    = 1440
	DefaultTokenLeewaySeconds = 0
	DefaultPasswordHashCost   = 10
	DefaultLogLevel           = "info"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Env              string
	Port             string
	StoreDriver      string
	DBURL            string
	RunMigrations    bool
	JWTSecret        string
	JWTIssuer        string
	TokenTTLMin      int
	TokenLeewaySec   int
	PasswordHashCost int
	LogLevel         string
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

func (c *Config) TokenLeeway() time.Duration {
	return time.Duration(c.TokenLeewaySec) * time.Second
}

// Load reads config/.env.dev or config/.env.prod (picked by ENV) and lets
// environment variables override anything found in the file.
func Load() *Config {
	env := getEnv("ENV", "development")

	v := viper.New()
	v.SetConfigFile(filepath.Join("config", envFileName(env)))
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to read config file: %v", err)
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("STORE_DRIVER", DefaultStoreDriver)
	v.SetDefault("JWT_ISSUER", DefaultJWTIssuer)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)

	cfg := &Config{
		Env:              env,
		Port:             v.GetString("PORT"),
		StoreDriver:      v.GetString("STORE_DRIVER"),
		RunMigrations:    v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:        mustGet(v, "JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		TokenTTLMin:      getInt(v, "TOKEN_TTL_MINUTES", DefaultTokenTTLMinutes, 1),
		TokenLeewaySec:   getInt(v, "TOKEN_LEEWAY_SECONDS", DefaultTokenLeewaySeconds, 0),
		PasswordHashCost: getInt(v, "PASSWORD_HASH_COST", DefaultPasswordHashCost, 0),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		cfg.DBURL = mustGet(v, "DB_URL")
	case StoreDriverMemory:
		cfg.DBURL = v.GetString("DB_URL")
	default:
		log.Fatalf("Unsupported STORE_DRIVER: %s", cfg.StoreDriver)
	}

	return cfg
}

func envFileName(env string) string {
	if env == "production" {
		return ".env.prod"
	}
	return ".env.dev"
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGet(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

// getInt falls back to defaultVal when the value is not an integer or is below minVal.
func getInt(v *viper.Viper, key string, defaultVal, minVal int) int {
	valStr := v.GetString(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < minVal {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
