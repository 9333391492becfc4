package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	LogLevel       string
	AllowedOrigins string
	PasswordCost   int
	Database       DatabaseConfig
	JWT            JWTConfig
	RateLimit      RateLimitConfig
	RabbitMQ       RabbitMQConfig
	Digest         DigestConfig
	Seed           SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// RateLimitConfig holds per-minute request limits per client IP
type RateLimitConfig struct {
	Auth int
	API  int
}

// RabbitMQConfig holds broker configuration. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// DigestConfig holds the loan digest schedule. DIGEST_SCHEDULE=off disables it.
type DigestConfig struct {
	Schedule string
}

// SeedConfig holds the initial accountant account
type SeedConfig struct {
	AccountantUsername string
	AccountantPassword string
	AccountantEmail    string
}

var defaults = map[string]interface{}{
	"APP_MODE":                 "dev",
	"PORT":                     "3000",
	"LOG_LEVEL":                "info",
	"PASSWORD_COST":            11,
	"DB_DRIVER":                "sqlite",
	"DB_HOST":                  "localhost",
	"DB_USER":                  "root",
	"DB_NAME":                  "loanapi",
	"DB_PATH":                  "loanapi.db",
	"JWT_ISSUER":               "loan-api",
	"JWT_AUDIENCE":             "loan-api-clients",
	"AUTH_RATE_LIMIT":          5,
	"API_RATE_LIMIT":           100,
	"RABBITMQ_EXCHANGE":        "loan.events",
	"DIGEST_SCHEDULE":          "0 8 * * *",
	"SEED_ACCOUNTANT_EMAIL":    "accountant@loanapi.local",
	"ALLOWED_ORIGINS":          "",
	"JWT_SECRET":               "",
	"DB_PORT":                  "",
	"DB_PASS":                  "",
	"RABBITMQ_URL":             "",
	"SEED_ACCOUNTANT_USERNAME": "",
	"SEED_ACCOUNTANT_PASSWORD": "",
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(v.GetString("APP_MODE"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	dbCfg, err := loadDatabaseConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppMode:        appMode,
		Port:           v.GetString("PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		PasswordCost:   v.GetInt("PASSWORD_COST"),
		Database:       dbCfg,
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			Issuer:   v.GetString("JWT_ISSUER"),
			Audience: v.GetString("JWT_AUDIENCE"),
		},
		RateLimit: RateLimitConfig{
			Auth: v.GetInt("AUTH_RATE_LIMIT"),
			API:  v.GetInt("API_RATE_LIMIT"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Digest: DigestConfig{
			Schedule: digestSchedule(v.GetString("DIGEST_SCHEDULE")),
		},
		Seed: SeedConfig{
			AccountantUsername: v.GetString("SEED_ACCOUNTANT_USERNAME"),
			AccountantPassword: v.GetString("SEED_ACCOUNTANT_PASSWORD"),
			AccountantEmail:    v.GetString("SEED_ACCOUNTANT_EMAIL"),
		},
	}

	return cfg, nil
}

// loadDatabaseConfig validates the driver and fills its default port
func loadDatabaseConfig(v *viper.Viper) (DatabaseConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER")))

	port := v.GetString("DB_PORT")
	switch driver {
	case DriverMySQL:
		if port == "" {
			port = "3306"
		}
	case DriverPostgres:
		if port == "" {
			port = "5432"
		}
	case DriverSQLite:
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql', 'postgres' or 'sqlite')", driver)
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     v.GetString("DB_HOST"),
		Port:     port,
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASS"),
		DBName:   v.GetString("DB_NAME"),
		Path:     v.GetString("DB_PATH"),
	}, nil
}

// digestSchedule maps "off" to the empty, disabled schedule
func digestSchedule(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "off") {
		return ""
	}
	return raw
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return c.AllowedOrigins
}
