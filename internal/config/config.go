package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Matching MatchingConfig
	App      AppConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	Username        string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// MatchingConfig holds the confidence tier thresholds and preview limits
type MatchingConfig struct {
	HighDateWindowDays   int
	MediumDateWindowDays int
	LowDateWindowDays    int

	HighAmountTolerance   float64
	MediumAmountTolerance float64
	LowAmountTolerance    float64

	CandidateLimit int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	JWTSecret   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "mysql"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "3306"),
			Username:        getEnv("DB_USERNAME", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			DBName:          getEnv("DB_NAME", "fieldops_service"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Matching: MatchingConfig{
			HighDateWindowDays:    getIntEnv("MATCH_HIGH_DATE_WINDOW_DAYS", 7),
			MediumDateWindowDays:  getIntEnv("MATCH_MEDIUM_DATE_WINDOW_DAYS", 30),
			LowDateWindowDays:     getIntEnv("MATCH_LOW_DATE_WINDOW_DAYS", 60),
			HighAmountTolerance:   getFloatEnv("MATCH_HIGH_AMOUNT_TOLERANCE", 0.05),
			MediumAmountTolerance: getFloatEnv("MATCH_MEDIUM_AMOUNT_TOLERANCE", 0.15),
			LowAmountTolerance:    getFloatEnv("MATCH_LOW_AMOUNT_TOLERANCE", 0.30),
			CandidateLimit:        getIntEnv("MATCH_CANDIDATE_LIMIT", 10),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		},
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
