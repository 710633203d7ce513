package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr        string
	RedisPositionKey string

	// KafkaBrokers is empty when notifications should only be logged.
	KafkaBrokers            []string
	KafkaNotificationsTopic string

	RankingMaxDistanceMeters float64

	CourierScoreSchedule  string
	BalanceResyncSchedule string
}

// LoadConfig reads the process environment. The caller loads .env first when present.
func LoadConfig() Config {
	return Config{
		AppEnv:   envOrDefault("APP_ENV", "development"),
		HTTPPort: envOrDefault("HTTP_PORT", "8080"),

		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envOrDefault("DB_NAME", "fulfillment"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		RedisAddr:        envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPositionKey: os.Getenv("REDIS_POSITION_KEY"),

		KafkaBrokers:            envList("KAFKA_BROKERS"),
		KafkaNotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),

		RankingMaxDistanceMeters: envOrDefaultFloat("RANKING_MAX_DISTANCE_METERS", 10000),

		CourierScoreSchedule:  os.Getenv("COURIER_SCORE_SCHEDULE"),
		BalanceResyncSchedule: os.Getenv("BALANCE_RESYNC_SCHEDULE"),
	}
}

// DSN builds the PostgreSQL connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
