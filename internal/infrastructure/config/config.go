package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/pkg/kafka"
	"github.com/agrobank/financing-service/pkg/postgres"
)

// FinancingConfig holds the business knobs of the financing core.
type FinancingConfig struct {
	// MinimumAmount is the solo financing floor; requests below it are
	// redirected to joint-loan matching.
	MinimumAmount decimal.Decimal
	// PenaltyDailyRate is the overdue penalty per day as a fraction of the
	// installment total.
	PenaltyDailyRate decimal.Decimal
	// ScheduleMethod is the default amortization method.
	ScheduleMethod string
	// SweepSpec is the cron expression for the overdue sweep.
	SweepSpec string
	// SweepBatchSize caps how many due rows one sweep run picks up.
	SweepBatchSize int
	// DocumentBaseURL is where the document service exposes rendered contracts.
	DocumentBaseURL string
}

// JWTConfig holds token validation settings.
type JWTConfig struct {
	Secret string
	Issuer string
}

// OutboxConfig tunes the event relay.
type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	ServiceName string
	GRPCPort    int
	HTTPPort    int
	LogLevel    string
	DB          postgres.Config
	Kafka       kafka.Config
	JWT         JWTConfig
	Financing   FinancingConfig
	Outbox      OutboxConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServiceName: "financing-service",
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "agrobank"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "agrobank_financing"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: kafka.Config{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "financing-service"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Issuer: getEnv("JWT_ISSUER", "agrobank"),
		},
		Financing: FinancingConfig{
			MinimumAmount:    getEnvDecimal("FINANCING_MINIMUM_AMOUNT", decimal.NewFromInt(2000)),
			PenaltyDailyRate: getEnvDecimal("FINANCING_PENALTY_DAILY_RATE", decimal.NewFromFloat(0.0005)),
			ScheduleMethod:   getEnv("FINANCING_SCHEDULE_METHOD", "ANNUITY"),
			SweepSpec:        getEnv("FINANCING_SWEEP_SPEC", "0 2 * * *"),
			SweepBatchSize:   getEnvInt("FINANCING_SWEEP_BATCH_SIZE", 500),
			DocumentBaseURL:  getEnv("FINANCING_DOCUMENT_BASE_URL", "https://docs.agrobank.internal"),
		},
		Outbox: OutboxConfig{
			PollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
			BatchSize:    getEnvInt("OUTBOX_BATCH_SIZE", 100),
		},
	}
}

// Validate panics on configuration the service cannot start without.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
