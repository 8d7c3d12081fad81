// Package config loads the judge engine's environment-variable
// configuration: Kafka transport settings, the result-store DSN, the
// workspace root, and the concurrent-judges worker-pool size.
// Grounded on judging-service/config/config.go.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the judge engine process.
type Config struct {
	// Kafka configuration
	KafkaBootstrapServers     string
	KafkaSubmissionTopic      string
	KafkaResultTopic          string
	KafkaGroupID              string
	KafkaAutoOffsetReset      string
	KafkaSessionTimeoutMs     int
	KafkaMaxPollIntervalMs    int
	KafkaEnableAutoCommit     bool
	KafkaAutoCommitIntervalMs int

	// Database configuration
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Judging configuration
	WorkDir          string
	ConcurrentJudges int
	PollTimeout      time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		// Kafka defaults
		KafkaBootstrapServers:     getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
		KafkaSubmissionTopic:      getEnv("KAFKA_SUBMISSION_TOPIC", "code-submissions"),
		KafkaResultTopic:          getEnv("KAFKA_RESULT_TOPIC", "judge-results"),
		KafkaGroupID:              getEnv("KAFKA_GROUP_ID", "judging-service"),
		KafkaAutoOffsetReset:      getEnv("KAFKA_AUTO_OFFSET_RESET", "earliest"),
		KafkaSessionTimeoutMs:     getEnvAsInt("KAFKA_SESSION_TIMEOUT_MS", 10000),
		KafkaMaxPollIntervalMs:    getEnvAsInt("KAFKA_MAX_POLL_INTERVAL_MS", 300000),
		KafkaEnableAutoCommit:     getEnvAsBool("KAFKA_ENABLE_AUTO_COMMIT", true),
		KafkaAutoCommitIntervalMs: getEnvAsInt("KAFKA_AUTO_COMMIT_INTERVAL_MS", 5000),

		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvAsInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "codecourt"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Judging defaults
		WorkDir:          getEnv("WORK_DIR", "/tmp/judge-engine"),
		ConcurrentJudges: getEnvAsInt("CONCURRENT_JUDGES", 4),
		PollTimeout:      getEnvAsDuration("KAFKA_POLL_TIMEOUT", 100*time.Millisecond),
	}

	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
