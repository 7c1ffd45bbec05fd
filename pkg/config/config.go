package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Monitor   MonitorConfig
	Simulator SimulatorConfig
	SMTP      SMTPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (d DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicReadings string
	TopicAlerts   string
	NumPartitions int
}

// MonitorConfig holds the default threshold used for sensors that have no
// threshold_configs rows, plus Redis TTL and notification cooldown settings.
type MonitorConfig struct {
	DefaultTarget    float64
	DefaultMargin    float64
	DefaultDirection string
	LatestReadingTTL time.Duration
	NotifyCooldown   time.Duration
}

type SimulatorConfig struct {
	SensorName string
	BaseTemp   float64
	Step       float64
	Interval   time.Duration
	Seed       int64
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "tempmon_user"),
			Password: getEnv("DB_PASSWORD", "tempmon_pass"),
			DBName:   getEnv("DB_NAME", "tempmon_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicReadings: getEnv("KAFKA_TOPIC_READINGS", "temp.readings.raw"),
			TopicAlerts:   getEnv("KAFKA_TOPIC_ALERTS", "temp.alerts"),
			NumPartitions: getEnvAsInt("KAFKA_NUM_PARTITIONS", 10),
		},
		Monitor: MonitorConfig{
			DefaultTarget:    getEnvAsFloat("MONITOR_DEFAULT_TARGET", 30.0),
			DefaultMargin:    getEnvAsFloat("MONITOR_DEFAULT_MARGIN", 0.5),
			DefaultDirection: getEnv("MONITOR_DEFAULT_DIRECTION", "UP"),
			LatestReadingTTL: getEnvAsDuration("MONITOR_LATEST_READING_TTL", 15*time.Minute),
			NotifyCooldown:   getEnvAsDuration("MONITOR_NOTIFY_COOLDOWN", 10*time.Minute),
		},
		Simulator: SimulatorConfig{
			SensorName: getEnv("SIMULATOR_SENSOR_NAME", "lab-probe-1"),
			BaseTemp:   getEnvAsFloat("SIMULATOR_BASE_TEMP", 22.0),
			Step:       getEnvAsFloat("SIMULATOR_STEP", 1.5),
			Interval:   getEnvAsDuration("SIMULATOR_INTERVAL", 5*time.Second),
			Seed:       int64(getEnvAsInt("SIMULATOR_SEED", 0)),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "temp-monitor@example.com"),
			To:       getEnv("SMTP_TO", "admin@example.com"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
