package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Mongo  Mongo
	Redis  Redis
	Kafka  Kafka
	Auth   Auth
	SMTP   SMTP
	Observ Observability
}

type Server struct {
	Port string
	Env  string
}

type Mongo struct {
	URI      string
	Database string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Brokers       []string
	TopicOrders   string
	ConsumerGroup string
}

type Auth struct {
	JWTSecret     string
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
	OTPTTL        time.Duration
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Observability struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	cfg := &Config{
		Server: Server{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: Mongo{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "ecommerce"),
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: Kafka{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicOrders:   getEnv("KAFKA_TOPIC_ORDER_EVENTS", "order-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "ecommerce-backend-group"),
		},
		Auth: Auth{
			JWTSecret:     getEnv("JWT_SECRET", "change-me"),
			SessionTTL:    getDuration("SESSION_TOKEN_TTL", 24*time.Hour),
			ResetTokenTTL: getDuration("RESET_TOKEN_TTL", 15*time.Minute),
			OTPTTL:        getDuration("OTP_TTL", 10*time.Minute),
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     smtpPort,
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@example.com"),
		},
		Observ: Observability{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
