package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	GRPC    GRPCConfig
	SOAP    SOAPConfig
	Clients ClientsConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	CORS    CORSConfig
	Audit   AuditConfig
}

// ServerConfig REST листенер
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 5000)
}

type GRPCConfig struct {
	Address string // Адрес gRPC сервиса оценок (по умолчанию 0.0.0.0:50051)
}

type SOAPConfig struct {
	Host string
	Port string // по умолчанию 8000
	Path string // путь сервиса комментариев
}

// ClientsConfig адаптеры REST -> gRPC/SOAP
type ClientsConfig struct {
	RatingAddress string
	CommentURL    string
	Timeout       time.Duration // таймаут одной попытки
	MaxRetries    int
	RetryBackoff  time.Duration
}

type MongoDBConfig struct {
	URI      string // URI подключения к MongoDB
	Database string // Имя базы данных
}

type RedisConfig struct {
	Addr        string // пустой адрес отключает кэш
	Password    string
	DB          int
	CategoryTTL time.Duration // TTL категории рабочего места
}

type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port), пустой список отключает события
	Topic   string   // Топик для событий COMMENT_ADDED
}

type JWTConfig struct {
	Secret string // Секретный ключ для проверки JWT токенов
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AuditConfig struct {
	Schedule string // cron расписание, пустое отключает аудит
	Limit    int64
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	timeout, err := getEnvDuration("CLIENT_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	retries, err := getEnvInt("CLIENT_MAX_RETRIES", 2)
	if err != nil {
		return nil, err
	}
	backoff, err := getEnvDuration("CLIENT_RETRY_BACKOFF", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	categoryTTL, err := getEnvDuration("REDIS_CATEGORY_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	auditLimit, err := getEnvInt("AUDIT_LIMIT", 500)
	if err != nil {
		return nil, err
	}

	if retries < 0 {
		return nil, fmt.Errorf("CLIENT_MAX_RETRIES must not be negative, got %d", retries)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "5000"),
		},
		GRPC: GRPCConfig{
			Address: getEnv("GRPC_ADDRESS", "0.0.0.0:50051"),
		},
		SOAP: SOAPConfig{
			Host: getEnv("SOAP_HOST", "0.0.0.0"),
			Port: getEnv("SOAP_PORT", "8000"),
			Path: getEnv("SOAP_PATH", "/commentservice"),
		},
		Clients: ClientsConfig{
			RatingAddress: getEnv("RATING_SERVICE_ADDRESS", "localhost:50051"),
			CommentURL:    getEnv("COMMENT_SERVICE_URL", "http://localhost:8000/commentservice"),
			Timeout:       timeout,
			MaxRetries:    retries,
			RetryBackoff:  backoff,
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "focusmap"),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          redisDB,
			CategoryTTL: categoryTTL,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "comment_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Audit: AuditConfig{
			Schedule: getEnv("AUDIT_SCHEDULE", "@hourly"),
			Limit:    int64(auditLimit),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *SOAPConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// getEnvDuration принимает формат time.ParseDuration ("5s", "200ms")
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
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
