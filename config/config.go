package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Push     PushConfig
	Mail     MailConfig
}

type ServerConfig struct {
	Port    string
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// PushConfig Web Push (VAPID) 金鑰設定
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	// Subject 依 VAPID 規範須為 mailto: 或 https: URL
	Subject string
}

// MailConfig 郵件通知設定；Provider 為 "ses" 或 "noop"
type MailConfig struct {
	Provider        string
	FromAddress     string
	FromName        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時沿用環境變數即可
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Push:     GetPushConfig(),
		Mail:     GetMailConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "8080", BaseURL: "http://localhost:8080"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Mail:     MailConfig{Provider: "noop"},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnv("SERVER_PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetPushConfig() PushConfig {
	return PushConfig{
		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		Subject:         getEnv("VAPID_SUBJECT", "mailto:notify@timealign.example"),
	}
}

func GetMailConfig() MailConfig {
	return MailConfig{
		Provider:        getEnv("MAIL_PROVIDER", "noop"),
		FromAddress:     getEnv("MAIL_FROM_ADDRESS", "notify@timealign.example"),
		FromName:        getEnv("MAIL_FROM_NAME", "TimeAlign"),
		Region:          getEnv("AWS_SES_REGION", "us-east-1"),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
