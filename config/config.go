package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Addr    string
	GinMode string
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

// SessionConfig 控制 session cookie 與其在 Redis 中的存活時間
type SessionConfig struct {
	Backend    string // redis | memory
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// AuthConfig 密碼雜湊成本與啟動時建立的管理員帳號
type AuthConfig struct {
	BcryptCost    int
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Session:  GetSessionConfig(),
		Auth:     GetAuthConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnv("TEST_DB_PORT", "5433"), // 測試 DB 用 5433 port
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnv("TEST_DB_NAME", "test_db"),
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnv("TEST_REDIS_PORT", "6380"), // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Addr: ":0", GinMode: "test"},
		Database: testConfig,
		Redis:    testRedisConfig,
		Session: SessionConfig{
			Backend:    "memory",
			CookieName: "session_id",
			TTL:        15 * time.Minute,
		},
		Auth: AuthConfig{
			// bcrypt.MinCost，讓測試跑得快
			BcryptCost: 4,
		},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Addr:    getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", "release"),
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
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

func GetSessionConfig() SessionConfig {
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "15m"))
	if err != nil {
		panic(err)
	}

	secure, err := strconv.ParseBool(getEnv("SESSION_SECURE", "false"))
	if err != nil {
		panic(err)
	}

	return SessionConfig{
		Backend:    getEnv("SESSION_BACKEND", "redis"),
		CookieName: getEnv("SESSION_COOKIE", "session_id"),
		TTL:        ttl,
		Secure:     secure,
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		BcryptCost:    getEnvInt("BCRYPT_COST", 12),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}
	return n
}
