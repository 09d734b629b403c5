package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Blockchain BlockchainConfig
	Storage    StorageConfig
	Admin      AdminConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration for admin tokens
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// BlockchainConfig holds the read endpoint used when a request names none and
// the other endpoints requests may name
type BlockchainConfig struct {
	DefaultRPCURL  string
	AllowedRPCURLs []string
	ResolveTimeout time.Duration
}

// RPCAllowlist returns every endpoint the server may dial, default first
func (c BlockchainConfig) RPCAllowlist() []string {
	out := make([]string, 0, len(c.AllowedRPCURLs)+1)
	seen := make(map[string]bool, len(c.AllowedRPCURLs)+1)
	for _, url := range append([]string{c.DefaultRPCURL}, c.AllowedRPCURLs...) {
		url = strings.TrimSpace(url)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		out = append(out, url)
	}
	return out
}

// StorageConfig holds the metadata gateway settings
type StorageConfig struct {
	GatewayURL string
	CacheTTL   time.Duration
}

// AdminConfig holds the bcrypt hash of the admin password
type AdminConfig struct {
	PasswordHash string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     getEnv("SERVER_PORT", "8080"),
			Env:      getEnv("SERVER_ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "contract_registry"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", time.Hour),
		},
		Blockchain: BlockchainConfig{
			DefaultRPCURL:  getEnv("DEFAULT_RPC_URL", ""),
			AllowedRPCURLs: getEnvAsList("ALLOWED_RPC_URLS"),
			ResolveTimeout: getEnvAsDuration("RESOLVE_TIMEOUT", 15*time.Second),
		},
		Storage: StorageConfig{
			GatewayURL: getEnv("IPFS_GATEWAY_URL", "https://ipfs.io/ipfs/"),
			CacheTTL:   getEnvAsDuration("METADATA_CACHE_TTL", 10*time.Minute),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
