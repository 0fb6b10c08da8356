package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	App               AppConfig
	HTTP              ServerConfig
	GRPC              ServerConfig
	MySQL             MySQLConfig
	Redis             RedisConfig
	Log               LogConfig
	InternalEndpoints InternalEndpointsConfig
	NPAtobarai        NPAtobaraiConfig
	Postal            PostalConfig
	Jobs              JobsConfig
}

type AppConfig struct {
	ServiceName string
	APIKey      string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional; an empty Addr disables the postal cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

type InternalEndpointsConfig struct {
	AuthGRPCAddr string
}

type NPAtobaraiConfig struct {
	MerchantCode   string
	SPCode         string
	TerminalID     string
	TestMode       bool
	ProductionURL  string
	TestURL        string
	RequestTimeout time.Duration
}

type PostalConfig struct {
	DatasetPath string
	CacheTTL    time.Duration
}

type JobsConfig struct {
	VoidHeldInterval time.Duration
	BatchSize        int32
}

func Load() (*Config, error) {
	cfg := LoadWithoutDatabase()
	if cfg.MySQL.DSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}
	return cfg, nil
}

// LoadWithoutDatabase reads the configuration for commands that never open
// the ledger, so MYSQL_DSN may be empty.
func LoadWithoutDatabase() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "atobarai-service"),
			APIKey:      getEnv("APP_API_KEY", ""),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		MySQL: MySQLConfig{
			DSN:             os.Getenv("MYSQL_DSN"),
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		InternalEndpoints: InternalEndpointsConfig{
			AuthGRPCAddr: getEnv("AUTH_SERVICE_GRPC_ADDR", "localhost:9090"),
		},
		NPAtobarai: NPAtobaraiConfig{
			MerchantCode:   getEnv("NP_ATOBARAI_MERCHANT_CODE", ""),
			SPCode:         getEnv("NP_ATOBARAI_SP_CODE", ""),
			TerminalID:     getEnv("NP_ATOBARAI_TERMINAL_ID", ""),
			TestMode:       getBoolEnv("NP_ATOBARAI_TEST_MODE", true),
			ProductionURL:  getEnv("NP_ATOBARAI_PRODUCTION_URL", ""),
			TestURL:        getEnv("NP_ATOBARAI_TEST_URL", ""),
			RequestTimeout: getSecondsEnv("NP_ATOBARAI_REQUEST_TIMEOUT_SECONDS", 15*time.Second),
		},
		Postal: PostalConfig{
			DatasetPath: getEnv("POSTAL_DATASET_PATH", ""),
			CacheTTL:    getMinutesEnv("POSTAL_CACHE_TTL_MINUTES", 24*time.Hour),
		},
		Jobs: JobsConfig{
			VoidHeldInterval: getMinutesEnv("ATOBARAI_VOID_HELD_INTERVAL_MINUTES", 5*time.Minute),
			BatchSize:        int32(getIntEnv("ATOBARAI_JOB_BATCH_SIZE", 100)),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := cast.ToIntE(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := cast.ToBoolE(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, int(defaultValue/time.Minute))) * time.Minute
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, int(defaultValue/time.Second))) * time.Second
}
