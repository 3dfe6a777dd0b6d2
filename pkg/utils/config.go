package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Service names, also used as log file names and trace resource names
const (
	ServiceGateway = "api-gateway"
	ServiceUser    = "user-service"
	ServiceGame    = "game-service"
)

const minJWTSecretLength = 32

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Gateway   GatewayConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type CookieConfig struct {
	Secure bool
	Domain string
}

type GatewayConfig struct {
	UserServiceURL string
	GameServiceURL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	AuthPerMinute int
}

type TelemetryConfig struct {
	Enable      bool
	Endpoint    string
	SampleRatio float64
}

var defaultPorts = map[string]string{
	ServiceGateway: "8080",
	ServiceUser:    "8081",
	ServiceGame:    "8082",
}

// LoadConfig reads configuration for the given service from an optional .env
// file (CONFIG_FILE overrides the path) and the process environment.
func LoadConfig(service string) (*Config, error) {
	v := viper.New()

	v.SetDefault("CONFIG_FILE", ".env")
	v.SetDefault("APP_NAME", service)
	v.SetDefault("PORT", defaultPorts[service])
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "userdb")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "gamedb")
	v.SetDefault("MONGO_TIMEOUT", "10s")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CACHE_TTL", "5m")

	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")

	v.SetDefault("COOKIE_SECURE", true)

	v.SetDefault("USER_SERVICE_URL", "http://localhost:8081")
	v.SetDefault("GAME_SERVICE_URL", "http://localhost:8082")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_AUTH_PER_MINUTE", 60)

	v.SetDefault("OTEL_ENABLE", false)
	v.SetDefault("OTEL_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)

	v.AutomaticEnv()

	v.SetConfigFile(v.GetString("CONFIG_FILE"))
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
			Timeout:  v.GetDuration("MONGO_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("REDIS_CACHE_TTL"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		Cookie: CookieConfig{
			Secure: v.GetBool("COOKIE_SECURE"),
			Domain: v.GetString("COOKIE_DOMAIN"),
		},
		Gateway: GatewayConfig{
			UserServiceURL: v.GetString("USER_SERVICE_URL"),
			GameServiceURL: v.GetString("GAME_SERVICE_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: v.GetInt("RATE_LIMIT_AUTH_PER_MINUTE"),
		},
		Telemetry: TelemetryConfig{
			Enable:      v.GetBool("OTEL_ENABLE"),
			Endpoint:    v.GetString("OTEL_ENDPOINT"),
			SampleRatio: v.GetFloat64("OTEL_SAMPLE_RATIO"),
		},
	}

	return config, nil
}

// ValidateJWT checks the signing secret and token lifetimes.
func (c *Config) ValidateJWT() error {
	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive")
	}
	return nil
}

func (c *Config) ValidateGateway() error {
	if err := c.ValidateJWT(); err != nil {
		return err
	}
	if c.Gateway.UserServiceURL == "" || c.Gateway.GameServiceURL == "" {
		return errors.New("USER_SERVICE_URL and GAME_SERVICE_URL are required")
	}
	return nil
}

func (c *Config) ValidateUserService() error {
	if err := c.ValidateJWT(); err != nil {
		return err
	}
	if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
		return errors.New("DB_HOST, DB_NAME and DB_USER are required")
	}
	return nil
}

func (c *Config) ValidateGameService() error {
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		return errors.New("MONGO_URI and MONGO_DATABASE are required")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
