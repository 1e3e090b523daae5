package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Admin     AdminConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
	Booking   BookingConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	Debug           bool
	LogPath         string
	SeedOnStart     bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

type AdminConfig struct {
	APIKey string
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	MinConns int32
	Migrate  bool
}

// DSN returns a libpq keyword/value connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		c.User, c.Password, c.Name, c.Host, c.Port)
}

type CacheConfig struct {
	ListingTTL  time.Duration
	ListingSize int64
}

type RateLimitConfig struct {
	BookingRPS   float64
	BookingBurst int
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
}

type BookingConfig struct {
	PhoneRegion string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("APP_NAME", "rental-booking")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("HTTP_READ_TIMEOUT", "10s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORE", StorePostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("LISTING_CACHE_TTL", "5m")
	v.SetDefault("LISTING_CACHE_SIZE", 1000)
	v.SetDefault("BOOKING_RATE_LIMIT", 5)
	v.SetDefault("BOOKING_RATE_BURST", 10)
	v.SetDefault("KAFKA_BOOKING_TOPIC", "bookings")
	v.SetDefault("PHONE_REGION", "TH")

	// .env is optional; the process environment always wins.
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Env:             strings.ToLower(v.GetString("APP_ENV")),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			SeedOnStart:     v.GetBool("SEED_ON_START"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Admin: AdminConfig{
			APIKey: v.GetString("ADMIN_API_KEY"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Cache: CacheConfig{
			ListingTTL:  v.GetDuration("LISTING_CACHE_TTL"),
			ListingSize: v.GetInt64("LISTING_CACHE_SIZE"),
		},
		RateLimit: RateLimitConfig{
			BookingRPS:   v.GetFloat64("BOOKING_RATE_LIMIT"),
			BookingBurst: v.GetInt("BOOKING_RATE_BURST"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			BookingTopic: v.GetString("KAFKA_BOOKING_TOPIC"),
		},
		Booking: BookingConfig{
			PhoneRegion: strings.ToUpper(v.GetString("PHONE_REGION")),
		},
	}

	if config.Store.Driver != StorePostgres && config.Store.Driver != StoreMemory {
		return nil, fmt.Errorf("unknown STORE %q", config.Store.Driver)
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
