package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data sources
const (
	SourceFixtures = "fixtures"
	SourceDatabase = "database"
)

// Cache backends
const (
	CacheNone      = "none"
	CacheRedis     = "redis"
	CacheMemcached = "memcached"
)

type Config struct {
	Port                    string
	Env                     string
	DataSource              string
	AuthMode                string
	JWTSecret               string
	FirebaseCredentialsPath string
	PostgresUrl             string
	MongoURI                string
	MongoDatabase           string
	CacheBackend            string
	RedisAddr               string
	MemcachedAddr           string
	SearchCacheTTL          time.Duration
	SearchDebounce          time.Duration
	SimulatedLatency        time.Duration
	PublishLatency          time.Duration
	HeartBurstDuration      time.Duration
	SessionIdleTimeout      time.Duration
	StoryCleanupSchedule    string
}

var defaults = map[string]interface{}{
	"PORT":                      "8080",
	"ENV":                       "development",
	"DATA_SOURCE":               SourceFixtures,
	"AUTH_MODE":                 "jwt",
	"JWT_SECRET":                "supersecretjwtkey",
	"FIREBASE_CREDENTIALS_PATH": "",
	"POSTGRES_URL":              "host=localhost user=postgres password=postgres dbname=picgram port=5432 sslmode=disable",
	"MONGO_URI":                 "mongodb://localhost:27017",
	"MONGO_DATABASE":            "picgram",
	"CACHE_BACKEND":             CacheNone,
	"REDIS_ADDR":                "localhost:6379",
	"MEMCACHED_ADDR":            "127.0.0.1:11211",
	"SEARCH_CACHE_TTL":          "5m",
	"SEARCH_DEBOUNCE":           "300ms",
	"SIMULATED_LATENCY":         "1s",
	"PUBLISH_LATENCY":           "1.5s",
	"HEART_BURST_DURATION":      "1s",
	"SESSION_IDLE_TIMEOUT":      "30m",
	"STORY_CLEANUP_SCHEDULE":    "@hourly",
}

// Load reads .env (if present), an optional app.yaml and the environment.
// Environment variables win over the file, the file over defaults.
func Load() (*Config, error) {
	// a missing .env is fine; variables may come from the environment
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		DataSource:              strings.ToLower(v.GetString("DATA_SOURCE")),
		AuthMode:                strings.ToLower(v.GetString("AUTH_MODE")),
		JWTSecret:               v.GetString("JWT_SECRET"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		PostgresUrl:             v.GetString("POSTGRES_URL"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		CacheBackend:            strings.ToLower(v.GetString("CACHE_BACKEND")),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		MemcachedAddr:           v.GetString("MEMCACHED_ADDR"),
		SearchCacheTTL:          v.GetDuration("SEARCH_CACHE_TTL"),
		SearchDebounce:          v.GetDuration("SEARCH_DEBOUNCE"),
		SimulatedLatency:        v.GetDuration("SIMULATED_LATENCY"),
		PublishLatency:          v.GetDuration("PUBLISH_LATENCY"),
		HeartBurstDuration:      v.GetDuration("HEART_BURST_DURATION"),
		SessionIdleTimeout:      v.GetDuration("SESSION_IDLE_TIMEOUT"),
		StoryCleanupSchedule:    v.GetString("STORY_CLEANUP_SCHEDULE"),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.DataSource {
	case SourceFixtures, SourceDatabase:
	default:
		return errors.New("DATA_SOURCE must be fixtures or database")
	}
	switch c.AuthMode {
	case "jwt", "firebase":
	default:
		return errors.New("AUTH_MODE must be jwt or firebase")
	}
	switch c.CacheBackend {
	case CacheNone, CacheRedis, CacheMemcached:
	default:
		return errors.New("CACHE_BACKEND must be none, redis or memcached")
	}
	if c.AuthMode == "firebase" && c.FirebaseCredentialsPath == "" {
		return errors.New("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE is firebase")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	return nil
}
