package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port  string
	DBUrl string
	// StorageDriver selects the ranking store and profile source: postgres or memory.
	StorageDriver string
	// ProfilesFile seeds the in-memory profile source.
	ProfilesFile string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	NotifyChannel string
	// PresenceKey and PresenceChannel are shared with the real-time gateway.
	PresenceKey     string
	PresenceChannel string
	// Auth
	JWTSecret string
	// Matching
	MatchWorkers           int
	MatchUpsertConcurrency int
	MatchRunTimeout        time.Duration
	MatchMaxPageSize       int
	MatchMaxBatchSize      int
	MatchSchedule          string // cron spec, empty disables the scheduler
	MatchWeightsFile       string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitRunThreshold    int
	RateLimitGlobalThreshold int
	// Logging
	LogJSON  bool
	LogDebug bool
	// HTTP
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         getEnv("DATABASE_URL", ""),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		ProfilesFile:  getEnv("PROFILES_FILE", ""),
		// Redis Configuration
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		NotifyChannel:   getEnv("NOTIFY_CHANNEL", "match-events"),
		PresenceKey:     getEnv("PRESENCE_KEY", "presence:online"),
		PresenceChannel: getEnv("PRESENCE_CHANNEL", "presence-events"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		// Matching
		MatchWorkers:           getEnvInt("MATCH_WORKERS", 0), // 0 = GOMAXPROCS
		MatchUpsertConcurrency: getEnvInt("MATCH_UPSERT_CONCURRENCY", 8),
		MatchRunTimeout:        getEnvDuration("MATCH_RUN_TIMEOUT", 30*time.Second),
		MatchMaxPageSize:       getEnvInt("MATCH_MAX_PAGE_SIZE", 100),
		MatchMaxBatchSize:      getEnvInt("MATCH_MAX_BATCH_SIZE", 50),
		MatchSchedule:          getEnv("MATCH_SCHEDULE", ""),
		MatchWeightsFile:       getEnv("MATCH_WEIGHTS_FILE", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitRunThreshold:    getEnvInt("RATE_LIMIT_RUN_THRESHOLD", 20),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		// Logging
		LogJSON:  getEnvBool("LOG_JSON", true),
		LogDebug: getEnvBool("LOG_DEBUG", false),
		// HTTP
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.StorageDriver != StorageMemory && cfg.StorageDriver != StoragePostgres {
		log.Printf("WARNING: unknown STORAGE_DRIVER %q, using %s", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	if cfg.StorageDriver == StoragePostgres && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback and match events are dropped.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("45s") or plain seconds ("45").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
