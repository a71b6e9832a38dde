package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Durable store selection: "badger", "sqlite", "postgres" or "mysql"
	StoreBackend string
	StorePath    string
	DatabaseURL  string

	// Remote dictionary source
	RemoteBaseURL string
	RemoteTimeout time.Duration

	// Dictionary shape
	DictionaryVersion string
	MinWordLength     int
	MaxWordLength     int
	EssentialPrefixes []string

	// Tiered cache
	HotCacheSize int
	CacheMaxAge  time.Duration

	// Loader retry and background prefetch
	RetryMaxAttempts       int
	RetryBackoffBase       time.Duration
	PrefetchBatchSize      int
	PrefetchInterval       time.Duration
	PopularPrefixThreshold int64

	// Daily puzzle search bounds
	PuzzleMaxDepth int
	PuzzleMaxPairs int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		StoreBackend: getEnv("STORE_BACKEND", "badger"),
		StorePath:    getEnv("STORE_PATH", "./wordchain-cache"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		RemoteBaseURL: getEnv("DICTIONARY_URL", "https://api.wordchain.dev/v1"),
		RemoteTimeout: getEnvDuration("DICTIONARY_TIMEOUT", 10*time.Second),

		DictionaryVersion: getEnv("DICTIONARY_VERSION", "1"),
		MinWordLength:     getEnvInt("MIN_WORD_LENGTH", 2),
		MaxWordLength:     getEnvInt("MAX_WORD_LENGTH", 15),
		EssentialPrefixes: getEnvList("ESSENTIAL_PREFIXES", defaultEssentialPrefixes),

		HotCacheSize: getEnvInt("HOT_CACHE_SIZE", 256),
		CacheMaxAge:  getEnvDuration("CACHE_MAX_AGE", 7*24*time.Hour),

		RetryMaxAttempts:       getEnvInt("RETRY_MAX_ATTEMPTS", 3),
		RetryBackoffBase:       getEnvDuration("RETRY_BACKOFF_BASE", 500*time.Millisecond),
		PrefetchBatchSize:      getEnvInt("PREFETCH_BATCH_SIZE", 5),
		PrefetchInterval:       getEnvDuration("PREFETCH_INTERVAL", 2*time.Second),
		PopularPrefixThreshold: int64(getEnvInt("POPULAR_PREFIX_THRESHOLD", 10)),

		PuzzleMaxDepth: getEnvInt("PUZZLE_MAX_DEPTH", 6),
		PuzzleMaxPairs: getEnvInt("PUZZLE_MAX_PAIRS", 10),
	}
}

// defaultEssentialPrefixes are the two-letter starts most chains pass
// through; they are loaded synchronously before the engine reports ready.
var defaultEssentialPrefixes = []string{
	"an", "ar", "at", "be", "ca", "co", "de", "en", "er", "es",
	"in", "le", "li", "ma", "me", "on", "or", "re", "st", "th",
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList reads a comma-separated environment variable or returns a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
