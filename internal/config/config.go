package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// PlaceholderAPIKey is the value shipped in .env.example.
const PlaceholderAPIKey = "your_api_key_here"

type Config struct {
	Port           string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	Transport      string
	PromptTemplate string
	AnalyzeTimeout time.Duration
	MaxBodyBytes   int64
	StaticDir      string

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func Load() Config {
	return Config{
		Port:           getenv("PORT", "8000"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:  getenv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		Transport:      getenv("GEMINI_TRANSPORT", "rest"),
		PromptTemplate: getenv("PROMPT_TEMPLATE", "pronunciation"),
		AnalyzeTimeout: getenvDuration("ANALYZE_TIMEOUT", 120*time.Second),
		MaxBodyBytes:   int64(getenvInt("MAX_BODY_MB", 700)) << 20,
		StaticDir:      getenv("STATIC_DIR", ""),
		LogFile:        getenv("LOG_FILE", ""),
		LogMaxSizeMB:   getenvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups:  getenvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:  getenvInt("LOG_MAX_AGE_DAYS", 28),
	}
}

// APIKeyConfigured reports whether a usable credential is present.
func (c Config) APIKeyConfigured() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != PlaceholderAPIKey
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] invalid %s=%q, using %d", k, v, d)
		return d
	}
	return n
}

func getenvDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil || dur <= 0 {
		log.Printf("[config] invalid %s=%q, using %s", k, v, d)
		return d
	}
	return dur
}
