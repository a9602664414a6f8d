package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingEnv is returned by Load when a required variable is unset.
var ErrMissingEnv = errors.New("required environment variable is not set")

// Fixed relay settings. These are not read from the environment.
const (
	AllowedOrigin          = "https://quick-chat-app-oq7b.vercel.app"
	DefaultModel           = "gemini-1.5-flash"
	DefaultTemperature     = 0.2
	DefaultMaxOutputTokens = 512
)

// GenerationConfig holds the parameters sent with every generation call.
type GenerationConfig struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

type Config struct {
	// Server
	Port string
	Env  string

	// CORS
	AllowedOrigin string

	// Gemini AI
	APIKey          string
	Generation      GenerationConfig
	RequestTimeout  time.Duration
	MaxMessageChars int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	apiKey, err := requireEnv("API_KEY")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Env:           getEnvOrDefault("ENV", "development"),
		AllowedOrigin: AllowedOrigin,
		APIKey:        apiKey,
		Generation: GenerationConfig{
			Model:           DefaultModel,
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
		RequestTimeout:  time.Duration(getEnvAsIntOrDefault("GEMINI_TIMEOUT_SECONDS", 60)) * time.Second,
		MaxMessageChars: getEnvAsIntOrDefault("MAX_MESSAGE_CHARS", 16000),
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return val, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}
