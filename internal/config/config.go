package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// OpenAI (classifier fallback)
	OpenAIAPIKey string
	Model        string
	// Square catalog source
	SquareAccessToken string
	SquareLocationID  string
	SquareBaseURL     string
	SquareVersion     string
	// Classifier prompt spec
	IntentSpecPath string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:              getEnvDefault("PORT", "8080"),
		AllowedOrigin:     getEnvDefault("ALLOWED_ORIGIN", "*"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:             getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		SquareAccessToken: os.Getenv("SQUARE_ACCESS_TOKEN"),
		SquareLocationID:  os.Getenv("SQUARE_LOCATION_ID"),
		SquareBaseURL:     getEnvDefault("SQUARE_BASE_URL", "https://connect.squareupsandbox.com"),
		SquareVersion:     getEnvDefault("SQUARE_VERSION", "2023-09-20"),
		IntentSpecPath:    getEnvDefault("INTENT_SPEC_PATH", "./prompts/intent.yaml"),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; free-text fallback will be unavailable")
	}
	if cfg.SquareAccessToken == "" || cfg.SquareLocationID == "" {
		log.Println("warning: SQUARE_ACCESS_TOKEN/SQUARE_LOCATION_ID not set; catalog will start empty")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
