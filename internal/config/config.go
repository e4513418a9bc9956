package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Auth   AuthConfig
	Ai     AIConfig
	Ocr    OCRConfig
	Limits LimitsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AuthConfig struct {
	// Provider selects the token verifier: "remote" (identity provider
	// lookup endpoint) or "jwt" (local HS256 check).
	Provider  string
	JWTSecret string
	VerifyURL string
	APIKey    string
	Timeout   time.Duration
}

type AIConfig struct {
	LLMProvider   string // "groq", "ollama", "huggingface"
	LLMModel      string
	APIKey        string
	BaseURL       string
	OllamaBaseURL string
	RelayTimeout  time.Duration
}

type OCRConfig struct {
	VisionAPIKey   string
	VisionEndpoint string
	Timeout        time.Duration
}

type LimitsConfig struct {
	WordLimit  int
	MaxUploads int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			Provider:  getEnv("AUTH_PROVIDER", "jwt"),
			JWTSecret: getEnv("JWT_SECRET", ""),
			VerifyURL: getEnv("AUTH_VERIFY_URL", ""),
			APIKey:    getEnv("AUTH_API_KEY", ""),
			Timeout:   getEnvAsDuration("AUTH_TIMEOUT_SECONDS", 10),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "groq"),
			LLMModel:      getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			APIKey:        getEnv("GROQ_API_KEY", ""),
			BaseURL:       getEnv("LLM_BASE_URL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			RelayTimeout:  getEnvAsDuration("RELAY_TIMEOUT_SECONDS", 60),
		},
		Ocr: OCRConfig{
			VisionAPIKey:   getEnv("VISION_API_KEY", ""),
			VisionEndpoint: getEnv("VISION_ENDPOINT", ""),
			Timeout:        getEnvAsDuration("OCR_TIMEOUT_SECONDS", 30),
		},
		Limits: LimitsConfig{
			WordLimit:  getEnvAsInt("EXTRACTION_WORD_LIMIT", 1000),
			MaxUploads: getEnvAsInt("MAX_UPLOADS_PER_SESSION", 5),
		},
	}
}

// Validate makes missing credentials a startup failure instead of a runtime
// surprise.
func (c *Config) Validate() error {
	switch c.Ai.LLMProvider {
	case "groq", "huggingface":
		if c.Ai.APIKey == "" {
			return fmt.Errorf("config: GROQ_API_KEY is required for LLM provider %q", c.Ai.LLMProvider)
		}
	case "ollama":
		// Local provider, no key needed
	default:
		return fmt.Errorf("config: unknown LLM provider %q", c.Ai.LLMProvider)
	}

	switch c.Auth.Provider {
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("config: JWT_SECRET is required for auth provider \"jwt\"")
		}
	case "remote":
		if c.Auth.VerifyURL == "" {
			return fmt.Errorf("config: AUTH_VERIFY_URL is required for auth provider \"remote\"")
		}
	default:
		return fmt.Errorf("config: unknown auth provider %q", c.Auth.Provider)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallbackSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallbackSeconds)) * time.Second
}
