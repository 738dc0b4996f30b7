package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/FundFlow/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Symbols        []string       // trading pairs, e.g. BTCUSDT
	Interval       model.Interval // bar duration label
	WindowSize     int            // completed bars per analysis run
	DepthLimit     int            // order-book levels per side
	Variant        string         // analysis variant: regression or windowed
	SpotBaseURL    string
	FuturesBaseURL string
	RequestTimeout int // seconds
	RequestsPerSec int
	OpenAIAPIKey   string
	OpenAIModel    string
	Narrate        bool
	TelegramToken  string
	LogLevel       string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load initializes configuration from environment variables, reading a .env
// file first if one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	interval, err := model.ParseInterval(getEnvWithDefault("INTERVAL", "1h"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Symbols:        splitSymbols(getEnvWithDefault("SYMBOLS", "BTCUSDT")),
		Interval:       interval,
		WindowSize:     getEnvIntWithDefault("WINDOW_SIZE", 50),
		DepthLimit:     getEnvIntWithDefault("DEPTH_LIMIT", 1000),
		Variant:        getEnvWithDefault("ANALYSIS_VARIANT", "regression"),
		SpotBaseURL:    getEnvWithDefault("SPOT_BASE_URL", "https://api.binance.com"),
		FuturesBaseURL: getEnvWithDefault("FUTURES_BASE_URL", "https://fapi.binance.com"),
		RequestTimeout: getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		RequestsPerSec: getEnvIntWithDefault("REQUESTS_PER_SEC", 5),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnvWithDefault("OPENAI_MODEL", ""),
		Narrate:        getEnvBoolWithDefault("NARRATE", false),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getEnvWithDefault("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSSLMode:      getEnvWithDefault("DB_SSLMODE", "disable"),
	}

	if cfg.WindowSize < 1 {
		return nil, fmt.Errorf("%w: WINDOW_SIZE must be positive", model.ErrInvalidInput)
	}
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols configured", model.ErrInvalidInput)
	}
	return cfg, nil
}

func splitSymbols(raw string) []string {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

// Helper functions for environment variable handling.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
