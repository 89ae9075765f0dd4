package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/redchoeng/titan-kr/internal/domain"
)

// Config holds application configuration
type Config struct {
	DataDir          string // Base directory for all databases
	Port             int
	DevMode          bool
	LogLevel         string
	AnalysisMode     domain.AnalysisMode
	BenchmarkSymbol  string // Yahoo symbol of the benchmark index
	AnalysisSchedule string // cron spec for the daily analysis run
	MaxConcurrent    int    // scoring goroutines per batch
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "")
	if dataDir == "" {
		if _, err := os.Stat("./data"); err == nil {
			dataDir = "./data"
		} else {
			dataDir = "../data"
		}
	}

	cfg := &Config{
		DataDir:          dataDir,
		Port:             getEnvAsInt("GO_PORT", 8001),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AnalysisMode:     domain.AnalysisMode(getEnv("ANALYSIS_MODE", string(domain.ModeGrowth))),
		BenchmarkSymbol:  getEnv("BENCHMARK_SYMBOL", "^KS11"),
		AnalysisSchedule: getEnv("ANALYSIS_SCHEDULE", "0 40 15 * * MON-FRI"), // 15:40 KST, after close
		MaxConcurrent:    getEnvAsInt("MAX_CONCURRENT_SCORING", 4),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if !c.AnalysisMode.Valid() {
		return fmt.Errorf("invalid ANALYSIS_MODE %q: must be growth or value", c.AnalysisMode)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("MAX_CONCURRENT_SCORING must be at least 1, got %d", c.MaxConcurrent)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid GO_PORT %d", c.Port)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
