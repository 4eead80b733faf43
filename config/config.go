package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"screen-text-watcher/screenshot"
)

type Config struct {
	// OCR backend selection: "tesseract" (local) or "vision" (OpenRouter).
	OCRBackend  string
	OCRLanguage string

	// OpenRouter settings, used by the vision backend only.
	APIKey    string
	Model     string
	Providers []string

	// Monitoring policy.
	Interval         time.Duration
	FailureThreshold int

	// Region is the optional preconfigured region ("x,y,width,height").
	// Zero value means no region configured; it must then come from flags.
	Region screenshot.Region

	EnableFileLogging bool
	Hotkey            string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or executable directory
	envPaths := []string{".env"}

	// If running as executable, also try the executable's directory
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		envPaths = append(envPaths, filepath.Join(execDir, ".env"))
	}

	// Try to load .env file (ignore errors if file doesn't exist)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	// Parse providers from comma-separated string
	var providers []string
	if providersStr := os.Getenv("PROVIDERS"); providersStr != "" {
		for _, provider := range strings.Split(providersStr, ",") {
			if trimmed := strings.TrimSpace(provider); trimmed != "" {
				providers = append(providers, trimmed)
			}
		}
	}

	intervalMs, err := getEnvInt("MONITOR_INTERVAL_MS", 1000)
	if err != nil {
		return nil, err
	}
	threshold, err := getEnvInt("FAILURE_THRESHOLD", 3)
	if err != nil {
		return nil, err
	}

	region, err := parseRegion(os.Getenv("MONITOR_REGION"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OCRBackend:        getEnvWithDefault("OCR_BACKEND", "tesseract"),
		OCRLanguage:       getEnvWithDefault("OCR_LANGUAGE", "eng"),
		APIKey:            os.Getenv("OPENROUTER_API_KEY"),
		Model:             os.Getenv("MODEL"),
		Providers:         providers,
		Interval:          time.Duration(intervalMs) * time.Millisecond,
		FailureThreshold:  threshold,
		Region:            region,
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		Hotkey:            getEnvWithDefault("HOTKEY", "Ctrl+Alt+M"),
	}

	return cfg, nil
}

// parseRegion parses "x,y,width,height". Empty input yields a zero region.
func parseRegion(s string) (screenshot.Region, error) {
	if strings.TrimSpace(s) == "" {
		return screenshot.Region{}, nil
	}
	region, err := screenshot.ParseRegion(s)
	if err != nil {
		return screenshot.Region{}, fmt.Errorf("MONITOR_REGION: %v", err)
	}
	return region, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}
