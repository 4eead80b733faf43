package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Set test environment variables
	os.Setenv("OCR_BACKEND", "vision")
	os.Setenv("OCR_LANGUAGE", "deu")
	os.Setenv("OPENROUTER_API_KEY", "test_api_key")
	os.Setenv("MODEL", "test_model")
	os.Setenv("MONITOR_INTERVAL_MS", "500")
	os.Setenv("FAILURE_THRESHOLD", "5")
	os.Setenv("MONITOR_REGION", "10,20,300,200")
	os.Setenv("ENABLE_FILE_LOGGING", "true")
	os.Setenv("HOTKEY", "Ctrl+Shift+T")

	defer func() {
		// Clean up environment variables
		os.Unsetenv("OCR_BACKEND")
		os.Unsetenv("OCR_LANGUAGE")
		os.Unsetenv("OPENROUTER_API_KEY")
		os.Unsetenv("MODEL")
		os.Unsetenv("MONITOR_INTERVAL_MS")
		os.Unsetenv("FAILURE_THRESHOLD")
		os.Unsetenv("MONITOR_REGION")
		os.Unsetenv("ENABLE_FILE_LOGGING")
		os.Unsetenv("HOTKEY")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.OCRBackend != "vision" {
		t.Errorf("Expected OCRBackend to be 'vision', got '%s'", cfg.OCRBackend)
	}
	if cfg.OCRLanguage != "deu" {
		t.Errorf("Expected OCRLanguage to be 'deu', got '%s'", cfg.OCRLanguage)
	}
	if cfg.APIKey != "test_api_key" {
		t.Errorf("Expected APIKey to be 'test_api_key', got '%s'", cfg.APIKey)
	}
	if cfg.Model != "test_model" {
		t.Errorf("Expected Model to be 'test_model', got '%s'", cfg.Model)
	}
	if cfg.Interval != 500*time.Millisecond {
		t.Errorf("Expected Interval to be 500ms, got %v", cfg.Interval)
	}
	if cfg.FailureThreshold != 5 {
		t.Errorf("Expected FailureThreshold to be 5, got %d", cfg.FailureThreshold)
	}
	if cfg.Region.X != 10 || cfg.Region.Y != 20 || cfg.Region.Width != 300 || cfg.Region.Height != 200 {
		t.Errorf("Unexpected region: %+v", cfg.Region)
	}
	if !cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be true, got %v", cfg.EnableFileLogging)
	}
	if cfg.Hotkey != "Ctrl+Shift+T" {
		t.Errorf("Expected Hotkey to be 'Ctrl+Shift+T', got '%s'", cfg.Hotkey)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"OCR_BACKEND", "OCR_LANGUAGE", "MONITOR_INTERVAL_MS", "FAILURE_THRESHOLD", "MONITOR_REGION", "HOTKEY"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.OCRBackend != "tesseract" {
		t.Errorf("Expected default backend 'tesseract', got '%s'", cfg.OCRBackend)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("Expected default language 'eng', got '%s'", cfg.OCRLanguage)
	}
	if cfg.Interval != time.Second {
		t.Errorf("Expected default interval 1s, got %v", cfg.Interval)
	}
	if cfg.FailureThreshold != 3 {
		t.Errorf("Expected default threshold 3, got %d", cfg.FailureThreshold)
	}
	if cfg.Region.Width != 0 || cfg.Region.Height != 0 {
		t.Errorf("Expected zero region by default, got %+v", cfg.Region)
	}
}

func TestParseRegion(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"", true},
		{"0,0,100,100", true},
		{" 5 , 10 , 20 , 30 ", true},
		{"1,2,3", false},
		{"a,b,c,d", false},
		{"0,0,0,100", false},
		{"0,0,100,-1", false},
	}
	for _, c := range cases {
		_, err := parseRegion(c.in)
		if c.ok && err != nil {
			t.Errorf("parseRegion(%q) unexpected error: %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Errorf("parseRegion(%q) expected error", c.in)
		}
	}
}

func TestLoadBadInterval(t *testing.T) {
	os.Setenv("MONITOR_INTERVAL_MS", "-100")
	defer os.Unsetenv("MONITOR_INTERVAL_MS")
	if _, err := Load(); err == nil {
		t.Error("Expected error for non-positive interval")
	}
}
