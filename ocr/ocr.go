// Package ocr abstracts the text-recognition backend behind a small Engine
// interface so the monitoring loop can be driven by a real OCR engine or a
// deterministic fake in tests.
package ocr

import (
	"fmt"
	"strings"

	"screen-text-watcher/screenshot"
)

// Backend names accepted by New.
const (
	BackendTesseract = "tesseract"
	BackendVision    = "vision"
)

// Engine extracts text from a captured frame. Implementations must not
// retain the frame after Recognize returns; the buffer belongs to the
// capture step and is discarded once the tick completes.
type Engine interface {
	// Recognize returns the raw recognized text for a frame. An empty
	// string with a nil error means no text was detected, which is a
	// valid observation for a monitored region.
	Recognize(frame *screenshot.Frame) (string, error)
	// Name identifies the backend for logs and status display.
	Name() string
}

// Config selects and parameterizes a backend.
type Config struct {
	// Backend is one of BackendTesseract (default) or BackendVision.
	Backend string
	// Language is the Tesseract language code, e.g. "eng". Ignored by
	// the vision backend.
	Language string
}

// New builds the configured engine. The vision backend requires llm.Init
// to have been called with a valid API key and model.
func New(cfg Config) (Engine, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendTesseract
	}
	switch backend {
	case BackendTesseract:
		return NewTesseractEngine(cfg.Language), nil
	case BackendVision:
		return NewVisionEngine(), nil
	default:
		return nil, fmt.Errorf("unknown OCR backend %q", cfg.Backend)
	}
}
