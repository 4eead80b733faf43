package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"screen-text-watcher/llm"
	"screen-text-watcher/screenshot"
)

func TestNewBackendSelection(t *testing.T) {
	engine, err := New(Config{})
	if err != nil {
		t.Fatalf("New with defaults failed: %v", err)
	}
	if engine.Name() != BackendTesseract {
		t.Errorf("Default backend = %q, want %q", engine.Name(), BackendTesseract)
	}

	engine, err = New(Config{Backend: "Vision"})
	if err != nil {
		t.Fatalf("New(vision) failed: %v", err)
	}
	if engine.Name() != BackendVision {
		t.Errorf("Backend = %q, want %q", engine.Name(), BackendVision)
	}

	if _, err := New(Config{Backend: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestTesseractEngineEmptyFrame(t *testing.T) {
	engine := NewTesseractEngine("eng")
	if _, err := engine.Recognize(nil); err == nil {
		t.Error("Expected error for nil frame")
	}
	if _, err := engine.Recognize(&screenshot.Frame{}); err == nil {
		t.Error("Expected error for empty frame")
	}
}

func TestTesseractEngineBadFrameData(t *testing.T) {
	engine := NewTesseractEngine("eng")
	frame := &screenshot.Frame{PNG: []byte("not a png"), Width: 10, Height: 10}
	if _, err := engine.Recognize(frame); err == nil {
		t.Error("Expected decode error for malformed frame data")
	}
}

func TestPreprocessUpscalesNarrowCaptures(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.White)
		}
	}

	processed, err := preprocess(img)
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	if w := processed.Bounds().Dx(); w < minOCRWidth/2 {
		t.Errorf("Expected narrow capture to be upscaled, got width %d", w)
	}

	// Result must still encode cleanly.
	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		t.Errorf("Preprocessed image failed to encode: %v", err)
	}
}

func TestPreprocessKeepsWideCaptures(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 200))
	processed, err := preprocess(img)
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	if processed.Bounds().Dx() != 800 {
		t.Errorf("Wide capture must not be resized, got width %d", processed.Bounds().Dx())
	}
}

func TestVisionEngineEmptyFrame(t *testing.T) {
	engine := NewVisionEngine()
	if _, err := engine.Recognize(nil); err == nil {
		t.Error("Expected error for nil frame")
	}
}

func TestVisionEngineRequiresInit(t *testing.T) {
	llm.Init(nil)
	engine := NewVisionEngine()
	frame := &screenshot.Frame{PNG: []byte{0x89, 0x50, 0x4E, 0x47}, Width: 1, Height: 1}
	if _, err := engine.Recognize(frame); err == nil {
		t.Error("Expected error when LLM client is not initialized")
	}
}
