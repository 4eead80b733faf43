package ocr

import (
	"fmt"

	"screen-text-watcher/llm"
	"screen-text-watcher/screenshot"
)

// VisionEngine sends frames to an OpenRouter vision model for recognition.
// Useful where Tesseract is not installed or the monitored text is too
// stylized for classical OCR.
type VisionEngine struct{}

func NewVisionEngine() *VisionEngine {
	return &VisionEngine{}
}

func (e *VisionEngine) Name() string { return BackendVision }

func (e *VisionEngine) Recognize(frame *screenshot.Frame) (string, error) {
	if frame == nil || len(frame.PNG) == 0 {
		return "", fmt.Errorf("empty frame")
	}
	return llm.QueryVision(frame.PNG)
}
