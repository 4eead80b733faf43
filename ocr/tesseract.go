package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"screen-text-watcher/screenshot"
)

const (
	// Captures narrower than this are upscaled before recognition;
	// Tesseract struggles with small glyphs.
	minOCRWidth = 400
	maxUpscale  = 3.0
)

// TesseractEngine runs OCR locally through the Tesseract library.
// A fresh client is created per call; sharing one client across captures
// has produced crashes in the underlying C API.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates a local OCR engine. Language defaults to "eng".
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

func (e *TesseractEngine) Name() string { return BackendTesseract }

// Recognize decodes the frame, preprocesses it for recognition quality, and
// runs Tesseract on the result.
func (e *TesseractEngine) Recognize(frame *screenshot.Frame) (string, error) {
	if frame == nil || len(frame.PNG) == 0 {
		return "", fmt.Errorf("empty frame")
	}

	img, err := png.Decode(bytes.NewReader(frame.PNG))
	if err != nil {
		return "", fmt.Errorf("failed to decode frame: %v", err)
	}

	processed, err := preprocess(img)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return "", fmt.Errorf("failed to encode preprocessed image: %v", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("failed to set language %q: %v", e.language, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %v", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %v", err)
	}
	return text, nil
}

// preprocess converts the capture to grayscale, nudges the contrast, and
// upscales narrow captures so small UI text stays legible to Tesseract.
func preprocess(img image.Image) (image.Image, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("invalid image size: %dx%d", bounds.Dx(), bounds.Dy())
	}

	processed := imaging.Grayscale(img)
	processed = imaging.AdjustContrast(processed, 10)

	if w := processed.Bounds().Dx(); w < minOCRWidth {
		scale := float64(minOCRWidth) / float64(w)
		if scale > maxUpscale {
			scale = maxUpscale
		}
		newW := int(float64(w) * scale)
		newH := int(float64(processed.Bounds().Dy()) * scale)
		processed = imaging.Resize(processed, newW, newH, imaging.Lanczos)
	}

	log.Printf("Preprocessed frame to %dx%d", processed.Bounds().Dx(), processed.Bounds().Dy())
	return processed, nil
}

// Info describes the availability of the local Tesseract backend.
type Info struct {
	Available bool
	Version   string
	Error     string
}

// TesseractInfo probes the installed Tesseract library.
func TesseractInfo() Info {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	if version == "" {
		return Info{Available: false, Error: "tesseract library not available"}
	}
	return Info{Available: true, Version: version}
}
