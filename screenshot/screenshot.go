package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/kbinani/screenshot"
)

// Region represents a screen rectangle to capture, in pixel coordinates.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Validate rejects regions with non-positive dimensions.
func (r Region) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid region dimensions: width=%d, height=%d", r.Width, r.Height)
	}
	return nil
}

// Bounds returns the region as an image.Rectangle.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r Region) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", r.Width, r.Height, r.X, r.Y)
}

// ParseRegion parses a region string of the form "x,y,width,height".
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("region must be \"x,y,width,height\", got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("region component %q is not a number", p)
		}
		vals[i] = v
	}
	region := Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if err := region.Validate(); err != nil {
		return Region{}, err
	}
	return region, nil
}

// Frame holds one PNG-encoded capture of a region. Frames are ephemeral:
// produced by CaptureRegion, handed to a recognizer within the same tick,
// and dropped.
type Frame struct {
	PNG    []byte
	Width  int
	Height int
}

// CaptureRegion captures a specific region of the screen as a PNG frame.
// A region that falls outside every active display is an error, never a
// silently truncated capture. Each call is an independent snapshot.
func CaptureRegion(region Region) (*Frame, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}

	virtual, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	if !region.Bounds().In(virtual) {
		return nil, fmt.Errorf("region %s outside display bounds %v", region, virtual)
	}

	img, err := screenshot.CaptureRect(region.Bounds())
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %v", err)
	}

	return &Frame{PNG: buf.Bytes(), Width: region.Width, Height: region.Height}, nil
}

// DisplayBounds returns the bounds of the primary display.
func DisplayBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	return screenshot.GetDisplayBounds(0), nil
}

// VirtualBounds returns the union of all active display bounds.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	bounds := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		bounds = bounds.Union(screenshot.GetDisplayBounds(i))
	}
	return bounds, nil
}
