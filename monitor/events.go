package monitor

// Event is the base interface for all notifications published to a Sink.
type Event interface {
	Type() string
}

// Event type constants for type identification
const (
	TypeNewText      = "NewText"
	TypeTextChanged  = "TextChanged"
	TypeTextCleared  = "TextCleared"
	TypeMonitorError = "MonitorError"
)

// NewText - text appeared in a previously empty region
type NewText struct {
	Text string
}

func (e NewText) Type() string { return TypeNewText }

// TextChanged - the region's text changed from Old to New. Added and Removed
// carry the word-level delta between the two texts.
type TextChanged struct {
	Old     string
	New     string
	Added   []string
	Removed []string
}

func (e TextChanged) Type() string { return TypeTextChanged }

// TextCleared - the region no longer contains any text; Text is what was there
type TextCleared struct {
	Text string
}

func (e TextCleared) Type() string { return TypeTextCleared }

// ErrorKind classifies a MonitorError.
type ErrorKind string

const (
	// KindCaptureFailure - the screen grab itself failed
	KindCaptureFailure ErrorKind = "CaptureFailure"
	// KindRecognitionFailure - the OCR backend failed on a captured frame
	KindRecognitionFailure ErrorKind = "RecognitionFailure"
	// KindFatalThreshold - too many consecutive failures; the session auto-stopped
	KindFatalThreshold ErrorKind = "FatalThresholdExceeded"
)

// MonitorError - a failure surfaced to the observer. KindFatalThreshold is
// terminal: the session transitions to Idle immediately after publishing it.
type MonitorError struct {
	Kind    ErrorKind
	Message string
}

func (e MonitorError) Type() string { return TypeMonitorError }

// Sink receives events from a running session. Publish is called from the
// monitoring goroutine; implementations that block will stall the tick.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }
