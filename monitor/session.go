package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"screen-text-watcher/screenshot"
)

var (
	// ErrAlreadyRunning is returned by Start while a session is active.
	ErrAlreadyRunning = errors.New("monitoring already running")
	// ErrInvalidRegion is returned by Start for a region with non-positive dimensions.
	ErrInvalidRegion = errors.New("invalid region dimensions")
)

const (
	// DefaultInterval is the tick spacing used when Options.Interval is unset.
	DefaultInterval = 1 * time.Second
	// DefaultFailureThreshold is the consecutive-failure auto-stop bound.
	DefaultFailureThreshold = 3
)

// CaptureFunc produces a frame for the armed region. Replaceable in tests.
type CaptureFunc func(region screenshot.Region) (*screenshot.Frame, error)

// RecognizeFunc extracts raw text from a captured frame. Replaceable in tests.
type RecognizeFunc func(frame *screenshot.Frame) (string, error)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "Running"
	}
	return "Idle"
}

// Options configures a Session.
type Options struct {
	// Interval is the tick spacing. Defaults to DefaultInterval.
	Interval time.Duration
	// FailureThreshold is the number of consecutive capture/recognition
	// failures that aborts the session. Defaults to DefaultFailureThreshold.
	FailureThreshold int
	// Capture grabs the armed region. Defaults to screenshot.CaptureRegion.
	Capture CaptureFunc
	// Recognize extracts text from a frame. Required.
	Recognize RecognizeFunc
	// Sink receives change and error events. Required.
	Sink Sink
}

// Status is a point-in-time snapshot of a session's externally visible state.
type Status struct {
	State    State
	Region   screenshot.Region
	LastText string
	Failures int
}

// Session drives the capture -> recognize -> diff -> publish loop for a
// single screen region. At most one monitoring goroutine runs at a time
// (ticks never overlap), and Stop blocks until that goroutine has exited,
// so no events are delivered after Stop returns.
type Session struct {
	interval  time.Duration
	threshold int
	capture   CaptureFunc
	recognize RecognizeFunc
	sink      Sink

	mu       sync.Mutex
	state    State
	region   screenshot.Region
	lastText string
	failures int
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates an idle session. Reused across start/stop cycles.
func New(opts Options) (*Session, error) {
	if opts.Recognize == nil {
		return nil, errors.New("Recognize is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("Sink is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	threshold := opts.FailureThreshold
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	capture := opts.Capture
	if capture == nil {
		capture = screenshot.CaptureRegion
	}
	return &Session{
		interval:  interval,
		threshold: threshold,
		capture:   capture,
		recognize: opts.Recognize,
		sink:      opts.Sink,
	}, nil
}

// Start arms the region and begins the monitoring loop. Returns
// ErrInvalidRegion or ErrAlreadyRunning without side effects on misuse.
func (s *Session) Start(region screenshot.Region) error {
	if region.Width <= 0 || region.Height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidRegion, region.Width, region.Height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.state = StateRunning
	s.region = region
	s.lastText = ""
	s.failures = 0
	s.cancel = cancel
	s.done = done

	log.Printf("Monitoring started: region=%s interval=%s threshold=%d", region, s.interval, s.threshold)
	go s.run(ctx, region, done)
	return nil
}

// Stop signals the loop to exit and blocks until the in-flight tick (if any)
// has finished and the loop goroutine is gone. After Stop returns the sink
// receives no further events for this session. Stop while idle is a no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done
	log.Printf("Monitoring stopped")
	return nil
}

// Running reports whether the session is currently monitoring.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateRunning
}

// Status returns a snapshot of the session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, Region: s.region, LastText: s.lastText, Failures: s.failures}
}

// run is the monitoring loop. It is the only goroutine that executes ticks
// and publishes events, which makes the single-flight and stop-ordering
// guarantees structural rather than lock-based.
func (s *Session) run(ctx context.Context, region screenshot.Region, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		if s.done == done {
			s.state = StateIdle
			s.cancel()
			s.cancel = nil
			s.done = nil
		}
		s.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		if fatal := s.tick(region); fatal {
			log.Printf("Monitoring aborted after %d consecutive failures", s.threshold)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick performs one capture -> recognize -> diff -> publish pass.
// Returns true when the failure threshold was crossed and the loop must exit.
func (s *Session) tick(region screenshot.Region) (fatal bool) {
	frame, err := s.capture(region)
	if err != nil {
		log.Printf("Capture error: %v", err)
		return s.fail(KindCaptureFailure, err)
	}

	raw, err := s.recognize(frame)
	if err != nil {
		log.Printf("Recognition error: %v", err)
		return s.fail(KindRecognitionFailure, err)
	}

	current := Normalize(raw)

	s.mu.Lock()
	s.failures = 0
	prev := s.lastText
	s.lastText = current
	s.mu.Unlock()

	if event, ok := Classify(prev, current); ok {
		log.Printf("Text transition: %s", event.Type())
		s.sink.Publish(event)
	}
	return false
}

// fail records a capture or recognition failure. The failure that reaches
// the threshold is reported as a single terminal event instead of its
// per-kind variant.
func (s *Session) fail(kind ErrorKind, err error) (fatal bool) {
	s.mu.Lock()
	s.failures++
	count := s.failures
	s.mu.Unlock()

	if count >= s.threshold {
		s.sink.Publish(MonitorError{
			Kind:    KindFatalThreshold,
			Message: fmt.Sprintf("stopping after %d consecutive failures, last: %v", count, err),
		})
		return true
	}
	s.sink.Publish(MonitorError{Kind: kind, Message: err.Error()})
	return false
}
