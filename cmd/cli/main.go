package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"screen-text-watcher/config"
	"screen-text-watcher/llm"
	"screen-text-watcher/monitor"
	"screen-text-watcher/ocr"
	"screen-text-watcher/screenshot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	regionSpec := flag.String("region", "", "Region to watch as \"x,y,width,height\"")
	once := flag.Bool("once", false, "Capture and recognize once, print the text, and exit")
	verbose := flag.Bool("v", false, "Verbose output to stderr")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	region := cfg.Region
	if *regionSpec != "" {
		region, err = screenshot.ParseRegion(*regionSpec)
		if err != nil {
			return err
		}
	}
	if region.Width <= 0 || region.Height <= 0 {
		return fmt.Errorf("no region specified; pass -region \"x,y,width,height\" or set MONITOR_REGION")
	}

	if cfg.OCRBackend == ocr.BackendVision {
		if cfg.APIKey == "" || cfg.Model == "" {
			return fmt.Errorf("OPENROUTER_API_KEY and MODEL are required for the vision backend")
		}
		llm.Init(&llm.Config{APIKey: cfg.APIKey, Model: cfg.Model, Providers: cfg.Providers})
	}

	engine, err := ocr.New(ocr.Config{Backend: cfg.OCRBackend, Language: cfg.OCRLanguage})
	if err != nil {
		return err
	}

	if *once {
		return recognizeOnce(engine, region)
	}
	return watch(engine, cfg, region)
}

func recognizeOnce(engine ocr.Engine, region screenshot.Region) error {
	frame, err := screenshot.CaptureRegion(region)
	if err != nil {
		return err
	}
	raw, err := engine.Recognize(frame)
	if err != nil {
		return err
	}
	fmt.Println(monitor.Normalize(raw))
	return nil
}

// watch streams change events as JSON lines until interrupted.
func watch(engine ocr.Engine, cfg *config.Config, region screenshot.Region) error {
	encoder := json.NewEncoder(os.Stdout)
	session, err := monitor.New(monitor.Options{
		Interval:         cfg.Interval,
		FailureThreshold: cfg.FailureThreshold,
		Recognize:        engine.Recognize,
		Sink: monitor.SinkFunc(func(event monitor.Event) {
			_ = encoder.Encode(toJSON(event))
		}),
	})
	if err != nil {
		return err
	}

	if err := session.Start(region); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Block until interrupted or the session aborts on its failure threshold.
	poll := time.NewTicker(200 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-sigChan:
			return session.Stop()
		case <-poll.C:
			if !session.Running() {
				return session.Stop()
			}
		}
	}
}

type jsonEvent struct {
	Type    string   `json:"type"`
	Text    string   `json:"text,omitempty"`
	Old     string   `json:"old,omitempty"`
	New     string   `json:"new,omitempty"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Kind    string   `json:"kind,omitempty"`
	Message string   `json:"message,omitempty"`
}

func toJSON(event monitor.Event) jsonEvent {
	switch e := event.(type) {
	case monitor.NewText:
		return jsonEvent{Type: "new", Text: e.Text}
	case monitor.TextChanged:
		return jsonEvent{Type: "changed", Old: e.Old, New: e.New, Added: e.Added, Removed: e.Removed}
	case monitor.TextCleared:
		return jsonEvent{Type: "cleared", Text: e.Text}
	case monitor.MonitorError:
		return jsonEvent{Type: "error", Kind: string(e.Kind), Message: e.Message}
	default:
		return jsonEvent{Type: event.Type()}
	}
}
