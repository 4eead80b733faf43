package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"screen-text-watcher/clipboard"
	"screen-text-watcher/config"
	"screen-text-watcher/gui"
	"screen-text-watcher/hotkey"
	"screen-text-watcher/llm"
	"screen-text-watcher/logutil"
	"screen-text-watcher/monitor"
	"screen-text-watcher/ocr"
	"screen-text-watcher/screenshot"
)

func main() {
	regionFlag := flag.String("region", "", "Region to monitor as \"x,y,width,height\" (overrides MONITOR_REGION)")
	flag.Parse()

	// Ensure single instance
	ensureSingleInstance()
	defer os.Remove(pidFile)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logutil.Setup(cfg.EnableFileLogging)

	region := cfg.Region
	if *regionFlag != "" {
		region, err = screenshot.ParseRegion(*regionFlag)
		if err != nil {
			log.Fatalf("Invalid -region: %v", err)
		}
	}

	if cfg.OCRBackend == ocr.BackendVision {
		if cfg.APIKey == "" {
			log.Fatalf("OPENROUTER_API_KEY is required for the vision backend. Please set it in your .env file.")
		}
		if cfg.Model == "" {
			log.Fatalf("MODEL is required for the vision backend. Please set it in your .env file.")
		}
		llm.Init(&llm.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Providers: cfg.Providers,
		})
		log.Printf("Using vision model: %s (key %s)", cfg.Model, logutil.RedactKey(cfg.APIKey))
	}

	engine, err := ocr.New(ocr.Config{Backend: cfg.OCRBackend, Language: cfg.OCRLanguage})
	if err != nil {
		log.Fatalf("Failed to create OCR engine: %v", err)
	}

	sinks := []monitor.Sink{monitor.SinkFunc(logEvent)}
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable, changes will not be copied: %v", err)
	} else {
		sinks = append(sinks, clipboard.Sink{})
	}

	session, err := monitor.New(monitor.Options{
		Interval:         cfg.Interval,
		FailureThreshold: cfg.FailureThreshold,
		Recognize:        engine.Recognize,
		Sink:             fanout(sinks),
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	log.Printf("Screen Text Watcher initialized")
	log.Printf("OCR backend: %s", engine.Name())
	log.Printf("Hotkey: %s", cfg.Hotkey)

	// Selection collaborator: a platform selector (where available) feeds
	// the session directly.
	gui.SetRegionSelectionCallback(func(selected screenshot.Region) error {
		return session.Start(selected)
	})

	toggle := func() {
		if session.Running() {
			if err := session.Stop(); err != nil {
				log.Printf("Stop failed: %v", err)
			}
			return
		}
		if region.Width > 0 && region.Height > 0 {
			if err := session.Start(region); err != nil {
				log.Printf("Start failed: %v", err)
			}
			return
		}
		if err := gui.StartRegionSelection(); err != nil {
			log.Printf("No region configured and selection unavailable: %v", err)
		}
	}

	hotkey.Listen(cfg.Hotkey, toggle)

	// Begin monitoring immediately when a region is preconfigured.
	if region.Width > 0 && region.Height > 0 {
		if err := session.Start(region); err != nil {
			log.Fatalf("Failed to start monitoring: %v", err)
		}
	} else {
		log.Printf("No region configured; press %s to select and start", cfg.Hotkey)
	}

	// Shut the tray down on SIGINT/SIGTERM; systray owns the main goroutine.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down...", sig)
		gui.Quit()
	}()

	gui.StartSystray(gui.Callbacks{
		OnToggle: toggle,
		Status:   func() string { return statusLine(session) },
		OnQuit: func() {
			_ = session.Stop()
			log.Printf("Shutdown complete")
		},
	})
}

func statusLine(session *monitor.Session) string {
	status := session.Status()
	if status.State != monitor.StateRunning {
		return "Screen Text Watcher: idle"
	}
	return fmt.Sprintf("Watching %s (last: %.40q)", status.Region, status.LastText)
}

// fanout delivers each event to every sink in order.
func fanout(sinks []monitor.Sink) monitor.Sink {
	return monitor.SinkFunc(func(event monitor.Event) {
		for _, s := range sinks {
			s.Publish(event)
		}
	})
}

func logEvent(event monitor.Event) {
	switch e := event.(type) {
	case monitor.NewText:
		log.Printf("[%s] %q", e.Type(), e.Text)
	case monitor.TextChanged:
		log.Printf("[%s] %q -> %q (added %v, removed %v)", e.Type(), e.Old, e.New, e.Added, e.Removed)
	case monitor.TextCleared:
		log.Printf("[%s] was %q", e.Type(), e.Text)
	case monitor.MonitorError:
		log.Printf("[%s] %s: %s", e.Type(), e.Kind, e.Message)
	default:
		log.Printf("[%s]", event.Type())
	}
}

const pidFile = "screen-text-watcher.pid"

func ensureSingleInstance() {
	// Check if PID file exists
	if _, err := os.Stat(pidFile); err == nil {
		// Read existing PID
		pidBytes, err := os.ReadFile(pidFile)
		if err == nil {
			if oldPid, err := strconv.Atoi(string(pidBytes)); err == nil {
				// Try to kill the old process
				if process, err := os.FindProcess(oldPid); err == nil {
					log.Printf("Found existing instance with PID %d, killing it...", oldPid)
					process.Kill()
					process.Wait()
					log.Printf("Old instance killed")
				}
			}
		}
	}

	// Write our PID
	pid := os.Getpid()
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0644); err != nil {
		log.Printf("Warning: failed to write PID file: %v", err)
	}
}
