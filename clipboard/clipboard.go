package clipboard

import (
	"golang.design/x/clipboard"

	"screen-text-watcher/monitor"
)

func Init() error {
	return clipboard.Init()
}

func Write(text string) error {
	// Write to clipboard - this returns a channel, not an error
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// Sink mirrors the latest observed text to the system clipboard: the full
// text on appearance and change, nothing on clear or errors.
type Sink struct{}

func (Sink) Publish(event monitor.Event) {
	switch e := event.(type) {
	case monitor.NewText:
		_ = Write(e.Text)
	case monitor.TextChanged:
		_ = Write(e.New)
	}
}
