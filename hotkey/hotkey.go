package hotkey

import (
	"log"
	"strings"

	gohook "github.com/robotn/gohook"
)

// Listen registers a global hotkey like "Ctrl+Alt+M" and invokes callback
// every time the combination is pressed. Runs its own goroutine.
func Listen(hotkeyConfig string, callback func()) {
	combo := parseHotkey(hotkeyConfig)
	log.Printf("Parsed hotkey configuration: %+v", combo)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}

		var ctrlPressed, altPressed, shiftPressed, keyPressed bool

		for ev := range evChan {
			if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyUp {
				continue
			}

			down := ev.Kind == gohook.KeyDown
			switch ev.Rawcode {
			case 162, 163: // Left/Right Ctrl
				ctrlPressed = down
			case 164, 165: // Left/Right Alt
				altPressed = down
			case 160, 161: // Left/Right Shift
				shiftPressed = down
			case combo.keyCode:
				keyPressed = down
			}

			if down &&
				ctrlPressed == combo.ctrl &&
				altPressed == combo.alt &&
				shiftPressed == combo.shift &&
				keyPressed {
				log.Printf("Hotkey combination detected: %s", hotkeyConfig)
				callback()
				keyPressed = false
			}
		}
		log.Printf("Event channel closed")
	}()
}

type combo struct {
	ctrl    bool
	alt     bool
	shift   bool
	keyCode uint16
}

// parseHotkey converts a hotkey string like "Ctrl+Alt+m" into modifier flags
// and the virtual-key code of the final key.
func parseHotkey(hotkeyConfig string) combo {
	var c combo
	for _, part := range strings.Split(strings.ToLower(hotkeyConfig), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl":
			c.ctrl = true
		case "alt":
			c.alt = true
		case "shift":
			c.shift = true
		case "":
		default:
			if len(part) == 1 && part[0] >= 'a' && part[0] <= 'z' {
				// Letter keys report their uppercase ASCII value
				c.keyCode = uint16(part[0] - 'a' + 'A')
			}
		}
	}
	return c
}
