package gui

import (
	"fmt"
	"log"

	"screen-text-watcher/screenshot"

	"github.com/getlantern/systray"
)

// RegionSelectionCallback is called when a region is selected
type RegionSelectionCallback func(region screenshot.Region) error

var regionCallback RegionSelectionCallback

// SetRegionSelectionCallback sets the callback for region selection
func SetRegionSelectionCallback(callback RegionSelectionCallback) {
	regionCallback = callback
}

// StartRegionSelection runs the platform region selector and hands the result
// to the registered callback.
func StartRegionSelection() error {
	if regionCallback == nil {
		return fmt.Errorf("no region selection callback set")
	}

	log.Printf("Starting interactive region selection...")

	region, err := StartInteractiveRegionSelection()
	if err != nil {
		log.Printf("Interactive region selection failed: %v", err)
		return err
	}

	if region.Width == 0 || region.Height == 0 {
		log.Printf("No valid region selected")
		return fmt.Errorf("no valid region selected")
	}

	log.Printf("Region selected: %+v", region)
	return regionCallback(region)
}

// Callbacks wires the tray menu to the monitoring session.
type Callbacks struct {
	OnToggle func()        // start or stop monitoring
	Status   func() string // short status line for the tooltip
	OnQuit   func()
}

// StartSystray runs the system tray icon. Blocks until Quit is selected;
// call from the main goroutine.
func StartSystray(cb Callbacks) {
	systray.Run(func() { onReady(cb) }, func() {
		if cb.OnQuit != nil {
			cb.OnQuit()
		}
	})
}

func onReady(cb Callbacks) {
	systray.SetIcon(getIcon())
	systray.SetTitle("Screen Text Watcher")
	systray.SetTooltip("Screen Text Watcher")

	mToggle := systray.AddMenuItem("Start/Stop monitoring", "Toggle region monitoring")
	mStatus := systray.AddMenuItem("Status", "Show monitoring status")
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go func() {
		for {
			select {
			case <-mToggle.ClickedCh:
				if cb.OnToggle != nil {
					cb.OnToggle()
				}
				if cb.Status != nil {
					systray.SetTooltip(cb.Status())
				}
			case <-mStatus.ClickedCh:
				if cb.Status != nil {
					status := cb.Status()
					log.Printf("Status: %s", status)
					systray.SetTooltip(status)
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
			}
		}
	}()
}

// Quit tears down the tray icon and unblocks StartSystray.
func Quit() {
	systray.Quit()
}

func getIcon() []byte {
	// TODO: ship a proper ICO; systray tolerates nil
	return nil
}
