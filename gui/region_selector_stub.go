package gui

import (
	"fmt"

	"screen-text-watcher/screenshot"
)

// StartInteractiveRegionSelection is a placeholder for the drag-rectangle
// overlay. Regions are supplied via MONITOR_REGION or the -region flag.
func StartInteractiveRegionSelection() (screenshot.Region, error) {
	return screenshot.Region{}, fmt.Errorf("interactive region selection not implemented; set MONITOR_REGION or pass -region")
}
