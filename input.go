package main

// click is the pointer and key input of one update, read after the overlay
// handled its buttons.
type click struct {
	// buttonHandled is set when an overlay button consumed this update's
	// click.
	buttonHandled bool
	keyPressed    bool
	touchReleased bool
	mouseReleased bool
	overControls  bool
}

// reachesMainArea reports whether the input counts as a click on the frame
// area. Clicks on the controls stay with the controls.
func (c click) reachesMainArea() bool {
	if c.buttonHandled {
		return false
	}
	if c.keyPressed || c.touchReleased {
		return true
	}
	return c.mouseReleased && !c.overControls
}
