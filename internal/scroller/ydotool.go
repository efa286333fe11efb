package scroller

// ydotoolScroller injects wheel events on Wayland via the ydotool daemon.
// Negative wheel values scroll down.
type ydotoolScroller struct{}

func (s *ydotoolScroller) Name() string {
	return "ydotool"
}

func (s *ydotoolScroller) ScrollDown() error {
	for i := 0; i < wheelClicks; i++ {
		if err := runTool("ydotool", "mousemove", "--wheel", "--", "-3"); err != nil {
			return err
		}
	}
	return nil
}
