package scroller

// xdotoolScroller injects wheel events on X11. Button 5 is scroll-down.
type xdotoolScroller struct{}

func (s *xdotoolScroller) Name() string {
	return "xdotool"
}

func (s *xdotoolScroller) ScrollDown() error {
	for i := 0; i < wheelClicks; i++ {
		if err := runTool("xdotool", "click", "5"); err != nil {
			return err
		}
	}
	return nil
}
