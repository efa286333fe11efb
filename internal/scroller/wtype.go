package scroller

// wtypeScroller falls back to a Page_Down keypress on wlroots compositors
// without ydotool. Keyboard paging scrolls further per call than wheel
// events but still leaves overlap for the matcher.
type wtypeScroller struct{}

func (s *wtypeScroller) Name() string {
	return "wtype"
}

func (s *wtypeScroller) ScrollDown() error {
	return runTool("wtype", "-k", "Page_Down")
}
