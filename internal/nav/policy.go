package nav

// ViewportClass is the coarse width bucket the presentation runs in.
type ViewportClass int

const (
	Wide ViewportClass = iota
	Narrow
)

func (c ViewportClass) String() string {
	if c == Narrow {
		return "narrow"
	}
	return "wide"
}

// ClassForWidth buckets a terminal width. Widths below breakpoint are narrow;
// there is no intermediate class.
func ClassForWidth(width, breakpoint int) ViewportClass {
	if width < breakpoint {
		return Narrow
	}
	return Wide
}

// SidebarPolicy layers the viewport-dependent sidebar rule over State. On a
// narrow screen, entering a chapter hides the sidebar so it does not cover
// the content that was just opened.
type SidebarPolicy struct {
	Class ViewportClass
}

func (p SidebarPolicy) SelectChapter(s *State, id string) {
	s.SelectChapter(id)
	if p.Class == Narrow {
		s.SetSidebarVisible(false)
	}
}
