// Package nav holds the viewer's selection cursor and the pure mapping from
// content plus cursor to the view that should be on screen.
package nav

// State is the single mutable selection cursor. Fields are only changed
// through its methods so a section can never be selected without a chapter.
type State struct {
	chapterID      string
	sectionID      string
	sidebarVisible bool
}

// New returns the start-up cursor: nothing selected, sidebar visible.
func New() *State {
	return &State{sidebarVisible: true}
}

func (s *State) ChapterID() (string, bool) {
	return s.chapterID, s.chapterID != ""
}

func (s *State) SectionID() (string, bool) {
	return s.sectionID, s.sectionID != ""
}

func (s *State) SidebarVisible() bool {
	return s.sidebarVisible
}

// SelectChapter enters a chapter on its section list, dropping any section
// that was open before.
func (s *State) SelectChapter(id string) {
	s.chapterID = id
	s.sectionID = ""
}

// SelectSection opens a section of the current chapter. Calling it with no
// chapter selected is a caller bug and panics.
func (s *State) SelectSection(id string) {
	if s.chapterID == "" {
		panic("nav: SelectSection called with no chapter selected")
	}
	s.sectionID = id
}

// BackToSections closes the open section and keeps the chapter.
func (s *State) BackToSections() {
	s.sectionID = ""
}

// Home clears both selections and returns to the chapter list.
func (s *State) Home() {
	s.chapterID = ""
	s.sectionID = ""
}

func (s *State) ToggleSidebar() {
	s.sidebarVisible = !s.sidebarVisible
}

func (s *State) SetSidebarVisible(visible bool) {
	s.sidebarVisible = visible
}
