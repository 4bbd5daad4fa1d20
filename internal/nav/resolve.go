package nav

import "github.com/csheth/darsgah/internal/content"

// Catalog is the read side of a content store.
type Catalog interface {
	Chapters() []content.Chapter
	Chapter(id string) (content.Chapter, bool)
	Section(chapterID, sectionID string) (content.Section, bool)
}

// Mode is one of the three mutually exclusive screens.
type Mode int

const (
	ModeChapterList Mode = iota
	ModeSectionList
	ModeSectionDetail
)

func (m Mode) String() string {
	switch m {
	case ModeSectionList:
		return "sections"
	case ModeSectionDetail:
		return "detail"
	default:
		return "chapters"
	}
}

// View is the resolved screen plus the data it needs.
type View struct {
	Mode     Mode
	Chapters []content.Chapter
	Chapter  content.Chapter
	Section  content.Section

	// ShowSidebar and ShowMain say which panes are on screen together.
	ShowSidebar bool
	ShowMain    bool

	// Degraded is set when a selection no longer resolved and the view fell
	// back to a higher level.
	Degraded bool
}

// Resolve maps the cursor onto the catalog. It always yields a usable view:
// a chapter id that no longer exists falls back to the chapter list, and a
// section id that no longer exists falls back to the section list.
func Resolve(catalog Catalog, state *State, class ViewportClass) View {
	view := View{Mode: ModeChapterList, Chapters: catalog.Chapters()}
	view.ShowSidebar, view.ShowMain = panes(state.SidebarVisible(), class)

	chapterID, ok := state.ChapterID()
	if !ok {
		return view
	}
	chapter, ok := catalog.Chapter(chapterID)
	if !ok {
		view.Degraded = true
		return view
	}
	view.Mode = ModeSectionList
	view.Chapter = chapter

	sectionID, ok := state.SectionID()
	if !ok {
		return view
	}
	section, ok := catalog.Section(chapterID, sectionID)
	if !ok {
		view.Degraded = true
		return view
	}
	view.Mode = ModeSectionDetail
	view.Section = section
	return view
}

func panes(sidebarVisible bool, class ViewportClass) (sidebar, main bool) {
	if !sidebarVisible {
		return false, true
	}
	if class == Narrow {
		return true, false
	}
	return true, true
}
