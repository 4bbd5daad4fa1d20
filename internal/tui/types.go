package tui

type focusArea int

const (
	focusMain focusArea = iota
	focusSidebar
)

func (f focusArea) String() string {
	if f == focusSidebar {
		return "sidebar"
	}
	return "main"
}

type language int

const (
	languageUrdu language = iota
	languageEnglish
)

func parseLanguage(value string) language {
	if value == "en" {
		return languageEnglish
	}
	return languageUrdu
}

const heroTagline = "Study Tajweed and Fiqh, one section at a time."

const (
	minViewportWidth   = 40
	minViewportHeight  = 6
	defaultNarrowWidth = 100
	maxSidebarWidth    = 34
	minSidebarWidth    = 22
	paneHorizontalPad  = 4
)
