package tui

import (
	"strings"

	"github.com/csheth/darsgah/internal/nav"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	class          nav.ViewportClass
	sidebarWidth   int
	mainWidth      int
	bodyHeight     int
	viewportWidth  int
	viewportHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		windowWidth:    120,
		windowHeight:   32,
		class:          nav.Wide,
		sidebarWidth:   maxSidebarWidth,
		mainWidth:      86,
		bodyHeight:     20,
		viewportWidth:  82,
		viewportHeight: 18,
	}
}

// Update recomputes pane sizes for a terminal of width x height. Widths
// below narrowWidth put the layout in the narrow class, where the sidebar
// and the main pane take turns using the full width.
func (l *pageLayout) Update(width, height, narrowWidth int) {
	if narrowWidth <= 0 {
		narrowWidth = defaultNarrowWidth
	}
	l.windowWidth = width
	l.windowHeight = height
	l.class = nav.ClassForWidth(width, narrowWidth)

	if l.class == nav.Narrow {
		l.sidebarWidth = width
		l.mainWidth = width
	} else {
		l.sidebarWidth = width / 4
		if l.sidebarWidth > maxSidebarWidth {
			l.sidebarWidth = maxSidebarWidth
		}
		if l.sidebarWidth < minSidebarWidth {
			l.sidebarWidth = minSidebarWidth
		}
		l.mainWidth = width - l.sidebarWidth
	}

	innerWidth := l.mainWidth - paneHorizontalPad
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth

	const chrome = 8
	body := height - chrome
	if body < minViewportHeight+2 {
		body = minViewportHeight + 2
	}
	l.bodyHeight = body
	l.viewportHeight = body - 2
}

// mainWidthFor is the width the main pane gets when it does or does not
// share the row with the sidebar.
func (l pageLayout) mainWidthFor(shared bool) int {
	if shared {
		return l.mainWidth
	}
	return l.windowWidth
}

func (l pageLayout) viewportWidthFor(shared bool) int {
	width := l.mainWidthFor(shared) - paneHorizontalPad
	if width < minViewportWidth {
		width = minViewportWidth
	}
	return width
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func clamp(value, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
