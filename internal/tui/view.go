package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/csheth/darsgah/internal/guide"
	"github.com/csheth/darsgah/internal/nav"
)

func (m *model) View() string {
	view := m.resolve()
	parts := []string{m.heroView(view), m.bodyView(view), m.statusView(view)}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView(), m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView(view nav.View) string {
	meta := m.store().Meta()
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = m.books[m.bookIdx].Key
	}
	primary, secondary := displayPair(title, meta.Subtitle, m.language)
	lines := []string{heroTitleStyle.Render(primary)}
	if secondary != "" {
		lines = append(lines, heroTitleStyle.Render(secondary))
	}
	header := lipgloss.JoinVertical(
		lipgloss.Left,
		heroBoxStyle.Render(strings.Join(lines, "\n")),
		breadcrumbStyle.Render(m.breadcrumb(view)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, taglineStyle.Render(heroTagline))
}

func (m *model) breadcrumb(view nav.View) string {
	crumbs := []string{"Chapters"}
	if view.Mode != nav.ModeChapterList {
		primary, _ := displayPair(view.Chapter.Title, view.Chapter.Subtitle, m.language)
		crumbs = append(crumbs, primary)
	}
	if view.Mode == nav.ModeSectionDetail {
		primary, _ := displayPair(view.Section.Title, view.Section.Subtitle, m.language)
		crumbs = append(crumbs, primary)
	}
	return strings.Join(crumbs, " › ")
}

func (m *model) bodyView(view nav.View) string {
	var panes []string
	if view.ShowSidebar {
		width := m.layout.sidebarWidth
		if !view.ShowMain {
			width = m.layout.windowWidth
		}
		panes = append(panes, m.sidebarView(view, width))
	}
	if view.ShowMain {
		panes = append(panes, mainPaneStyle.Render(m.mainView(view)))
	}
	if len(panes) == 1 {
		return panes[0]
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (m *model) sidebarView(view nav.View, width int) string {
	inner := width - 3
	if inner < 8 {
		inner = 8
	}
	activeID, _ := m.nav.ChapterID()
	rows := []string{sectionHeaderStyle.Render("Chapters")}
	if len(view.Chapters) == 0 {
		rows = append(rows, helperStyle.Render("No chapters."))
	}
	start, end := listWindow(m.sidebarCursor, len(view.Chapters), m.layout.bodyHeight-1)
	for i := start; i < end; i++ {
		chapter := view.Chapters[i]
		primary, _ := displayPair(chapter.Title, chapter.Subtitle, m.language)
		label := runewidth.Truncate(iconGlyph(chapter.Icon)+" "+primary, inner, "…")
		switch {
		case m.focus == focusSidebar && i == m.sidebarCursor:
			label = cursorRowStyle.Render(label)
		case chapter.ID == activeID && view.Mode != nav.ModeChapterList:
			label = activeRowStyle.Render(label)
		}
		rows = append(rows, label)
	}
	return sidebarStyle.Width(width - 1).Render(strings.Join(rows, "\n"))
}

func (m *model) mainView(view nav.View) string {
	switch view.Mode {
	case nav.ModeSectionList:
		return m.sectionListView(view)
	case nav.ModeSectionDetail:
		m.refreshDetail(view)
		return m.viewport.View()
	default:
		return m.chapterListView(view)
	}
}

func (m *model) chapterListView(view nav.View) string {
	cb := &contentBuilder{}
	cb.WriteString(sectionHeaderStyle.Render("Chapters"))
	cb.WriteRune('\n')
	if len(view.Chapters) == 0 {
		cb.WriteString(helperStyle.Render("This book has no chapters yet."))
		return cb.String()
	}
	width := m.layout.viewportWidthFor(view.ShowSidebar && view.ShowMain)
	start, end := listWindow(m.listCursor, len(view.Chapters), m.layout.bodyHeight-1)
	for i := start; i < end; i++ {
		chapter := view.Chapters[i]
		primary, secondary := displayPair(chapter.Title, chapter.Subtitle, m.language)
		row := iconGlyph(chapter.Icon) + " " + primary
		if secondary != "" {
			row += " · " + secondary
		}
		row = runewidth.Truncate(row, width-14, "…")
		badge := countBadgeStyle.Render(fmt.Sprintf("(%s)", countLabel(len(chapter.Sections), "section")))
		m.writeRow(cb, i == m.listCursor, row+" "+badge)
	}
	return strings.TrimRight(cb.String(), "\n")
}

func (m *model) sectionListView(view nav.View) string {
	chapter := view.Chapter
	primary, secondary := displayPair(chapter.Title, chapter.Subtitle, m.language)
	cb := &contentBuilder{}
	cb.WriteString(titleStyle.Render(iconGlyph(chapter.Icon) + " " + primary))
	cb.WriteRune('\n')
	if secondary != "" {
		cb.WriteString(subtitleStyle.Render(secondary))
		cb.WriteRune('\n')
	}
	cb.WriteRune('\n')
	if len(chapter.Sections) == 0 {
		cb.WriteString(helperStyle.Render("No sections in this chapter yet."))
		return cb.String()
	}
	width := m.layout.viewportWidthFor(view.ShowSidebar && view.ShowMain)
	start, end := listWindow(m.listCursor, len(chapter.Sections), m.layout.bodyHeight-cb.Line())
	for i := start; i < end; i++ {
		section := chapter.Sections[i]
		title, gloss := displayPair(section.Title, section.Subtitle, m.language)
		row := fmt.Sprintf("%d. %s", i+1, title)
		if gloss != "" {
			row += " · " + gloss
		}
		row = runewidth.Truncate(row, width-10, "…")
		var marks []string
		if section.HasNotes() {
			marks = append(marks, "✎")
		}
		if section.IsStub() {
			marks = append(marks, "draft")
		}
		if len(marks) > 0 {
			row += " " + countBadgeStyle.Render(strings.Join(marks, " "))
		}
		m.writeRow(cb, i == m.listCursor, row)
	}
	return strings.TrimRight(cb.String(), "\n")
}

func (m *model) writeRow(cb *contentBuilder, cursor bool, row string) {
	if cursor && m.focus == focusMain {
		cb.WriteString(cursorRowStyle.Render("› " + row))
	} else {
		cb.WriteString("  " + row)
	}
	cb.WriteRune('\n')
}

func (m *model) statusView(view nav.View) string {
	book := m.books[m.bookIdx]
	stats := []string{
		fmt.Sprintf("Book %s (%d/%d)", book.Key, m.bookIdx+1, len(m.books)),
		countLabel(len(view.Chapters), "chapter"),
		fmt.Sprintf("View %s", view.Mode),
		fmt.Sprintf("Focus %s", m.focus),
	}
	if m.language == languageEnglish {
		stats = append(stats, "en")
	} else {
		stats = append(stats, "ur")
	}
	if jobs := m.runningJobsLabel(); jobs != "" {
		stats = append(stats, m.spinner.View()+" "+jobs)
	}
	stats = append(stats, "? help")
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) runningJobsLabel() string {
	if len(m.running) == 0 {
		return ""
	}
	kinds := make([]string, 0, len(m.running))
	for _, snapshot := range m.running {
		kinds = append(kinds, string(snapshot.Kind))
	}
	sort.Strings(kinds)
	return strings.Join(kinds, ", ")
}

func (m *model) keyLegendView() string {
	bindings := m.keys.legend()
	rows := []string{sectionHeaderStyle.Render("Navigation Cheatsheet")}
	const columns = 3
	for i := 0; i < len(bindings); i += columns {
		end := i + columns
		if end > len(bindings) {
			end = len(bindings)
		}
		var cells []string
		for _, binding := range bindings[i:end] {
			help := binding.Help()
			k := keyStyle.Render(help.Key)
			desc := keyDescStyle.Render(" " + runewidth.FillRight(help.Desc, 20))
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, k, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

// helpView shows the study path for the open book.
func (m *model) helpView() string {
	meta := m.store().Meta()
	title, _ := displayPair(meta.Title, meta.Subtitle, m.language)
	steps := guide.Build(guide.Metadata{Title: title, Chapters: m.store().Chapters()})
	lines := []string{sectionHeaderStyle.Render("Study Path")}
	for _, step := range steps {
		lines = append(lines, keyDescStyle.Render(step.Title))
		lines = append(lines, helperStyle.Render("  "+step.Description))
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}

// listWindow returns the slice of rows to draw so that cursor stays visible
// within height rows.
func listWindow(cursor, total, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	start = clamp(start, 0, total-height)
	return start, start + height
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
