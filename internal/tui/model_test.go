package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/darsgah/internal/content"
	"github.com/csheth/darsgah/internal/nav"
)

func fixtureDocument() content.Document {
	return content.Document{
		Meta: content.Meta{Title: "Fixture Book", Subtitle: "For tests"},
		Chapters: []content.Chapter{
			{ID: "later", Title: "Later", Subtitle: "Second chapter", Order: 2, Icon: content.IconMoon, Sections: []content.Section{
				{ID: "l1", Title: "Dusk", Content: []string{"Dusk paragraph."}},
			}},
			{ID: "first", Title: "First", Subtitle: "Opening chapter", Order: 1, Icon: content.IconBookOpen, Sections: []content.Section{
				{ID: "a", Title: "Alpha", Content: []string{"Alpha paragraph one.", "Alpha paragraph two."}, Notes: []string{"Remember alpha."}},
				{ID: "b", Title: "Beta", Content: []string{"Beta paragraph."}, Notes: []string{}},
				{ID: "c", Title: "Gamma"},
			}},
		},
	}
}

func newTestModel(t *testing.T, books ...content.Book) *model {
	t.Helper()
	if len(books) == 0 {
		books = []content.Book{{Key: "fixture", Store: content.NewStore(fixtureDocument())}}
	}
	teaModel, ok := New(Config{Books: books, MarkdownStyle: "notty"}).(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", teaModel)
	}
	teaModel.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return teaModel
}

func press(m *model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "pgdown":
			msg = tea.KeyMsg{Type: tea.KeyPgDown}
		case "pgup":
			msg = tea.KeyMsg{Type: tea.KeyPgUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestInitialViewListsChaptersInOrder(t *testing.T) {
	m := newTestModel(t)
	view := m.resolve()
	if view.Mode != nav.ModeChapterList {
		t.Fatalf("expected chapter list, got %v", view.Mode)
	}
	if !view.ShowSidebar || !view.ShowMain {
		t.Fatalf("wide layout should show both panes: %+v", view)
	}
	out := m.View()
	first := strings.Index(out, "First")
	later := strings.Index(out, "Later")
	if first < 0 || later < 0 || first > later {
		t.Fatalf("chapters not rendered in order:\n%s", out)
	}
	if !strings.Contains(out, "Fixture Book") {
		t.Fatalf("book title missing from header:\n%s", out)
	}
}

func TestSelectChapterThenSection(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter")

	view := m.resolve()
	if view.Mode != nav.ModeSectionList || view.Chapter.ID != "first" {
		t.Fatalf("expected section list of first, got %v %q", view.Mode, view.Chapter.ID)
	}
	if m.focus != focusMain {
		t.Fatalf("focus should move to main, got %v", m.focus)
	}
	if !view.ShowSidebar {
		t.Fatal("wide layout keeps the sidebar when a chapter opens")
	}

	press(m, "enter")
	view = m.resolve()
	if view.Mode != nav.ModeSectionDetail || view.Section.ID != "a" {
		t.Fatalf("expected detail of a, got %v %q", view.Mode, view.Section.ID)
	}
	out := m.View()
	for _, want := range []string{"Alpha paragraph one.", "Alpha paragraph two.", "Remember alpha.", "Notes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Alpha paragraph one.") > strings.Index(out, "Alpha paragraph two.") {
		t.Fatal("paragraphs rendered out of order")
	}
}

func TestDetailWithoutNotesHasNoNotesHeading(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "down", "enter")
	view := m.resolve()
	if view.Section.ID != "b" {
		t.Fatalf("expected section b, got %q", view.Section.ID)
	}
	out := m.View()
	if !strings.Contains(out, "Beta paragraph.") {
		t.Fatalf("paragraph missing:\n%s", out)
	}
	if strings.Contains(out, "Notes") {
		t.Fatalf("empty notes should not render a heading:\n%s", out)
	}
}

func TestStubSectionShowsNotice(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "down", "down", "enter")
	if id := m.resolve().Section.ID; id != "c" {
		t.Fatalf("expected stub section c, got %q", id)
	}
	if out := m.View(); !strings.Contains(out, "no content yet") {
		t.Fatalf("stub notice missing:\n%s", out)
	}
}

func TestBackStepsUpOneLevel(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "down", "enter", "esc")
	view := m.resolve()
	if view.Mode != nav.ModeSectionList || view.Chapter.ID != "first" {
		t.Fatalf("esc from detail should land on sections, got %v", view.Mode)
	}
	if m.listCursor != 1 {
		t.Fatalf("cursor should rest on the section just closed, got %d", m.listCursor)
	}

	press(m, "esc")
	if mode := m.resolve().Mode; mode != nav.ModeChapterList {
		t.Fatalf("esc from sections should go home, got %v", mode)
	}
}

func TestNextAndPreviousSection(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "enter", "]")
	if id := m.resolve().Section.ID; id != "b" {
		t.Fatalf("] should open b, got %q", id)
	}
	press(m, "]", "]")
	if id := m.resolve().Section.ID; id != "c" {
		t.Fatalf("] past the end should stay on c, got %q", id)
	}
	if !strings.Contains(m.infoMessage, "last section") {
		t.Fatalf("expected end-of-chapter message, got %q", m.infoMessage)
	}
	press(m, "[")
	if id := m.resolve().Section.ID; id != "b" {
		t.Fatalf("[ should open b, got %q", id)
	}
}

func TestNarrowViewportHidesSidebarOnChapterSelect(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	view := m.resolve()
	if !view.ShowSidebar || view.ShowMain {
		t.Fatalf("narrow start should show only the sidebar: %+v", view)
	}
	if m.focus != focusSidebar {
		t.Fatalf("focus should sit on the sidebar, got %v", m.focus)
	}

	press(m, "enter")
	view = m.resolve()
	if view.ShowSidebar || !view.ShowMain {
		t.Fatalf("narrow chapter select should hide the sidebar: %+v", view)
	}
	if view.Mode != nav.ModeSectionList {
		t.Fatalf("expected section list, got %v", view.Mode)
	}
	if m.nav.SidebarVisible() {
		t.Fatal("sidebar flag should be cleared")
	}
}

func TestToggleSidebarMovesFocus(t *testing.T) {
	m := newTestModel(t)
	if m.focus != focusSidebar {
		t.Fatalf("expected sidebar focus at start, got %v", m.focus)
	}
	press(m, "s")
	if m.nav.SidebarVisible() || m.focus != focusMain {
		t.Fatalf("hiding the sidebar should focus main (visible=%v focus=%v)", m.nav.SidebarVisible(), m.focus)
	}
	press(m, "tab")
	if m.focus != focusMain {
		t.Fatal("tab should not focus a hidden sidebar")
	}
	press(m, "s", "tab")
	if m.focus != focusSidebar {
		t.Fatalf("tab should reach the sidebar once shown, got %v", m.focus)
	}
}

func TestReloadDegradesMissingSelection(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "enter")

	doc := fixtureDocument()
	doc.Chapters = doc.Chapters[:1]
	m.Update(bookReloadedMsg{index: 0, seq: m.nextReloadSeq(0), book: content.Book{Key: "fixture", Store: content.NewStore(doc)}})

	view := m.resolve()
	if view.Mode != nav.ModeChapterList || !view.Degraded {
		t.Fatalf("expected degraded chapter list, got %v degraded=%v", view.Mode, view.Degraded)
	}
	if chapterID, _ := m.nav.ChapterID(); chapterID != "first" {
		t.Fatalf("reload should not rewrite the cursor, got %q", chapterID)
	}
	if !strings.Contains(m.infoMessage, "selection is gone") {
		t.Fatalf("degradation not reported: %q", m.infoMessage)
	}
	if m.sidebarCursor != 0 {
		t.Fatalf("sidebar cursor not clamped: %d", m.sidebarCursor)
	}
}

func TestReloadDropsMissingSection(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "down", "down", "enter")

	doc := fixtureDocument()
	doc.Chapters[1].Sections = doc.Chapters[1].Sections[:2]
	m.Update(bookReloadedMsg{index: 0, seq: m.nextReloadSeq(0), book: content.Book{Key: "fixture", Store: content.NewStore(doc)}})

	view := m.resolve()
	if view.Mode != nav.ModeSectionList || view.Chapter.ID != "first" || !view.Degraded {
		t.Fatalf("expected degraded section list of first, got %v %q", view.Mode, view.Chapter.ID)
	}
	if m.listCursor != 1 {
		t.Fatalf("list cursor should clamp to the last section, got %d", m.listCursor)
	}
}

func TestReloadFailureKeepsPreviousStore(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "enter")
	before := m.store()

	m.Update(bookReloadedMsg{index: 0, seq: m.nextReloadSeq(0), err: errors.New("malformed content: boom")})

	if m.store() != before {
		t.Fatal("failed reload replaced the store")
	}
	if !strings.Contains(m.errorMessage, "boom") {
		t.Fatalf("error not surfaced: %q", m.errorMessage)
	}
	if id := m.resolve().Section.ID; id != "a" {
		t.Fatalf("open section lost after failed reload: %q", id)
	}
}

func TestReloadIgnoresOutOfOrderResults(t *testing.T) {
	m := newTestModel(t)
	older := m.nextReloadSeq(0)
	newer := m.nextReloadSeq(0)

	latest := content.NewStore(fixtureDocument())
	m.Update(bookReloadedMsg{index: 0, seq: newer, book: content.Book{Key: "fixture", Store: latest}})
	if m.store() != latest {
		t.Fatal("newest reload was not applied")
	}

	stale := fixtureDocument()
	stale.Chapters = stale.Chapters[:1]
	m.Update(bookReloadedMsg{index: 0, seq: older, book: content.Book{Key: "fixture", Store: content.NewStore(stale)}})
	if m.store() != latest {
		t.Fatal("an older reload overwrote a newer one")
	}

	m.Update(bookReloadedMsg{index: 0, seq: older, err: errors.New("late failure")})
	if m.errorMessage != "" {
		t.Fatalf("stale failure surfaced: %q", m.errorMessage)
	}
}

func TestSwitchBookResetsNavigation(t *testing.T) {
	other := content.Document{
		Meta: content.Meta{Title: "Other Book"},
		Chapters: []content.Chapter{
			{ID: "x", Title: "Ex", Sections: []content.Section{{ID: "x1", Title: "One"}}},
		},
	}
	m := newTestModel(t,
		content.Book{Key: "fixture", Store: content.NewStore(fixtureDocument())},
		content.Book{Key: "other", Store: content.NewStore(other)},
	)
	press(m, "enter", "enter", "b")

	if m.bookIdx != 1 {
		t.Fatalf("expected second book, got %d", m.bookIdx)
	}
	if _, ok := m.nav.ChapterID(); ok {
		t.Fatal("switching book should clear the chapter")
	}
	if !strings.Contains(m.View(), "Other Book") {
		t.Fatal("header should show the new book")
	}
	press(m, "b")
	if m.bookIdx != 0 {
		t.Fatalf("b should wrap around, got %d", m.bookIdx)
	}
}

func TestConfigBookSelectsStartingBook(t *testing.T) {
	books := []content.Book{
		{Key: "a", Store: content.NewStore(content.Document{})},
		{Key: "b", Store: content.NewStore(fixtureDocument())},
	}
	m := New(Config{Books: books, Book: "b"}).(*model)
	if m.bookIdx != 1 {
		t.Fatalf("expected book b, got %d", m.bookIdx)
	}
	m = New(Config{Books: books, Book: "missing"}).(*model)
	if m.bookIdx != 0 {
		t.Fatalf("unknown book should fall back to the first, got %d", m.bookIdx)
	}
}

func TestEmptyModelRendersPlaceholder(t *testing.T) {
	m := New(Config{}).(*model)
	out := m.View()
	if !strings.Contains(out, "no chapters yet") {
		t.Fatalf("empty book placeholder missing:\n%s", out)
	}
	press(m, "enter", "esc", "]", "y")
	if mode := m.resolve().Mode; mode != nav.ModeChapterList {
		t.Fatalf("keys on an empty book should be no-ops, got %v", mode)
	}
}

func TestLanguageSwapReordersTitles(t *testing.T) {
	m := newTestModel(t)
	press(m, "l")
	if m.language != languageEnglish {
		t.Fatal("l should switch to English")
	}
	out := m.View()
	if !strings.Contains(out, "Opening chapter · First") {
		t.Fatalf("English-first row missing:\n%s", out)
	}
}

func TestCheatsheetToggle(t *testing.T) {
	m := newTestModel(t)
	if strings.Contains(m.View(), "Navigation Cheatsheet") {
		t.Fatal("cheatsheet should be hidden by default")
	}
	press(m, "?")
	out := m.View()
	if !strings.Contains(out, "Navigation Cheatsheet") || !strings.Contains(out, "Study Path") {
		t.Fatalf("help overlay incomplete:\n%s", out)
	}
	press(m, "?")
	if strings.Contains(m.View(), "Navigation Cheatsheet") {
		t.Fatal("cheatsheet should hide again after second toggle")
	}
}

func TestReloadKeyOnBundledBookIsRefused(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd != nil {
		t.Fatal("bundled books should not start a reload job")
	}
	if !strings.Contains(m.infoMessage, "cannot be reloaded") {
		t.Fatalf("unexpected message %q", m.infoMessage)
	}
}

func TestJobResultDispatchesPayload(t *testing.T) {
	m := newTestModel(t)
	m.Update(jobSignalMsg{Snapshot: jobSnapshot{ID: "copy-1", Kind: jobKindCopy, Status: jobStatusRunning}})
	if m.runningJobsLabel() != "copy" {
		t.Fatalf("running job not tracked: %q", m.runningJobsLabel())
	}
	m.Update(jobResultEnvelope{
		Snapshot: jobSnapshot{ID: "copy-1", Kind: jobKindCopy, Status: jobStatusSucceeded},
		Payload:  clipboardResultMsg{title: "Alpha"},
	})
	if len(m.running) != 0 {
		t.Fatal("finished job still tracked")
	}
	if !strings.Contains(m.infoMessage, "Alpha") {
		t.Fatalf("payload not dispatched: %q", m.infoMessage)
	}
}

func TestPageKeysScrollDetail(t *testing.T) {
	paragraphs := make([]string, 80)
	for i := range paragraphs {
		paragraphs[i] = fmt.Sprintf("Paragraph number %d.", i+1)
	}
	doc := content.Document{Chapters: []content.Chapter{
		{ID: "long", Title: "Long", Sections: []content.Section{{ID: "s", Title: "Scroll", Content: paragraphs}}},
	}}
	m := newTestModel(t, content.Book{Key: "long", Store: content.NewStore(doc)})
	press(m, "enter", "enter")
	m.View()
	if m.viewport.YOffset != 0 {
		t.Fatalf("detail should open at the top, got offset %d", m.viewport.YOffset)
	}

	press(m, "pgdown")
	if m.viewport.YOffset == 0 {
		t.Fatal("pgdown did not scroll the detail view")
	}
	press(m, "pgup")
	if m.viewport.YOffset != 0 {
		t.Fatalf("pgup should return to the top, got offset %d", m.viewport.YOffset)
	}

	press(m, "?")
	out := m.View()
	if !strings.Contains(out, "Page down") || !strings.Contains(out, "Page up") {
		t.Fatalf("page keys missing from the cheatsheet:\n%s", out)
	}
}
