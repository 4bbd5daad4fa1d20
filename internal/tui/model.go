package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/csheth/darsgah/internal/content"
	"github.com/csheth/darsgah/internal/nav"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Books         []content.Book
	Book          string
	NarrowWidth   int
	MarkdownStyle string
	Language      string
	Logger        *log.Logger

	// Changes delivers paths of content files that changed on disk. It may
	// be nil when nothing is watched.
	Changes <-chan string
}

type model struct {
	config Config
	logger *log.Logger
	keys   keyMap

	books   []content.Book
	bookIdx int

	nav    *nav.State
	layout pageLayout
	focus  focusArea

	sidebarCursor int
	listCursor    int

	viewport viewport.Model
	spinner  spinner.Model
	markdown *markdownRenderer

	jobs    *jobBus
	running map[string]jobSnapshot

	language    language
	helpVisible bool

	infoMessage  string
	errorMessage string

	// generation is bumped whenever a book's store is replaced so the detail
	// viewport knows to re-render.
	generation    int
	detailKey     string
	detailSection string

	reloadIssued  map[int]int
	reloadApplied map[int]int
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

func newModel(config Config) *model {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if config.NarrowWidth <= 0 {
		config.NarrowWidth = defaultNarrowWidth
	}

	books := append([]content.Book(nil), config.Books...)
	if len(books) == 0 {
		books = []content.Book{{Key: "empty", Store: content.NewStore(content.Document{})}}
	}
	bookIdx := 0
	if config.Book != "" {
		found := false
		for i, book := range books {
			if book.Key == config.Book {
				bookIdx = i
				found = true
				break
			}
		}
		if !found {
			logger.Warn("book not found, using first", "book", config.Book, "first", books[0].Key)
		}
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	layout := newPageLayout()
	vp := viewport.New(layout.viewportWidth, layout.viewportHeight)
	vp.MouseWheelEnabled = true

	m := &model{
		config:        config,
		logger:        logger,
		keys:          defaultKeyMap(),
		books:         books,
		bookIdx:       bookIdx,
		nav:           nav.New(),
		layout:        layout,
		focus:         focusSidebar,
		viewport:      vp,
		spinner:       spin,
		markdown:      newMarkdownRenderer(config.MarkdownStyle, layout.viewportWidth),
		jobs:          newJobBus(logger),
		running:       map[string]jobSnapshot{},
		language:      parseLanguage(config.Language),
		infoMessage:   "Pick a chapter to begin.",
		reloadIssued:  map[int]int{},
		reloadApplied: map[int]int{},
	}
	m.syncFocus(m.resolve())
	return m
}

func (m *model) Init() tea.Cmd {
	return waitForChangeCmd(m.config.Changes)
}

func (m *model) store() *content.Store {
	return m.books[m.bookIdx].Store
}

func (m *model) resolve() nav.View {
	return nav.Resolve(m.store(), m.nav, m.layout.class)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if len(m.running) > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height, m.config.NarrowWidth)
		m.viewport.Height = m.layout.viewportHeight
		m.syncFocus(m.resolve())
		return m, nil
	case tea.MouseMsg:
		if m.resolve().Mode == nav.ModeSectionDetail {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		wasIdle := len(m.running) == 0
		m.running[msg.Snapshot.ID] = msg.Snapshot
		if wasIdle {
			return m, m.spinner.Tick
		}
		return m, nil
	case jobResultEnvelope:
		delete(m.running, msg.Snapshot.ID)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case contentChangedMsg:
		idx, ok := bookIndexForSource(m.books, msg.path)
		if !ok {
			m.logger.Debug("change for unknown source", "path", msg.path)
			return m, waitForChangeCmd(m.config.Changes)
		}
		m.infoMessage = fmt.Sprintf("%s changed on disk, reloading…", m.books[idx].Key)
		return m, tea.Batch(
			m.startReload(idx),
			waitForChangeCmd(m.config.Changes),
		)
	case bookReloadedMsg:
		return m, m.applyReload(msg)
	case clipboardResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("copy failed: %v", msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Copied %q to the clipboard.", msg.title)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applyReload swaps in a freshly parsed book. A failed reload leaves the
// previous store on screen and only reports the error. Reloads may finish out
// of order, so a result issued before the last applied one is ignored.
func (m *model) applyReload(msg bookReloadedMsg) tea.Cmd {
	if msg.index < 0 || msg.index >= len(m.books) {
		return nil
	}
	previous := m.books[msg.index]
	if msg.seq <= m.reloadApplied[msg.index] {
		m.logger.Debug("dropping stale reload", "book", previous.Key, "seq", msg.seq, "applied", m.reloadApplied[msg.index])
		return nil
	}
	m.reloadApplied[msg.index] = msg.seq
	if msg.err != nil {
		m.logger.Error("reload failed, keeping previous content", "book", previous.Key, "err", msg.err)
		m.errorMessage = fmt.Sprintf("reload %s: %v", previous.Key, msg.err)
		m.infoMessage = "Still showing the last good version."
		return nil
	}
	book := msg.book
	if book.Key == "" {
		book.Key = previous.Key
	}
	m.books[msg.index] = book
	m.generation++
	m.errorMessage = ""
	m.logger.Info("content reloaded", "book", book.Key, "chapters", len(book.Store.Chapters()), "sections", book.Store.SectionCount())
	if msg.index != m.bookIdx {
		m.infoMessage = fmt.Sprintf("Reloaded %s.", book.Key)
		return nil
	}

	view := m.resolve()
	m.sidebarCursor = clamp(m.sidebarCursor, 0, len(view.Chapters)-1)
	m.listCursor = clamp(m.listCursor, 0, m.listLength(view)-1)
	m.syncFocus(view)
	if view.Degraded {
		m.infoMessage = fmt.Sprintf("Reloaded %s. The open selection is gone, showing %s instead.", book.Key, view.Mode)
	} else {
		m.infoMessage = fmt.Sprintf("Reloaded %s.", book.Key)
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		view := m.resolve()
		if view.ShowSidebar && view.ShowMain {
			if m.focus == focusMain {
				m.focus = focusSidebar
			} else {
				m.focus = focusMain
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Sidebar):
		m.nav.ToggleSidebar()
		m.syncFocus(m.resolve())
		if m.nav.SidebarVisible() {
			m.infoMessage = "Sidebar shown."
		} else {
			m.infoMessage = "Sidebar hidden."
		}
		return m, nil
	case key.Matches(msg, m.keys.Language):
		if m.language == languageUrdu {
			m.language = languageEnglish
			m.infoMessage = "Showing English titles first."
		} else {
			m.language = languageUrdu
			m.infoMessage = "Showing Urdu titles first."
		}
		return m, nil
	case key.Matches(msg, m.keys.Book):
		m.switchBook((m.bookIdx + 1) % len(m.books))
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCurrent()
	case key.Matches(msg, m.keys.Home):
		m.goHome()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCurrent()
	}

	view := m.resolve()
	if m.focus == focusSidebar && view.ShowSidebar {
		return m, m.handleSidebarKey(msg, view)
	}
	return m, m.handleMainKey(msg, view)
}

func (m *model) handleSidebarKey(msg tea.KeyMsg, view nav.View) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebarCursor = clamp(m.sidebarCursor-1, 0, len(view.Chapters)-1)
	case key.Matches(msg, m.keys.Down):
		m.sidebarCursor = clamp(m.sidebarCursor+1, 0, len(view.Chapters)-1)
	case key.Matches(msg, m.keys.Top):
		m.sidebarCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.sidebarCursor = clamp(len(view.Chapters)-1, 0, len(view.Chapters)-1)
	case key.Matches(msg, m.keys.Select):
		if m.sidebarCursor < len(view.Chapters) {
			m.openChapter(view.Chapters[m.sidebarCursor])
		}
	case key.Matches(msg, m.keys.Back):
		if view.ShowMain {
			m.focus = focusMain
		}
	}
	return nil
}

func (m *model) handleMainKey(msg tea.KeyMsg, view nav.View) tea.Cmd {
	switch view.Mode {
	case nav.ModeChapterList:
		return m.handleListKey(msg, len(view.Chapters), func(i int) {
			m.openChapter(view.Chapters[i])
		}, nil)
	case nav.ModeSectionList:
		return m.handleListKey(msg, len(view.Chapter.Sections), func(i int) {
			m.openSection(view.Chapter.Sections[i])
		}, m.goHome)
	default:
		return m.handleDetailKey(msg, view)
	}
}

func (m *model) handleListKey(msg tea.KeyMsg, length int, open func(int), back func()) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.listCursor = clamp(m.listCursor-1, 0, length-1)
	case key.Matches(msg, m.keys.Down):
		m.listCursor = clamp(m.listCursor+1, 0, length-1)
	case key.Matches(msg, m.keys.Top):
		m.listCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.listCursor = clamp(length-1, 0, length-1)
	case key.Matches(msg, m.keys.Select):
		if m.listCursor >= 0 && m.listCursor < length {
			open(m.listCursor)
		}
	case key.Matches(msg, m.keys.Back):
		if back != nil {
			back()
		}
	}
	return nil
}

func (m *model) handleDetailKey(msg tea.KeyMsg, view nav.View) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.nav.BackToSections()
		m.listCursor = sectionIndex(view.Chapter, view.Section.ID)
		m.infoMessage = ""
		return nil
	case key.Matches(msg, m.keys.Next):
		m.stepSection(view, 1)
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.stepSection(view, -1)
		return nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
		return nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// openChapter enters a chapter through the sidebar policy, so narrow
// screens drop the sidebar and show the section list in its place.
func (m *model) openChapter(chapter content.Chapter) {
	nav.SidebarPolicy{Class: m.layout.class}.SelectChapter(m.nav, chapter.ID)
	m.sidebarCursor = chapterIndex(m.store().Chapters(), chapter.ID)
	m.listCursor = 0
	m.focus = focusMain
	m.syncFocus(m.resolve())
	primary, _ := displayPair(chapter.Title, chapter.Subtitle, m.language)
	m.infoMessage = fmt.Sprintf("%s: %d sections.", primary, len(chapter.Sections))
}

func (m *model) openSection(section content.Section) {
	m.nav.SelectSection(section.ID)
	m.focus = focusMain
	m.syncFocus(m.resolve())
	if section.IsStub() {
		m.infoMessage = "This section is still being written."
	} else {
		m.infoMessage = ""
	}
}

func (m *model) stepSection(view nav.View, delta int) {
	idx := sectionIndex(view.Chapter, view.Section.ID) + delta
	if idx < 0 || idx >= len(view.Chapter.Sections) {
		if delta > 0 {
			m.infoMessage = "This is the last section of the chapter."
		} else {
			m.infoMessage = "This is the first section of the chapter."
		}
		return
	}
	m.openSection(view.Chapter.Sections[idx])
	m.listCursor = idx
}

func (m *model) goHome() {
	chapterID, _ := m.nav.ChapterID()
	m.nav.Home()
	m.listCursor = clamp(chapterIndex(m.store().Chapters(), chapterID), 0, len(m.store().Chapters())-1)
	m.syncFocus(m.resolve())
	m.infoMessage = ""
}

func (m *model) switchBook(idx int) {
	if idx == m.bookIdx {
		m.infoMessage = "Only one book is loaded."
		return
	}
	m.bookIdx = idx
	m.nav.Home()
	m.sidebarCursor = 0
	m.listCursor = 0
	m.syncFocus(m.resolve())
	meta := m.store().Meta()
	title := meta.Title
	if title == "" {
		title = m.books[idx].Key
	}
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Switched to %s.", title)
	m.logger.Info("book switched", "book", m.books[idx].Key)
}

func (m *model) reloadCurrent() tea.Cmd {
	book := m.books[m.bookIdx]
	if !book.Reloadable() {
		m.infoMessage = "Bundled books are built in and cannot be reloaded."
		return nil
	}
	m.infoMessage = fmt.Sprintf("Reloading %s…", book.Key)
	return m.startReload(m.bookIdx)
}

func (m *model) startReload(idx int) tea.Cmd {
	seq := m.nextReloadSeq(idx)
	return m.jobs.Start(jobKindReload, reloadBookJob(idx, seq, m.books[idx].Source))
}

func (m *model) nextReloadSeq(idx int) int {
	m.reloadIssued[idx]++
	return m.reloadIssued[idx]
}

func (m *model) copyCurrent() tea.Cmd {
	view := m.resolve()
	if view.Mode != nav.ModeSectionDetail {
		m.infoMessage = "Open a section to copy it."
		return nil
	}
	primary, _ := displayPair(view.Section.Title, view.Section.Subtitle, m.language)
	return m.jobs.Start(jobKindCopy, copySectionJob(primary, sectionPlainText(view.Section, m.language)))
}

// syncFocus keeps focus on a pane that is actually on screen.
func (m *model) syncFocus(view nav.View) {
	switch {
	case !view.ShowSidebar:
		m.focus = focusMain
	case !view.ShowMain:
		m.focus = focusSidebar
	}
}

func (m *model) listLength(view nav.View) int {
	switch view.Mode {
	case nav.ModeSectionList, nav.ModeSectionDetail:
		return len(view.Chapter.Sections)
	default:
		return len(view.Chapters)
	}
}

// refreshDetail renders the open section into the viewport when anything
// that affects its output has changed.
func (m *model) refreshDetail(view nav.View) {
	width := m.layout.viewportWidthFor(view.ShowSidebar && view.ShowMain)
	m.viewport.Width = width
	m.viewport.Height = m.layout.viewportHeight

	chapterID, _ := m.nav.ChapterID()
	target := fmt.Sprintf("%d/%s/%s", m.bookIdx, chapterID, view.Section.ID)
	detailKey := fmt.Sprintf("%s|%d|%d|%d", target, m.language, width, m.generation)
	if detailKey == m.detailKey {
		return
	}
	m.detailKey = detailKey

	m.markdown.SetWidth(width)
	rendered, err := m.markdown.Render(sectionMarkdown(view.Section, m.language))
	if err != nil {
		m.logger.Warn("markdown render failed, using plain text", "section", view.Section.ID, "err", err)
		rendered = plainSection(view.Section, m.language, width)
	}
	m.viewport.SetContent(strings.TrimRight(rendered, "\n"))
	if target != m.detailSection {
		m.detailSection = target
		m.viewport.GotoTop()
	}
}

func chapterIndex(chapters []content.Chapter, id string) int {
	for i, chapter := range chapters {
		if chapter.ID == id {
			return i
		}
	}
	return 0
}

func sectionIndex(chapter content.Chapter, id string) int {
	for i, section := range chapter.Sections {
		if section.ID == id {
			return i
		}
	}
	return 0
}
