package tui

import (
	"context"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/darsgah/internal/content"
)

type contentChangedMsg struct {
	path string
}

// bookReloadedMsg carries seq, the per-book number the reload was issued
// with. Results older than the last applied one are dropped.
type bookReloadedMsg struct {
	index int
	seq   int
	book  content.Book
	err   error
}

type clipboardResultMsg struct {
	title string
	err   error
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func reloadBookJob(index, seq int, source string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		book, err := content.LoadBook(source)
		return bookReloadedMsg{index: index, seq: seq, book: book, err: err}, err
	}
}

func copySectionJob(title, text string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := clipboardWrite(text)
		return clipboardResultMsg{title: title, err: err}, err
	}
}

// waitForChangeCmd blocks on the watcher channel and turns the next change
// into a message. It returns nil once the channel closes.
func waitForChangeCmd(changes <-chan string) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return contentChangedMsg{path: path}
	}
}

func bookIndexForSource(books []content.Book, path string) (int, bool) {
	target := filepath.Clean(path)
	for i, book := range books {
		if book.Source == "" {
			continue
		}
		if filepath.Clean(book.Source) == target {
			return i, true
		}
		if abs, err := filepath.Abs(book.Source); err == nil && abs == target {
			return i, true
		}
	}
	return -1, false
}
