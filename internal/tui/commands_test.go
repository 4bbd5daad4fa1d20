package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/csheth/darsgah/internal/content"
)

const reloadFixture = `{
  "meta": {"title": "Reloaded"},
  "chapters": [
    {"id": "c1", "title": "One", "order": 1, "sections": [{"id": "s1", "title": "S", "content": ["p"]}]}
  ]
}`

func TestReloadBookJobParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	if err := os.WriteFile(path, []byte(reloadFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	payload, err := reloadBookJob(2, 7, path)(context.Background())
	if err != nil {
		t.Fatalf("reload job error = %v", err)
	}
	msg, ok := payload.(bookReloadedMsg)
	if !ok {
		t.Fatalf("unexpected payload %T", payload)
	}
	if msg.index != 2 || msg.seq != 7 || msg.book.Store.Meta().Title != "Reloaded" {
		t.Fatalf("unexpected reload result: %+v", msg)
	}
}

func TestReloadBookJobReportsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	if err := os.WriteFile(path, []byte(`{"chapters": [{"title": "no id"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	payload, err := reloadBookJob(0, 1, path)(context.Background())
	if !errors.Is(err, content.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if msg := payload.(bookReloadedMsg); msg.err == nil {
		t.Fatal("payload should carry the error for the model")
	}
}

func TestCopySectionJobUsesClipboard(t *testing.T) {
	var copied string
	original := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = original })

	payload, err := copySectionJob("Alpha", "Alpha\n\nbody")(context.Background())
	if err != nil {
		t.Fatalf("copy job error = %v", err)
	}
	if copied != "Alpha\n\nbody" {
		t.Fatalf("clipboard got %q", copied)
	}
	if msg := payload.(clipboardResultMsg); msg.title != "Alpha" {
		t.Fatalf("unexpected payload %+v", msg)
	}
}

func TestCopyOutsideDetailIsRefused(t *testing.T) {
	m := newTestModel(t)
	if cmd := m.copyCurrent(); cmd != nil {
		t.Fatal("copy should need an open section")
	}
	press(m, "enter", "enter")
	if cmd := m.copyCurrent(); cmd == nil {
		t.Fatal("copy should start a job in detail view")
	}
}

func TestWaitForChangeCmd(t *testing.T) {
	if cmd := waitForChangeCmd(nil); cmd != nil {
		t.Fatal("nil channel should not produce a command")
	}
	changes := make(chan string, 1)
	changes <- "/tmp/book.json"
	msg := waitForChangeCmd(changes)()
	if changed, ok := msg.(contentChangedMsg); !ok || changed.path != "/tmp/book.json" {
		t.Fatalf("unexpected message %#v", msg)
	}
	close(changes)
	if msg := waitForChangeCmd(changes)(); msg != nil {
		t.Fatalf("closed channel should yield nil, got %#v", msg)
	}
}

func TestBookIndexForSource(t *testing.T) {
	dir := t.TempDir()
	books := []content.Book{
		{Key: "tajweed"},
		{Key: "custom", Source: filepath.Join(dir, "custom.json")},
	}
	if idx, ok := bookIndexForSource(books, filepath.Join(dir, ".", "custom.json")); !ok || idx != 1 {
		t.Fatalf("expected index 1, got %d %v", idx, ok)
	}
	if _, ok := bookIndexForSource(books, filepath.Join(dir, "other.json")); ok {
		t.Fatal("unrelated path should not match")
	}
}

func TestJobBusIDsAreUnique(t *testing.T) {
	bus := newJobBus(newTestModel(t).logger)
	first := bus.nextID(jobKindReload)
	second := bus.nextID(jobKindReload)
	if first == second {
		t.Fatalf("ids collide: %q", first)
	}
	if cmd := bus.Start(jobKindCopy, copySectionJob("x", "y")); cmd == nil {
		t.Fatal("Start should return a command")
	}
}
