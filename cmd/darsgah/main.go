package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/darsgah/internal/config"
	"github.com/csheth/darsgah/internal/content"
	"github.com/csheth/darsgah/internal/logging"
	"github.com/csheth/darsgah/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, environ, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 2
	}

	logger, closer, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closer.Close()

	books, startBook, err := loadBooks(cfg)
	if err != nil {
		logger.Error("content failed to load", "err", err)
		fmt.Fprintln(stderr, err)
		return 1
	}

	if cfg.Check {
		printSummary(stdout, books)
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan string
	if cfg.Watch {
		watcher, err := content.Watch(ctx, cfg.ContentPath, logger)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
			fmt.Fprintln(stderr, "hot reload disabled:", err)
		} else {
			changes = watcher.Changes()
		}
	}

	opts := []tea.ProgramOption{}
	if !cfg.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Books:         books,
			Book:          startBook,
			NarrowWidth:   cfg.NarrowWidth,
			MarkdownStyle: cfg.MarkdownStyle,
			Language:      cfg.Language,
			Logger:        logger,
			Changes:       changes,
		}),
		opts...,
	)

	logger.Info("starting", "books", len(books), "book", startBook, "watch", changes != nil)
	if _, err := program.Run(); err != nil {
		logger.Error("program error", "err", err)
		fmt.Fprintln(stderr, "program error:", err)
		return 1
	}
	return 0
}

// loadBooks returns the bundled books, preceded by the -content file when
// one is given. The file is then the book opened first.
func loadBooks(cfg config.Config) ([]content.Book, string, error) {
	bundled, err := content.BundledBooks()
	if err != nil {
		return nil, "", err
	}
	if cfg.ContentPath == "" {
		return bundled, cfg.Book, nil
	}
	absPath, err := filepath.Abs(cfg.ContentPath)
	if err != nil {
		return nil, "", fmt.Errorf("resolve content path: %w", err)
	}
	book, err := content.LoadBook(absPath)
	if err != nil {
		return nil, "", err
	}
	return append([]content.Book{book}, bundled...), book.Key, nil
}

func printSummary(w io.Writer, books []content.Book) {
	for _, book := range books {
		source := book.Source
		if source == "" {
			source = "bundled"
		}
		fmt.Fprintf(w, "%s: %d chapters, %d sections (%s)\n",
			book.Key, len(book.Store.Chapters()), book.Store.SectionCount(), source)
	}
}
