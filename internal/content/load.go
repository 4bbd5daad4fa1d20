package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed marks content that cannot be parsed or breaks the schema.
var ErrMalformed = errors.New("malformed content")

// Format selects the decoder for a content file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks a decoder from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Book is one named content file loaded into a Store.
type Book struct {
	Key    string
	Source string
	Store  *Store
}

// Reloadable reports whether the book was read from disk.
func (b Book) Reloadable() bool {
	return b.Source != ""
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := doc.Validate(); err != nil {
		return doc, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

// Validate checks the structural rules a Store relies on.
func (d Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Chapters))
	for i, chapter := range d.Chapters {
		if strings.TrimSpace(chapter.ID) == "" {
			return fmt.Errorf("chapters[%d].id is required", i)
		}
		if _, ok := seen[chapter.ID]; ok {
			return fmt.Errorf("duplicate chapter id %q", chapter.ID)
		}
		seen[chapter.ID] = struct{}{}
		if strings.TrimSpace(chapter.Title) == "" {
			return fmt.Errorf("chapter %q: title is required", chapter.ID)
		}
		sections := make(map[string]struct{}, len(chapter.Sections))
		for j, section := range chapter.Sections {
			if strings.TrimSpace(section.ID) == "" {
				return fmt.Errorf("chapter %q: sections[%d].id is required", chapter.ID, j)
			}
			if _, ok := sections[section.ID]; ok {
				return fmt.Errorf("chapter %q: duplicate section id %q", chapter.ID, section.ID)
			}
			sections[section.ID] = struct{}{}
			if strings.TrimSpace(section.Title) == "" {
				return fmt.Errorf("chapter %q: section %q: title is required", chapter.ID, section.ID)
			}
		}
	}
	return nil
}

// LoadBook reads a content file from disk. The book key is the file name
// without its extension.
func LoadBook(path string) (Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Book{}, fmt.Errorf("read content %s: %w", path, err)
	}
	doc, err := Parse(data, FormatForPath(path))
	if err != nil {
		return Book{}, fmt.Errorf("load %s: %w", path, err)
	}
	base := filepath.Base(path)
	return Book{
		Key:    strings.TrimSuffix(base, filepath.Ext(base)),
		Source: path,
		Store:  NewStore(doc),
	}, nil
}
