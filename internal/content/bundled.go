package content

import (
	"embed"
	"fmt"
	"path"

	"golang.org/x/sync/errgroup"
)

//go:embed data/*.json
var bundledFS embed.FS

// BundledKeys lists the books compiled into the binary in menu order.
var BundledKeys = []string{"tajweed", "fiqh"}

// BundledBooks parses every embedded book. Bundled content is expected to be
// valid, so any error here is a build defect.
func BundledBooks() ([]Book, error) {
	books := make([]Book, len(BundledKeys))
	var g errgroup.Group
	for i, key := range BundledKeys {
		g.Go(func() error {
			data, err := bundledFS.ReadFile(path.Join("data", key+".json"))
			if err != nil {
				return fmt.Errorf("bundled book %s: %w", key, err)
			}
			doc, err := Parse(data, FormatJSON)
			if err != nil {
				return fmt.Errorf("bundled book %s: %w", key, err)
			}
			books[i] = Book{Key: key, Store: NewStore(doc)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return books, nil
}
