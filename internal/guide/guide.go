package guide

import (
	"fmt"
	"strings"

	"github.com/csheth/darsgah/internal/content"
)

// Step represents one stop on the suggested study path.
type Step struct {
	Title       string
	Description string
}

// Metadata carries just enough context for personalizing the path.
type Metadata struct {
	Title    string
	Chapters []content.Chapter
}

// Build returns a study path through a book: one step per chapter in
// presentation order, then a review step.
func Build(meta Metadata) []Step {
	displayTitle := strings.TrimSpace(meta.Title)
	if displayTitle == "" {
		displayTitle = "this book"
	}
	if len(meta.Chapters) == 0 {
		return []Step{{
			Title:       "Nothing to study yet",
			Description: fmt.Sprintf("%s has no chapters. Point -content at a file with at least one chapter.", displayTitle),
		}}
	}

	steps := make([]Step, 0, len(meta.Chapters)+1)
	for i, chapter := range meta.Chapters {
		label := chapter.Subtitle
		if label == "" {
			label = chapter.Title
		}
		steps = append(steps, Step{
			Title:       fmt.Sprintf("Step %d – %s", i+1, label),
			Description: describeChapter(chapter),
		})
	}
	steps = append(steps, Step{
		Title:       "Review",
		Description: fmt.Sprintf("Revisit the notes of every section in %s and recite the examples aloud.", displayTitle),
	})
	return steps
}

func describeChapter(chapter content.Chapter) string {
	sections := len(chapter.Sections)
	noted := 0
	for _, section := range chapter.Sections {
		if section.HasNotes() {
			noted++
		}
	}
	switch {
	case sections == 0:
		return fmt.Sprintf("%s is still being written.", chapter.Title)
	case noted == 0:
		return fmt.Sprintf("Read %s: %s.", chapter.Title, plural(sections, "section"))
	default:
		return fmt.Sprintf("Read %s: %s, %d with notes to memorize.", chapter.Title, plural(sections, "section"), noted)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
