package content

import "sort"

// Store is a read-only view over one loaded Document. A reload produces a new
// Store; an existing one never changes.
type Store struct {
	meta     Meta
	chapters []Chapter
	index    map[string]int
}

// NewStore sorts the chapters by Order, keeping input order for ties.
func NewStore(doc Document) *Store {
	chapters := make([]Chapter, len(doc.Chapters))
	copy(chapters, doc.Chapters)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Order < chapters[j].Order
	})
	index := make(map[string]int, len(chapters))
	for i, chapter := range chapters {
		if _, exists := index[chapter.ID]; !exists {
			index[chapter.ID] = i
		}
	}
	return &Store{meta: doc.Meta, chapters: chapters, index: index}
}

func (s *Store) Meta() Meta {
	if s == nil {
		return Meta{}
	}
	return s.meta
}

// Chapters returns every chapter in presentation order.
func (s *Store) Chapters() []Chapter {
	if s == nil {
		return nil
	}
	out := make([]Chapter, len(s.chapters))
	copy(out, s.chapters)
	return out
}

func (s *Store) Chapter(id string) (Chapter, bool) {
	if s == nil {
		return Chapter{}, false
	}
	idx, ok := s.index[id]
	if !ok {
		return Chapter{}, false
	}
	return s.chapters[idx], true
}

// Section looks a section up inside its owning chapter only.
func (s *Store) Section(chapterID, sectionID string) (Section, bool) {
	chapter, ok := s.Chapter(chapterID)
	if !ok {
		return Section{}, false
	}
	for _, section := range chapter.Sections {
		if section.ID == sectionID {
			return section, true
		}
	}
	return Section{}, false
}

// SectionCount is the total number of sections across all chapters.
func (s *Store) SectionCount() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, chapter := range s.chapters {
		total += len(chapter.Sections)
	}
	return total
}
