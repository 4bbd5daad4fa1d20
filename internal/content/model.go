package content

// Meta describes a book as a whole.
type Meta struct {
	Title       string `json:"title" yaml:"title"`
	Subtitle    string `json:"subtitle" yaml:"subtitle"`
	Description string `json:"description" yaml:"description"`
}

// Document is the on-disk shape of a content file.
type Document struct {
	Meta     Meta      `json:"meta" yaml:"meta"`
	Chapters []Chapter `json:"chapters" yaml:"chapters"`
}

// Chapter is a top-level topic. Sections keep the order they were stored in.
type Chapter struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Subtitle string    `json:"subtitle" yaml:"subtitle"`
	Icon     Icon      `json:"icon" yaml:"icon"`
	Order    int       `json:"order" yaml:"order"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section carries the explanatory paragraphs of a sub-topic.
type Section struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle" yaml:"subtitle"`
	Content  []string `json:"content" yaml:"content"`
	Notes    []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// HasNotes reports whether the section has anything to annotate. A missing
// notes list and an empty one are the same thing.
func (s Section) HasNotes() bool {
	return len(s.Notes) > 0
}

// IsStub reports whether the section has no paragraphs yet.
func (s Section) IsStub() bool {
	return len(s.Content) == 0
}
