package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/darsgah/internal/content"
)

const (
	notesHeading = "Notes · نوٹس"
	stubNotice   = "This section has no content yet."
)

type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(style string, width int) *markdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &markdownRenderer{style: style, width: width}
}

func (r *markdownRenderer) SetWidth(width int) {
	if width == r.width {
		return
	}
	r.width = width
	r.renderer = nil
}

func (r *markdownRenderer) Render(markdown string) (string, error) {
	if r.renderer == nil {
		styleOpt := glamour.WithStandardStyle(r.style)
		if r.style == "auto" {
			styleOpt = glamour.WithAutoStyle()
		}
		renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(r.width))
		if err != nil {
			return "", err
		}
		r.renderer = renderer
	}
	return r.renderer.Render(markdown)
}

// sectionMarkdown lays a section out as a markdown document: headline,
// gloss, paragraphs in stored order, then numbered notes when there are any.
func sectionMarkdown(section content.Section, lang language) string {
	primary, secondary := displayPair(section.Title, section.Subtitle, lang)
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(escapeMarkdownText(primary))
	b.WriteString("\n\n")
	if secondary != "" {
		b.WriteString("*")
		b.WriteString(escapeMarkdownText(strings.TrimSpace(secondary)))
		b.WriteString("*\n\n")
	}
	if section.IsStub() {
		b.WriteString("*")
		b.WriteString(stubNotice)
		b.WriteString("*\n\n")
	}
	for _, paragraph := range section.Content {
		b.WriteString(markdownBlock(paragraph))
		b.WriteString("\n\n")
	}
	if section.HasNotes() {
		b.WriteString("## ")
		b.WriteString(notesHeading)
		b.WriteString("\n\n")
		for i, note := range section.Notes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, markdownBlock(note))
		}
	}
	return b.String()
}

// plainSection is used when the markdown renderer is unavailable.
func plainSection(section content.Section, lang language, width int) string {
	primary, secondary := displayPair(section.Title, section.Subtitle, lang)
	cb := &contentBuilder{}
	cb.WriteString(titleStyle.Render(primary))
	cb.WriteRune('\n')
	if secondary != "" {
		cb.WriteString(subtitleStyle.Render(secondary))
		cb.WriteRune('\n')
	}
	if section.IsStub() {
		cb.WriteRune('\n')
		cb.WriteString(helperStyle.Render(stubNotice))
		cb.WriteRune('\n')
	}
	for _, paragraph := range section.Content {
		cb.WriteRune('\n')
		cb.WriteString(wordwrap.String(strings.TrimSpace(paragraph), width))
		cb.WriteRune('\n')
	}
	if section.HasNotes() {
		cb.WriteRune('\n')
		cb.WriteString(sectionHeaderStyle.Render(notesHeading))
		cb.WriteRune('\n')
		for i, note := range section.Notes {
			index := noteIndexStyle.Render(fmt.Sprintf("%d.", i+1))
			body := wordwrap.String(strings.TrimSpace(note), width-4)
			cb.WriteString(index + " " + strings.ReplaceAll(body, "\n", "\n   "))
			cb.WriteRune('\n')
		}
	}
	return cb.String()
}

// markdownBlock turns stored text into one markdown block that renders
// verbatim. Inner line breaks become hard breaks so a blank line cannot split
// the block in two.
func markdownBlock(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = escapeMarkdownText(strings.TrimSpace(line))
	}
	return strings.Join(lines, "\\\n")
}

// escapeMarkdownText backslash-escapes every ASCII punctuation character,
// so emphasis, code spans, links, HTML and block markers all come out as
// literal text.
func escapeMarkdownText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x80 && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sectionPlainText(section content.Section, lang language) string {
	primary, secondary := displayPair(section.Title, section.Subtitle, lang)
	parts := []string{primary}
	if secondary != "" {
		parts = append(parts, secondary)
	}
	parts = append(parts, section.Content...)
	for i, note := range section.Notes {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, note))
	}
	return strings.Join(parts, "\n\n")
}

// displayPair orders a title and its gloss for the chosen language.
func displayPair(title, subtitle string, lang language) (primary, secondary string) {
	if lang == languageEnglish && strings.TrimSpace(subtitle) != "" {
		return subtitle, title
	}
	return title, subtitle
}
