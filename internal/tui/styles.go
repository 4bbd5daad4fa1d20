package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/darsgah/internal/content"
)

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6c177"))
	subtitleStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("147"))
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	breadcrumbStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	heroAccentColor = lipgloss.Color("#2a9d8f")
	heroEmberColor  = lipgloss.Color("#0b2624")
	heroTextColor   = lipgloss.Color("#e9f5db")

	heroBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Foreground(heroTextColor).Background(heroEmberColor).Padding(0, 2)
	heroTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	taglineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#95d5b2")).Italic(true)
	statusBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	helpBoxStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	cursorRowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	activeRowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6c177"))
	sidebarStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("#44475a")).PaddingRight(1)
	mainPaneStyle   = lipgloss.NewStyle().PaddingLeft(2)
	noteIndexStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e9c46a"))
	countBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
)

// fallbackGlyph is drawn for icons the viewer does not know.
const fallbackGlyph = "•"

// iconGlyph maps every chapter icon to a glyph. Unknown icons get
// fallbackGlyph.
func iconGlyph(icon content.Icon) string {
	switch icon {
	case content.IconBookOpen:
		return "📖"
	case content.IconMic:
		return "🎙"
	case content.IconVolume:
		return "🔊"
	case content.IconScroll:
		return "📜"
	case content.IconDroplets:
		return "💧"
	case content.IconMoon:
		return "🌙"
	case content.IconSun:
		return "☀"
	case content.IconStar:
		return "★"
	case content.IconHeart:
		return "♥"
	case content.IconHand:
		return "✋"
	case content.IconCompass:
		return "🧭"
	case content.IconLayers:
		return "☰"
	case content.IconSparkles:
		return "✨"
	default:
		return fallbackGlyph
	}
}
