package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Back     key.Binding
	Home     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Focus    key.Binding
	Sidebar  key.Binding
	Language key.Binding
	Book     key.Binding
	Reload   key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Move up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Move down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Open")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "Back")),
		Home:     key.NewBinding(key.WithKeys("h", "home"), key.WithHelp("h", "All chapters")),
		Next:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "Next section")),
		Prev:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "Previous section")),
		Top:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "Top")),
		Bottom:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "Bottom")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "Page down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "Page up")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Switch pane")),
		Sidebar:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Toggle sidebar")),
		Language: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "Swap language")),
		Book:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "Next book")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reload file")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Copy section")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Toggle cheatsheet")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
}

func (k keyMap) legend() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.PageUp, k.PageDown, k.Select, k.Back, k.Home, k.Prev, k.Next,
		k.Focus, k.Sidebar, k.Language, k.Book, k.Reload, k.Copy, k.Help, k.Quit,
	}
}
