package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Switch      key.Binding
	CloseTab    key.Binding
	CloseOthers key.Binding
	Refresh     key.Binding
	ToggleExact key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		Switch:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "switch to tab")),
		CloseTab:    key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
		CloseOthers: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "close other tabs")),
		Refresh:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		ToggleExact: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "toggle exact match")),
		Quit:        key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "dismiss")),
	}
}
