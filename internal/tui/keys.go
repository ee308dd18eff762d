package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key.Binding mapping for the prompts.
type keyMap struct {
	yes  key.Binding
	no   key.Binding
	quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		yes:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "apply")),
		no:   key.NewBinding(key.WithKeys("n", "N", "enter", "esc"), key.WithHelp("n/enter", "abort")),
		quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.yes, k.no}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.yes, k.no, k.quit}}
}
