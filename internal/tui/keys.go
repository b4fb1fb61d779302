package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Spin    key.Binding
	History key.Binding
	UpDown  key.Binding
	Select  key.Binding
	Retry   key.Binding
	Close   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Spin:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "spin")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		UpDown:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "donate")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spin, k.History, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Spin, k.History, k.Quit}}
}

type dialogKeyMap struct {
	keyMap
}

func (k dialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.UpDown, k.Select, k.Close, k.Quit}
}

func (k dialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.UpDown, k.Select, k.Close, k.Quit}}
}

// renderFooter formats bindings as a one-line help footer.
func renderFooter(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}
