package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Flip     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Shuffle  key.Binding
	Autoplay key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Flip: key.NewBinding(
		key.WithKeys(" ", "space", "enter", "f"),
		key.WithHelp("space", "flip"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n"),
		key.WithHelp("→/l", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "p"),
		key.WithHelp("←/h", "back"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "shuffle"),
	),
	Autoplay: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "autoplay"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Flip, k.Prev, k.Next, k.Shuffle, k.Autoplay, k.Quit}
}
