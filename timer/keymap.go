package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	complete   key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
