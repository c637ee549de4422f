package tui

import "charm.land/bubbles/v2/key"

// KeyMap holds the shell-level bindings. Page-specific keys are handled by
// each view; they are listed here for the help dialog.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Chat    key.Binding
	Back    key.Binding
	Restart key.Binding

	Up        key.Binding
	Down      key.Binding
	Translate key.Binding
	Play      key.Binding
	Audio     key.Binding

	Send    key.Binding
	Suggest key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Chat:    key.NewBinding(key.WithKeys("tab", "c"), key.WithHelp("tab/c", "switch results and chat")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "analyze another document")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous section")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next section")),
		Translate: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "translate section")),
		Play:      key.NewBinding(key.WithKeys("p", "space"), key.WithHelp("p", "play or pause audio")),
		Audio:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "retry audio")),

		Send:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send question")),
		Suggest: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "ask a suggested question")),
	}
}
