package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Back     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Move     key.Binding
	New      key.Binding
	PitchKey key.Binding
	Draft    key.Binding
	Invite   key.Binding
	Accept   key.Binding
	Decline  key.Binding
	Refresh  key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev page")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move mission")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new mission")),
		PitchKey: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pitch")),
		Draft:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draft member")),
		Invite:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invite")),
		Accept:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Decline:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "decline")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
