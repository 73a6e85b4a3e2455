package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	Up            key.Binding
	Down          key.Binding
	Activate      key.Binding // enter — rate or open the answer box
	AnswerEditor  key.Binding // E — answer via $EDITOR
	Refresh       key.Binding // r — reload everything, leaves search
	Search        key.Binding // / — keyword search
	Profile       key.Binding // p — edit profile inline
	ProfileEditor key.Binding // P — edit profile via $EDITOR
	Login         key.Binding // l — focus the login form
	Logout        key.Binding // x — drop the stored credential
	Cancel        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "rate/answer"),
		),
		AnswerEditor: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "answer ($EDITOR)"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile (inline)"),
		),
		ProfileEditor: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "profile ($EDITOR)"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "login"),
		),
		Logout: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "logout"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}
