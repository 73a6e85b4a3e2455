package auth

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalqa/tui/common"
)

// Form is which action the fields submit to.
type Form int

const (
	FormLogin Form = iota
	FormRegister
)

// SubmitMsg carries the entered credentials to the root model.
type SubmitMsg struct {
	Form     Form
	Username string
	Password string
}

// ToggleMsg asks the root model to switch between login and register.
type ToggleMsg struct{}

// LeaveMsg moves focus back to the question list.
type LeaveMsg struct{}

const (
	fieldUsername = iota
	fieldPassword
)

// Model is the login/register pane.
type Model struct {
	form    Form
	inputs  [2]textinput.Model
	focus   int
	busy    bool
	focused bool
	cancel  key.Binding
}

// New creates the pane showing the login form.
func New() Model {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "Username: "
	user.CharLimit = 64

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128

	m := Model{inputs: [2]textinput.Model{user, pass}, cancel: common.DefaultKeyMap().Cancel}
	m.Focus()
	return m
}

// Form returns the form being shown.
func (m Model) Form() Form { return m.form }

// SetForm switches between login and register, keeping typed values.
func (m *Model) SetForm(f Form) { m.form = f }

// Focus gives the pane keyboard focus on the username field.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	m.focus = fieldUsername
	m.inputs[fieldPassword].Blur()
	return m.inputs[fieldUsername].Focus()
}

// Blur releases keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// SetBusy blocks submissions while a request is in flight.
func (m *Model) SetBusy(busy bool) { m.busy = busy }

// Reset clears both fields.
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}

// Update handles typing, field switching and submission.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	if key.Matches(keyMsg, m.cancel) {
		return m, func() tea.Msg { return LeaveMsg{} }
	}

	switch keyMsg.String() {
	case "tab", "shift+tab", "up", "down":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		return m, m.inputs[m.focus].Focus()

	case "ctrl+r":
		return m, func() tea.Msg { return ToggleMsg{} }

	case "enter":
		if m.busy {
			return m, nil
		}
		if m.focus == fieldUsername && m.inputs[fieldPassword].Value() == "" {
			m.inputs[m.focus].Blur()
			m.focus = fieldPassword
			return m, m.inputs[m.focus].Focus()
		}
		sub := SubmitMsg{
			Form:     m.form,
			Username: m.inputs[fieldUsername].Value(),
			Password: m.inputs[fieldPassword].Value(),
		}
		return m, func() tea.Msg { return sub }
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(keyMsg)
	return m, cmd
}

// View renders the pane.
func (m Model) View() string {
	title, toggle := "Log in", "ctrl+r: register"
	if m.form == FormRegister {
		title, toggle = "Register", "ctrl+r: back to login"
	}

	var b strings.Builder
	b.WriteString(common.QuestionStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldUsername].View())
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("\n")
	if m.focused {
		b.WriteString(common.LabelStyle.Render("enter: submit • tab: next field • " + toggle + " • esc: browse"))
	} else {
		b.WriteString(common.LabelStyle.Render("l: log in"))
	}
	return common.PaneStyle.Render(b.String())
}
