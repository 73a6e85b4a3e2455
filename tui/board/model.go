package board

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalqa/app"
	"github.com/CrestNiraj12/terminalqa/tui/common"
)

// Model shows the rendered question list and a cursor over its controls.
// Views without controls (anonymous, search) scroll by question instead.
// It never fetches; the root model feeds it complete views.
type Model struct {
	view     app.View
	controls []app.Control
	cursor   int
	top      int // first question shown when there are no controls
	loading  bool
	spinner  spinner.Model
	keys     common.KeyMap
	width    int
	height   int
}

// New creates an empty board.
func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		spinner: s,
		keys:    common.DefaultKeyMap(),
	}
}

// SetView replaces the whole board. The cursor stays on the same control
// when it still exists, otherwise it is clamped.
func (m *Model) SetView(v app.View) {
	prev, hadPrev := m.Selected()
	m.view = v
	m.controls = v.Controls()
	m.loading = false
	m.top = min(m.top, max(len(v.Nodes)-1, 0))

	if hadPrev {
		for i, c := range m.controls {
			if c.Action == prev.Action && c.Target == prev.Target {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = min(m.cursor, max(len(m.controls)-1, 0))
}

// Clear empties the board immediately.
func (m *Model) Clear() {
	m.view = app.View{}
	m.controls = nil
	m.cursor = 0
	m.top = 0
	m.loading = false
}

// Current returns the view currently shown.
func (m Model) Current() app.View { return m.view }

// SetLoading toggles the spinner. The returned command starts it ticking.
func (m *Model) SetLoading(on bool) tea.Cmd {
	m.loading = on
	if on {
		return m.spinner.Tick
	}
	return nil
}

// Tick starts the spinner.
func (m Model) Tick() tea.Cmd { return m.spinner.Tick }

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool { return m.loading }

// Selected returns the control under the cursor.
func (m Model) Selected() (app.Control, bool) {
	if m.cursor < 0 || m.cursor >= len(m.controls) {
		return app.Control{}, false
	}
	return m.controls[m.cursor], true
}

// SetSize records the terminal size used for wrapping and scrolling.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
}

// Update handles cursor movement and spinner ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if len(m.controls) == 0 {
			m.scroll(msg)
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.controls)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m *Model) scroll(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.top < len(m.view.Nodes)-1 {
			m.top++
		}
	case key.Matches(msg, m.keys.Up):
		if m.top > 0 {
			m.top--
		}
	}
}
