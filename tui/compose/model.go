package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalqa/infra/editor"
	"github.com/CrestNiraj12/terminalqa/tui/common"
)

var cancelKey = common.DefaultKeyMap().Cancel

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// Purpose says what the composed text is for.
type Purpose int

const (
	PurposeAnswer Purpose = iota
	PurposeProfile
)

// --- Messages ---

// SubmitMsg asks the root model to send the composed text.
type SubmitMsg struct {
	Purpose    Purpose
	QuestionID int64
	Content    string
}

// CancelMsg closes the composer without sending anything.
type CancelMsg struct {
	Purpose Purpose
	Err     error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode       mode
	purpose    Purpose
	questionID int64
	title      string
	editor     *editor.EnvEditor
	textarea   textarea.Model // Only used in inline mode
	tmpPath    string         // Temp file path for editor mode
	initial    string
	status     string
	busy       bool
}

// NewAnswerInline opens an inline textarea answering questionID. draft is
// a previously failed submission, if any.
func NewAnswerInline(questionID int64, question, draft string) Model {
	ta := newTextarea("Share what you know...", draft)
	return Model{
		mode:       inlineMode,
		purpose:    PurposeAnswer,
		questionID: questionID,
		title:      question,
		textarea:   ta,
		initial:    draft,
	}
}

// NewAnswerEditor answers questionID in $EDITOR.
func NewAnswerEditor(ed *editor.EnvEditor, questionID int64, question, draft string) Model {
	return Model{
		mode:       editorMode,
		purpose:    PurposeAnswer,
		questionID: questionID,
		title:      question,
		editor:     ed,
		initial:    draft,
		status:     "Opening editor...",
	}
}

// NewProfileInline edits the profile text inline.
func NewProfileInline(current string) Model {
	return Model{
		mode:     inlineMode,
		purpose:  PurposeProfile,
		title:    "Profile",
		textarea: newTextarea("Tell others about yourself", current),
		initial:  current,
	}
}

// NewProfileEditor edits the profile text in $EDITOR.
func NewProfileEditor(ed *editor.EnvEditor, current string) Model {
	return Model{
		mode:    editorMode,
		purpose: PurposeProfile,
		title:   "Profile",
		editor:  ed,
		initial: current,
		status:  "Opening editor...",
	}
}

func newTextarea(placeholder, value string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 1000
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.SetValue(value)
	ta.Focus()
	return ta
}

// Purpose reports what the composer edits.
func (m Model) Purpose() Purpose { return m.purpose }

// QuestionID is the question being answered.
func (m Model) QuestionID() int64 { return m.questionID }

// Value returns the current inline text.
func (m Model) Value() string { return m.textarea.Value() }

// Inline reports whether the composer uses the inline textarea.
func (m Model) Inline() bool { return m.mode == inlineMode }

// SetBusy blocks input while a submission is in flight.
func (m *Model) SetBusy(busy bool, status string) {
	m.busy = busy
	m.status = status
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.ExecProcess to
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	subject := "your answer"
	if m.purpose == PurposeProfile {
		subject = "your profile"
	}
	cmd, tmpPath, err := m.editor.Cmd(subject, m.initial)
	if err != nil {
		return emit(CancelMsg{Purpose: m.purpose, Err: fmt.Errorf("preparing editor: %w", err)})
	}
	m.tmpPath = tmpPath

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, emit(CancelMsg{Purpose: m.purpose, Err: fmt.Errorf("editor: %w", msg.err)})
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, emit(CancelMsg{Purpose: m.purpose, Err: err})
		}
		if content == m.initial && m.purpose == PurposeProfile {
			return m, emit(CancelMsg{Purpose: m.purpose})
		}
		if content == "" && m.purpose == PurposeAnswer {
			return m, emit(CancelMsg{Purpose: m.purpose})
		}
		m.status = "Sending..."
		return m, emit(m.submit(content))

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}
		if m.busy {
			return m, nil
		}

		if key.Matches(msg, cancelKey) {
			return m, emit(CancelMsg{Purpose: m.purpose})
		}
		switch msg.String() {
		case "ctrl+d", "ctrl+s":
			return m, emit(m.submit(m.textarea.Value()))
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) submit(content string) SubmitMsg {
	return SubmitMsg{Purpose: m.purpose, QuestionID: m.questionID, Content: content}
}

// emit wraps a message into a tea.Cmd for immediate delivery.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
