package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalqa/app"
	"github.com/CrestNiraj12/terminalqa/domain"
	"github.com/CrestNiraj12/terminalqa/infra/auth"
	"github.com/CrestNiraj12/terminalqa/infra/editor"
	authpane "github.com/CrestNiraj12/terminalqa/tui/auth"
	"github.com/CrestNiraj12/terminalqa/tui/board"
	"github.com/CrestNiraj12/terminalqa/tui/common"
	"github.com/CrestNiraj12/terminalqa/tui/compose"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Session   *app.Session
	Repo      *app.Repository
	Mutations *app.Coordinator
	Profile   *app.ProfileEditor
	Editor    *editor.EnvEditor
	Log       *zap.Logger
}

type focus int

const (
	focusBoard focus = iota
	focusAuth
	focusSearch
	focusCompose
)

// actionHandler runs when the user activates a rendered control.
type actionHandler func(a App, c app.Control) (App, tea.Cmd)

// actions binds every actionable control to its behaviour.
var actions = map[app.Action]actionHandler{
	app.ActionRateQuestion: rate,
	app.ActionRateAnswer:   rate,
	app.ActionSubmitAnswer: openAnswer,
}

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps    Deps
	focus   focus
	board   board.Model
	login   authpane.Model
	search  textinput.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Profile saved.")
	failed  bool   // Status describes a failure
	now     func() time.Time
	width   int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "keyword"
	search.CharLimit = 100

	a := App{
		deps:   deps,
		board:  board.New(),
		login:  authpane.New(),
		search: search,
		keys:   common.DefaultKeyMap(),
		now:    time.Now,
	}
	if deps.Session.Mode() == app.ModeAuthenticated {
		a.login.Blur()
		a.board.SetLoading(true)
	} else {
		a.focus = focusAuth
	}
	return a
}

// Init loads the collection when a stored credential already exists.
func (a App) Init() tea.Cmd {
	if a.deps.Session.Mode() != app.ModeAuthenticated {
		return textinput.Blink
	}
	return tea.Batch(a.board.Tick(), a.startCmd())
}

func (a App) startCmd() tea.Cmd {
	session := a.deps.Session
	return func() tea.Msg {
		res, _ := session.Start(context.Background())
		return loadedMsg{op: app.OpLoad, snap: res.Snapshot, err: res.Err}
	}
}

// Update handles messages and routes to the focused sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.board.SetSize(msg.Width, msg.Height-8)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.board, cmd = a.board.Update(msg)
		return a, cmd

	case authpane.SubmitMsg:
		a.login.SetBusy(true)
		a.setStatus("Working...", false)
		if msg.Form == authpane.FormRegister {
			return a, a.registerCmd(msg.Username, msg.Password)
		}
		// A successful login reloads the board inside the same command.
		return a, tea.Batch(a.board.SetLoading(true), a.loginCmd(msg.Username, msg.Password))

	case authpane.ToggleMsg:
		if a.deps.Session.Pane() == app.PaneRegister {
			a.deps.Session.ShowLogin()
			a.login.SetForm(authpane.FormLogin)
		} else {
			a.deps.Session.ShowRegister()
			a.login.SetForm(authpane.FormRegister)
		}
		a.setStatus("", false)
		return a, nil

	case authpane.LeaveMsg:
		a.login.Blur()
		a.focus = focusBoard
		return a, nil

	case loginDoneMsg:
		a.login.SetBusy(false)
		if msg.err != nil {
			a.board.SetLoading(false)
			a.setStatus(app.Notice(app.OpLogin, msg.err), true)
			return a, nil
		}
		a.login.Reset()
		a.login.Blur()
		a.focus = focusBoard
		name, _ := a.deps.Session.Identity()
		a.setStatus("Logged in as "+name+".", false)
		if msg.refresh.Err != nil {
			// Controls depend on the mode even when the reload failed.
			a.board.SetView(app.Render(a.deps.Repo.Current(), app.ModeAuthenticated))
		}
		return a.applyRefresh(msg.refresh), nil

	case registerDoneMsg:
		a.login.SetBusy(false)
		if msg.err != nil {
			a.setStatus(app.Notice(app.OpRegister, msg.err), true)
			return a, nil
		}
		a.login.Reset()
		a.login.SetForm(authpane.FormLogin)
		a.setStatus(app.MsgRegistered, false)
		return a, a.login.Focus()

	case loadedMsg:
		if errors.Is(msg.err, app.ErrSuperseded) {
			return a, nil
		}
		if msg.err != nil {
			a.board.SetLoading(false)
			a.setStatus(app.Notice(msg.op, msg.err), true)
			return a, nil
		}
		a.board.SetView(app.Render(msg.snap, a.deps.Session.Mode()))
		return a, nil

	case compose.SubmitMsg:
		a.compose.SetBusy(true, "Sending...")
		if msg.Purpose == compose.PurposeProfile {
			return a, a.saveProfileCmd(msg.Content)
		}
		return a, a.answerCmd(msg)

	case compose.CancelMsg:
		a.focus = focusBoard
		if msg.Err != nil {
			a.deps.Log.Warn("composer closed", zap.Error(msg.Err))
			a.setStatus("Error: "+msg.Err.Error(), true)
		} else {
			a.setStatus("Cancelled.", false)
		}
		return a, nil

	case mutationDoneMsg:
		return a.handleMutation(msg)

	case profileLoadedMsg:
		a.focus = focusCompose
		a.setStatus("", false)
		if msg.useEditor {
			a.compose = compose.NewProfileEditor(a.deps.Editor, msg.text)
		} else {
			a.compose = compose.NewProfileInline(msg.text)
		}
		return a, a.compose.Init()

	case profileSavedMsg:
		if msg.err != nil {
			a.setStatus(app.Notice(app.OpProfileSave, msg.err), true)
			if a.compose.Inline() {
				a.compose.SetBusy(false, "")
				return a, nil
			}
			a.focus = focusBoard
			return a, nil
		}
		a.focus = focusBoard
		a.setStatus(app.MsgProfileSaved, false)
		return a, nil
	}

	if a.focus == focusCompose {
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.focus {
	case focusAuth:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case focusCompose:
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		return a, cmd

	case focusSearch:
		if key.Matches(msg, a.keys.Cancel) {
			a.search.Blur()
			a.focus = focusBoard
			return a, nil
		}
		switch msg.String() {
		case "enter":
			keyword := a.search.Value()
			a.search.Blur()
			a.focus = focusBoard
			return a.runSearch(keyword)
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}

	authenticated := a.deps.Session.Mode() == app.ModeAuthenticated
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Refresh):
		a.setStatus("", false)
		return a, tea.Batch(a.board.SetLoading(true), a.loadCmd())

	case key.Matches(msg, a.keys.Search):
		a.focus = focusSearch
		a.search.Reset()
		return a, a.search.Focus()

	case key.Matches(msg, a.keys.Activate):
		c, ok := a.board.Selected()
		if !ok {
			return a, nil
		}
		if h, ok := actions[c.Action]; ok {
			return h(a, c)
		}
		return a, nil

	case key.Matches(msg, a.keys.AnswerEditor):
		c, ok := a.board.Selected()
		if !ok || c.Action != app.ActionSubmitAnswer {
			return a, nil
		}
		a.focus = focusCompose
		a.compose = compose.NewAnswerEditor(a.deps.Editor, c.Target.ID, a.questionText(c.Target.ID), "")
		return a, a.compose.Init()

	case key.Matches(msg, a.keys.Profile), key.Matches(msg, a.keys.ProfileEditor):
		if !authenticated {
			return a, nil
		}
		a.setStatus("Loading profile...", false)
		return a, a.openProfileCmd(key.Matches(msg, a.keys.ProfileEditor))

	case key.Matches(msg, a.keys.Login):
		if authenticated {
			return a, nil
		}
		a.focus = focusAuth
		return a, a.login.Focus()

	case key.Matches(msg, a.keys.Logout):
		if !authenticated {
			return a, nil
		}
		return a.logout()
	}

	var cmd tea.Cmd
	a.board, cmd = a.board.Update(msg)
	return a, cmd
}

func rate(a App, c app.Control) (App, tea.Cmd) {
	a.setStatus("Rating...", false)
	coord := a.deps.Mutations
	return a, func() tea.Msg {
		res, err := coord.SubmitRating(context.Background(), c.Target)
		return mutationDoneMsg{op: app.OpRate, refresh: res, err: err}
	}
}

func openAnswer(a App, c app.Control) (App, tea.Cmd) {
	a.focus = focusCompose
	a.setStatus("", false)
	a.compose = compose.NewAnswerInline(c.Target.ID, a.questionText(c.Target.ID), "")
	return a, a.compose.Init()
}

func (a App) handleMutation(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setStatus(app.Notice(msg.op, msg.err), true)
		if msg.op == app.OpAnswer {
			// Keep the typed text for another attempt.
			a.focus = focusCompose
			if a.compose.Inline() {
				a.compose.SetBusy(false, "")
			} else {
				a.compose = compose.NewAnswerInline(msg.draft.QuestionID, a.questionText(msg.draft.QuestionID), msg.draft.Content)
				return a, a.compose.Init()
			}
		}
		return a, nil
	}

	if errors.Is(msg.refresh.Err, app.ErrSuperseded) {
		return a, nil
	}
	if msg.op == app.OpAnswer {
		a.focus = focusBoard
		a.setStatus("Answer posted.", false)
	} else {
		a.setStatus("", false)
	}
	return a.applyRefresh(msg.refresh), nil
}

// applyRefresh redraws the board from a refresh that followed a confirmed
// write or login. A failed refresh only reports.
func (a App) applyRefresh(r app.Refresh) App {
	if errors.Is(r.Err, app.ErrSuperseded) {
		return a
	}
	if r.Err != nil {
		a.board.SetLoading(false)
		a.setStatus(app.Notice(app.OpLoad, r.Err), true)
		return a
	}
	a.board.SetView(app.Render(r.Snapshot, a.deps.Session.Mode()))
	return a
}

func (a App) logout() (tea.Model, tea.Cmd) {
	err := a.deps.Session.Logout()
	a.board.Clear()
	a.focus = focusAuth
	a.login.Reset()
	a.login.SetForm(authpane.FormLogin)
	if err != nil {
		a.deps.Log.Error("logout", zap.Error(err))
		a.setStatus("Error: "+err.Error(), true)
	} else {
		a.setStatus(app.MsgLoggedOut, false)
	}
	return a, a.login.Focus()
}

func (a App) runSearch(keyword string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(keyword) == "" {
		a.setStatus(app.MsgNeedKeyword, true)
		return a, nil
	}
	a.setStatus("", false)
	repo := a.deps.Repo
	return a, tea.Batch(a.board.SetLoading(true), func() tea.Msg {
		snap, err := repo.Search(context.Background(), keyword)
		return loadedMsg{op: app.OpSearch, snap: snap, err: err}
	})
}

func (a App) loadCmd() tea.Cmd {
	repo := a.deps.Repo
	return func() tea.Msg {
		snap, err := repo.LoadAll(context.Background())
		return loadedMsg{op: app.OpLoad, snap: snap, err: err}
	}
}

func (a App) loginCmd(username, password string) tea.Cmd {
	session := a.deps.Session
	return func() tea.Msg {
		res, err := session.Login(context.Background(), username, password)
		return loginDoneMsg{refresh: res, err: err}
	}
}

func (a App) registerCmd(username, password string) tea.Cmd {
	session := a.deps.Session
	return func() tea.Msg {
		return registerDoneMsg{err: session.Register(context.Background(), username, password)}
	}
}

func (a App) answerCmd(sub compose.SubmitMsg) tea.Cmd {
	coord := a.deps.Mutations
	return func() tea.Msg {
		res, err := coord.SubmitAnswer(context.Background(), sub.QuestionID, sub.Content)
		return mutationDoneMsg{op: app.OpAnswer, draft: sub, refresh: res, err: err}
	}
}

func (a App) openProfileCmd(useEditor bool) tea.Cmd {
	profile, log := a.deps.Profile, a.deps.Log
	return func() tea.Msg {
		text, err := profile.Open(context.Background())
		if err != nil {
			log.Debug("profile fetch failed", zap.Error(err))
		}
		return profileLoadedMsg{text: text, useEditor: useEditor}
	}
}

func (a App) saveProfileCmd(text string) tea.Cmd {
	profile := a.deps.Profile
	return func() tea.Msg {
		return profileSavedMsg{err: profile.Save(context.Background(), text)}
	}
}

func (a App) questionText(id int64) string {
	for _, n := range a.board.Current().Nodes {
		if n.QuestionID == id {
			return n.Text
		}
	}
	return ""
}

func (a *App) setStatus(s string, failed bool) {
	a.status = s
	a.failed = failed
}

// View renders the header, the focused sub-view and the status line.
func (a App) View() string {
	if a.focus == focusCompose {
		return a.compose.View() + a.statusLine()
	}

	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n")

	if a.deps.Session.Mode() == app.ModeAnonymous {
		b.WriteString(a.login.View())
		b.WriteString("\n")
	}
	if a.focus == focusSearch {
		b.WriteString(" " + a.search.View() + "\n")
	}
	b.WriteString(a.board.View())
	b.WriteString("\n")
	b.WriteString(common.StatusBarStyle.Render(a.hints()))
	b.WriteString(a.statusLine())
	return b.String()
}

func (a App) header() string {
	title := common.AppTitleStyle.Render(domain.AppTitle)
	name, ok := a.deps.Session.Identity()
	if !ok {
		return title + common.TaglineStyle.Render("browsing anonymously")
	}
	out := title + common.IdentityStyle.Render(name)
	if token, ok := a.deps.Session.Token(); ok {
		out += common.TaglineStyle.Render(sessionExpiry(token, a.now()))
	}
	return out
}

// sessionExpiry describes when the stored token stops working. Opaque
// tokens have nothing to show.
func sessionExpiry(token string, now time.Time) string {
	claims, err := auth.ParseClaims(token)
	if err != nil || !claims.HasExpiry() {
		return ""
	}
	if claims.Expired(now) {
		return "session expired, log in again"
	}
	left := claims.ExpiresAt.Sub(now).Round(time.Minute)
	return fmt.Sprintf("session expires in %s", left)
}

func (a App) hints() string {
	switch a.focus {
	case focusAuth:
		return ""
	case focusSearch:
		return common.Hints("enter: search", "esc: cancel")
	}
	if a.deps.Session.Mode() == app.ModeAuthenticated {
		return common.Hints("j/k: move", "enter: rate/answer", "E: answer ($EDITOR)", "/: search", "r: refresh", "p/P: profile", "x: logout", "q: quit")
	}
	return common.Hints("j/k: move", "/: search", "r: refresh", "l: login", "q: quit")
}

func (a App) statusLine() string {
	if a.status == "" {
		return ""
	}
	if a.failed {
		return "\n" + common.ErrorStyle.Render(" "+a.status)
	}
	return "\n" + common.StatusBarStyle.Render(a.status)
}
