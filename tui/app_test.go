package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"

	"github.com/CrestNiraj12/terminalqa/app"
	"github.com/CrestNiraj12/terminalqa/domain"
	"github.com/CrestNiraj12/terminalqa/infra/auth"
	authpane "github.com/CrestNiraj12/terminalqa/tui/auth"
	"github.com/CrestNiraj12/terminalqa/tui/compose"
)

type stubContent struct {
	all      []domain.Question
	found    []domain.Question
	fetches  int
	keywords []string
}

func (s *stubContent) FetchAll(context.Context) ([]domain.Question, error) {
	s.fetches++
	return s.all, nil
}

func (s *stubContent) Search(_ context.Context, kw string) ([]domain.Question, error) {
	s.keywords = append(s.keywords, kw)
	return s.found, nil
}

type stubAuth struct {
	token     string
	err       error
	registers int
}

func (s *stubAuth) Login(context.Context, string, string) (string, error) { return s.token, s.err }
func (s *stubAuth) Register(context.Context, string, string) error {
	s.registers++
	return s.err
}

type stubWrites struct {
	answers []string
	ratings []domain.Target
	err     error
}

func (s *stubWrites) CreateAnswer(_ context.Context, _ int64, content string) error {
	s.answers = append(s.answers, content)
	return s.err
}

func (s *stubWrites) CreateRating(_ context.Context, t domain.Target) error {
	s.ratings = append(s.ratings, t)
	return s.err
}

type stubProfiles struct {
	text  string
	saved []string
}

func (s *stubProfiles) Profile(context.Context) (string, error) { return s.text, nil }
func (s *stubProfiles) UpdateProfile(_ context.Context, p string) error {
	s.saved = append(s.saved, p)
	return nil
}

type harness struct {
	store    *auth.MemoryStore
	content  *stubContent
	auth     *stubAuth
	writes   *stubWrites
	profiles *stubProfiles
}

func questions(q2Likes int) []domain.Question {
	return []domain.Question{
		{ID: 1, Text: "What is a goroutine?"},
		{ID: 2, Text: "Why channels?", Likes: q2Likes, Answers: []domain.Answer{{ID: 9, Content: "Share memory by communicating", Likes: 1}}},
	}
}

func newHarness(t *testing.T, loggedIn bool) (*harness, App) {
	t.Helper()
	h := &harness{
		store:    auth.NewMemoryStore(),
		content:  &stubContent{all: questions(3)},
		auth:     &stubAuth{token: "T1"},
		writes:   &stubWrites{},
		profiles: &stubProfiles{text: "gopher"},
	}
	if loggedIn {
		if err := h.store.Set(domain.Credential{Token: "T0", DisplayName: "alice"}); err != nil {
			t.Fatalf("seed store failed: %v", err)
		}
	}
	repo := app.NewRepository(h.content, nil)
	a := NewApp(Deps{
		Session:   app.NewSession(h.store, h.auth, repo, nil),
		Repo:      repo,
		Mutations: app.NewCoordinator(h.writes, repo, nil),
		Profile:   app.NewProfileEditor(h.profiles),
	})
	a.board.SetSize(120, 200)
	return h, a
}

// drive runs cmd and feeds the resulting application messages back into the
// model until nothing is left. Timer-driven messages are dropped.
func drive(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	var m tea.Model = a
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case loginDoneMsg, registerDoneMsg, loadedMsg, mutationDoneMsg, profileLoadedMsg, profileSavedMsg,
			authpane.SubmitMsg, authpane.ToggleMsg, authpane.LeaveMsg, compose.SubmitMsg, compose.CancelMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m.(App)
}

func press(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	for _, k := range keys {
		m, cmd := a.Update(k)
		a = drive(t, m.(App), cmd)
	}
	return a
}

func runes(s string) []tea.KeyMsg {
	out := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlD = tea.KeyMsg{Type: tea.KeyCtrlD}
	ctrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
)

func TestApp_AnonymousStartDoesNotLoad(t *testing.T) {
	h, a := newHarness(t, false)
	a = drive(t, a, a.Init())
	if h.content.fetches != 0 {
		t.Fatalf("anonymous start must not fetch, got %d", h.content.fetches)
	}
	if a.focus != focusAuth || !strings.Contains(a.View(), "Log in") {
		t.Fatalf("expected login pane focused")
	}
}

func TestApp_StoredCredentialLoadsOnStart(t *testing.T) {
	h, a := newHarness(t, true)
	a = drive(t, a, a.Init())
	if h.content.fetches != 1 {
		t.Fatalf("expected one load on start, got %d", h.content.fetches)
	}
	out := a.View()
	if !strings.Contains(out, "alice") || !strings.Contains(out, "Rate question (3)") {
		t.Fatalf("expected authenticated board:\n%s", out)
	}
	if strings.Index(out, "Why channels?") > strings.Index(out, "What is a goroutine?") {
		t.Fatalf("newest question must be first")
	}
}

func TestApp_LoginFlow(t *testing.T) {
	h, a := newHarness(t, false)
	keys := append(runes("alice"), tab)
	keys = append(keys, runes("secret")...)
	keys = append(keys, enter)
	a = press(t, a, keys...)

	cred, ok := h.store.Get()
	if !ok || cred.Token != "T1" || cred.DisplayName != "alice" {
		t.Fatalf("unexpected stored credential: %+v ok=%v", cred, ok)
	}
	if h.content.fetches != 1 {
		t.Fatalf("login must trigger exactly one load, got %d", h.content.fetches)
	}
	if a.focus != focusBoard || !strings.Contains(a.status, "alice") {
		t.Fatalf("unexpected state after login: focus=%v status=%q", a.focus, a.status)
	}
	if !strings.Contains(a.View(), "Rate question (3)") {
		t.Fatalf("expected rating controls after login")
	}
}

func TestApp_LoginShowsLoadingUntilBoardArrives(t *testing.T) {
	_, a := newHarness(t, false)
	m, cmd := a.Update(authpane.SubmitMsg{Form: authpane.FormLogin, Username: "alice", Password: "secret"})
	a = m.(App)
	if !a.board.Loading() {
		t.Fatalf("login should show the loading indicator while the board reloads")
	}
	a = drive(t, a, cmd)
	if a.board.Loading() || !strings.Contains(a.View(), "Why channels?") {
		t.Fatalf("board should replace the indicator after login")
	}
}

func TestApp_FailedLoginStopsLoading(t *testing.T) {
	h, a := newHarness(t, false)
	h.auth.err = &domain.RejectionError{Op: "login", Status: 401}
	m, cmd := a.Update(authpane.SubmitMsg{Form: authpane.FormLogin, Username: "alice", Password: "nope"})
	a = drive(t, m.(App), cmd)
	if a.board.Loading() {
		t.Fatalf("a failed login must not leave the indicator running")
	}
	if a.status != app.MsgLoginFailed {
		t.Fatalf("unexpected status: %q", a.status)
	}
}

func TestApp_LoginFailureShowsDetail(t *testing.T) {
	h, a := newHarness(t, false)
	h.auth.err = &domain.RejectionError{Op: "login", Status: 401, Detail: "Incorrect username or password"}
	keys := append(runes("alice"), tab)
	keys = append(keys, runes("nope")...)
	a = press(t, a, append(keys, enter)...)

	if a.status != "Incorrect username or password" || !a.failed {
		t.Fatalf("unexpected status: %q", a.status)
	}
	if _, ok := h.store.Get(); ok {
		t.Fatalf("failed login must not store a credential")
	}
	if a.focus != focusAuth {
		t.Fatalf("login pane should stay focused")
	}
}

func TestApp_RegisterReturnsToLogin(t *testing.T) {
	h, a := newHarness(t, false)
	a = press(t, a, ctrlR)
	if a.deps.Session.Pane() != app.PaneRegister || a.login.Form() != authpane.FormRegister {
		t.Fatalf("expected register pane")
	}
	keys := append(runes("carol"), tab)
	keys = append(keys, runes("pw")...)
	a = press(t, a, append(keys, enter)...)

	if h.auth.registers != 1 || a.status != app.MsgRegistered {
		t.Fatalf("unexpected register result: registers=%d status=%q", h.auth.registers, a.status)
	}
	if a.deps.Session.Pane() != app.PaneLogin || a.login.Form() != authpane.FormLogin {
		t.Fatalf("expected login pane after registration")
	}
	if _, ok := h.store.Get(); ok {
		t.Fatalf("registration must not log in")
	}
}

func TestApp_RatingSuccessRefreshesOnce(t *testing.T) {
	h, a := newHarness(t, true)
	a = drive(t, a, a.Init())

	h.content.all = questions(4)
	a = press(t, a, enter)

	if len(h.writes.ratings) != 1 || h.writes.ratings[0] != (domain.Target{Type: domain.TargetQuestion, ID: 2}) {
		t.Fatalf("unexpected ratings: %+v", h.writes.ratings)
	}
	if h.content.fetches != 2 {
		t.Fatalf("expected one refresh after the rating, got %d fetches", h.content.fetches)
	}
	if !strings.Contains(a.View(), "Rate question (4)") {
		t.Fatalf("board must show the refreshed count")
	}
}

func TestApp_RatingFailureLeavesBoard(t *testing.T) {
	h, a := newHarness(t, true)
	a = drive(t, a, a.Init())
	before := a.board.View()

	h.writes.err = &domain.RejectionError{Op: "rate", Status: 400, Detail: "Already rated"}
	h.content.all = questions(99)
	a = press(t, a, enter)

	if h.content.fetches != 1 {
		t.Fatalf("failed rating must not refresh, got %d fetches", h.content.fetches)
	}
	if a.status != "Already rated" {
		t.Fatalf("unexpected status: %q", a.status)
	}
	if a.board.View() != before {
		t.Fatalf("board must be unchanged after a failed rating")
	}
}

func TestApp_AnswerFlow(t *testing.T) {
	h, a := newHarness(t, true)
	a = drive(t, a, a.Init())

	// Controls: Q2 like, A1 like, Q2 answer box.
	a = press(t, a, runes("jj")...)
	a = press(t, a, enter)
	if a.focus != focusCompose || a.compose.QuestionID() != 2 {
		t.Fatalf("expected answer composer for question 2")
	}

	a = press(t, a, ctrlD)
	if a.status != app.MsgNeedAnswer || len(h.writes.answers) != 0 {
		t.Fatalf("empty answer must not be sent: status=%q answers=%v", a.status, h.writes.answers)
	}

	h.writes.err = &domain.RejectionError{Op: "answer", Status: 401, Detail: "Not authenticated"}
	a = press(t, a, runes("use select")...)
	a = press(t, a, ctrlD)
	if a.status != "Not authenticated" || a.focus != focusCompose || a.compose.Value() != "use select" {
		t.Fatalf("failed answer must keep the draft: status=%q value=%q", a.status, a.compose.Value())
	}

	h.writes.err = nil
	a = press(t, a, ctrlD)
	if a.focus != focusBoard || a.status != "Answer posted." {
		t.Fatalf("unexpected state after answer: focus=%v status=%q", a.focus, a.status)
	}
	if got := h.writes.answers; len(got) != 2 || got[1] != "use select" {
		t.Fatalf("unexpected answers sent: %v", got)
	}
	if h.content.fetches != 2 {
		t.Fatalf("expected one refresh after the answer, got %d", h.content.fetches)
	}
}

func TestApp_SearchIsReducedAndRefreshReturns(t *testing.T) {
	h, a := newHarness(t, true)
	a = drive(t, a, a.Init())
	h.content.found = []domain.Question{{ID: 2, Text: "Why channels?", Likes: 3}}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if a.focus != focusSearch {
		t.Fatalf("expected search focus")
	}
	a = press(t, a, runes("chan")...)
	a = press(t, a, enter)

	if len(h.content.keywords) != 1 || h.content.keywords[0] != "chan" {
		t.Fatalf("unexpected search keywords: %v", h.content.keywords)
	}
	view := a.board.Current()
	if !view.Reduced || len(view.Nodes) != 1 || strings.Contains(a.View(), "Rate") {
		t.Fatalf("search results must render reduced")
	}

	a = press(t, a, runes("r")...)
	if a.board.Current().Reduced || h.content.fetches != 2 {
		t.Fatalf("refresh must return to the full list")
	}
}

func TestApp_SearchCancelReturnsToBoard(t *testing.T) {
	h, a := newHarness(t, true)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	a = press(t, a, runes("chan")...)
	a = press(t, a, esc)
	if a.focus != focusBoard || len(h.content.keywords) != 0 {
		t.Fatalf("esc must leave search without a request: focus=%v keywords=%v", a.focus, h.content.keywords)
	}
}

func TestApp_EmptySearchIsRejectedLocally(t *testing.T) {
	h, a := newHarness(t, true)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, enter)
	if a.status != app.MsgNeedKeyword || len(h.content.keywords) != 0 {
		t.Fatalf("empty search must not reach the backend")
	}
}

func TestApp_LogoutClearsEverything(t *testing.T) {
	h, a := newHarness(t, true)
	a = drive(t, a, a.Init())
	a = press(t, a, runes("x")...)

	if _, ok := h.store.Get(); ok {
		t.Fatalf("logout must clear the credential")
	}
	if !a.board.Current().Empty() {
		t.Fatalf("logout must empty the board immediately")
	}
	if a.status != app.MsgLoggedOut || a.focus != focusAuth {
		t.Fatalf("unexpected state after logout: status=%q focus=%v", a.status, a.focus)
	}
	if strings.Contains(a.View(), "Why channels?") {
		t.Fatalf("no questions may remain on screen")
	}
}

func TestApp_SupersededLoadIsDropped(t *testing.T) {
	_, a := newHarness(t, true)
	m, _ := a.Update(loadedMsg{op: app.OpLoad, err: app.ErrSuperseded})
	if got := m.(App); got.status != "" {
		t.Fatalf("superseded results must be silent, got %q", got.status)
	}
}

func TestApp_SupersededAnswerRefreshKeepsFocus(t *testing.T) {
	_, a := newHarness(t, true)
	a.focus = focusCompose
	m, _ := a.Update(mutationDoneMsg{op: app.OpAnswer, refresh: app.Refresh{Err: app.ErrSuperseded}})
	got := m.(App)
	if got.focus != focusCompose || got.status != "" {
		t.Fatalf("a superseded refresh must leave the UI alone: focus=%v status=%q", got.focus, got.status)
	}
}

func TestApp_AnonymousBrowsing(t *testing.T) {
	h, a := newHarness(t, false)
	a = press(t, a, esc)
	a = press(t, a, runes("r")...)
	if h.content.fetches != 1 {
		t.Fatalf("anonymous refresh should load, got %d", h.content.fetches)
	}
	out := a.View()
	if !strings.Contains(out, "Likes: 3") || strings.Contains(out, "Rate") {
		t.Fatalf("anonymous board must use static labels:\n%s", out)
	}
	a = press(t, a, enter)
	if len(h.writes.ratings) != 0 {
		t.Fatalf("anonymous users cannot rate")
	}
}

func TestApp_ProfileInlineSave(t *testing.T) {
	h, a := newHarness(t, true)
	a = press(t, a, runes("p")...)
	if a.focus != focusCompose || a.compose.Value() != "gopher" {
		t.Fatalf("expected profile composer prefilled, got %q", a.compose.Value())
	}
	a = press(t, a, runes("!")...)
	a = press(t, a, ctrlD)
	if a.status != app.MsgProfileSaved || a.focus != focusBoard {
		t.Fatalf("unexpected profile save state: %q", a.status)
	}
	if len(h.profiles.saved) != 1 || h.profiles.saved[0] != "gopher!" {
		t.Fatalf("unexpected saved profile: %v", h.profiles.saved)
	}
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(90 * time.Minute)),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if got := sessionExpiry(tok, now); got != "session expires in 1h30m0s" {
		t.Fatalf("unexpected expiry text: %q", got)
	}
	if got := sessionExpiry(tok, now.Add(2*time.Hour)); !strings.Contains(got, "expired") {
		t.Fatalf("expected expired text, got %q", got)
	}
	if sessionExpiry("opaque", now) != "" {
		t.Fatalf("opaque tokens show nothing")
	}
}
