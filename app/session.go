package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// Mode is the UI mode derived from the credential store.
type Mode int

const (
	ModeAnonymous Mode = iota
	ModeAuthenticated
)

func (m Mode) String() string {
	if m == ModeAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Pane is the session area currently visible.
type Pane int

const (
	PaneLogin Pane = iota
	PaneRegister
	PaneUser
)

// Refresh is the outcome of the read that follows a confirmed write or a
// login. Err is a failure of that read only; the write itself succeeded.
type Refresh struct {
	Snapshot domain.Snapshot
	Err      error
}

// Session tracks whether a credential exists and which pane is visible.
type Session struct {
	store   CredentialStore
	auth    AuthService
	refresh Refresher
	clear   func()
	log     *zap.Logger

	mu   sync.Mutex
	pane Pane
}

// NewSession derives the initial state from store. repo is refreshed after
// login and cleared on logout.
func NewSession(store CredentialStore, auth AuthService, repo *Repository, log *zap.Logger) *Session {
	s := newSession(store, auth, repo, log)
	s.clear = repo.Clear
	return s
}

func newSession(store CredentialStore, auth AuthService, refresh Refresher, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		store:   store,
		auth:    auth,
		refresh: refresh,
		clear:   func() {},
		log:     log,
		pane:    PaneLogin,
	}
	if _, ok := store.Get(); ok {
		s.pane = PaneUser
	}
	return s
}

// Mode reports Authenticated iff the store holds a complete credential.
func (s *Session) Mode() Mode {
	if _, ok := s.store.Get(); ok {
		return ModeAuthenticated
	}
	return ModeAnonymous
}

// Identity returns the display name of the current session.
func (s *Session) Identity() (string, bool) {
	cred, ok := s.store.Get()
	if !ok {
		return "", false
	}
	return cred.DisplayName, true
}

// Token returns the current access token.
func (s *Session) Token() (string, bool) {
	cred, ok := s.store.Get()
	if !ok {
		return "", false
	}
	return cred.Token, true
}

// Pane returns the visible session pane.
func (s *Session) Pane() Pane {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pane
}

// ShowRegister switches to the registration form. No-op when authenticated.
func (s *Session) ShowRegister() {
	s.setAnonymousPane(PaneRegister)
}

// ShowLogin switches back to the login form. No-op when authenticated.
func (s *Session) ShowLogin() {
	s.setAnonymousPane(PaneLogin)
}

func (s *Session) setAnonymousPane(p Pane) {
	if s.Mode() == ModeAuthenticated {
		return
	}
	s.mu.Lock()
	s.pane = p
	s.mu.Unlock()
}

// Start loads the collection when a stored credential already exists.
func (s *Session) Start(ctx context.Context) (Refresh, bool) {
	if s.Mode() != ModeAuthenticated {
		return Refresh{}, false
	}
	snap, err := s.refresh.LoadAll(ctx)
	return Refresh{Snapshot: snap, Err: err}, true
}

// Login exchanges username and password for a token, stores the credential
// and triggers one refresh. On failure the session state is unchanged.
func (s *Session) Login(ctx context.Context, username, password string) (Refresh, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Refresh{}, domain.Invalid("credentials", MsgNeedCredentials)
	}

	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.log.Debug("login failed", zap.String("username", username), zap.Error(err))
		return Refresh{}, err
	}

	if err := s.store.Set(domain.Credential{Token: token, DisplayName: username}); err != nil {
		return Refresh{}, fmt.Errorf("storing credential: %w", err)
	}
	s.mu.Lock()
	s.pane = PaneUser
	s.mu.Unlock()
	s.log.Debug("logged in", zap.String("username", username))

	snap, err := s.refresh.LoadAll(ctx)
	return Refresh{Snapshot: snap, Err: err}, nil
}

// Register creates an account and returns to the login form on success.
func (s *Session) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Invalid("credentials", MsgNeedCredentials)
	}

	if err := s.auth.Register(ctx, username, password); err != nil {
		s.log.Debug("registration failed", zap.String("username", username), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.pane = PaneLogin
	s.mu.Unlock()
	return nil
}

// Logout clears the credential and the rendered content together.
func (s *Session) Logout() error {
	err := s.store.Clear()
	s.clear()
	s.mu.Lock()
	s.pane = PaneLogin
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	s.log.Debug("logged out")
	return nil
}
