package app

import (
	"context"
	"sync"

	"github.com/CrestNiraj12/terminalqa/domain"
)

type memStore struct {
	mu   sync.Mutex
	cred domain.Credential
	ok   bool
}

func (s *memStore) Get() (domain.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, s.ok
}

func (s *memStore) Set(c domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred, s.ok = c, true
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred, s.ok = domain.Credential{}, false
	return nil
}

type fakeContent struct {
	all       []domain.Question
	found     []domain.Question
	err       error
	fetches   int
	searches  int
	keywords  []string
	beforeRet func()
}

func (f *fakeContent) FetchAll(context.Context) ([]domain.Question, error) {
	f.fetches++
	if f.beforeRet != nil {
		f.beforeRet()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

func (f *fakeContent) Search(_ context.Context, keyword string) ([]domain.Question, error) {
	f.searches++
	f.keywords = append(f.keywords, keyword)
	if f.err != nil {
		return nil, f.err
	}
	return f.found, nil
}

type fakeAuth struct {
	token       string
	loginErr    error
	registerErr error
	logins      int
	registers   int
}

func (f *fakeAuth) Login(context.Context, string, string) (string, error) {
	f.logins++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuth) Register(context.Context, string, string) error {
	f.registers++
	return f.registerErr
}

type countingRefresher struct {
	snap  domain.Snapshot
	err   error
	calls int
}

func (r *countingRefresher) LoadAll(context.Context) (domain.Snapshot, error) {
	r.calls++
	return r.snap, r.err
}

type fakeWrites struct {
	answers []string
	ratings []domain.Target
	err     error
}

func (f *fakeWrites) CreateAnswer(_ context.Context, _ int64, content string) error {
	f.answers = append(f.answers, content)
	return f.err
}

func (f *fakeWrites) CreateRating(_ context.Context, t domain.Target) error {
	f.ratings = append(f.ratings, t)
	return f.err
}

type fakeProfiles struct {
	text    string
	getErr  error
	putErr  error
	updated []string
}

func (f *fakeProfiles) Profile(context.Context) (string, error) {
	return f.text, f.getErr
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, p string) error {
	f.updated = append(f.updated, p)
	return f.putErr
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Text: "Q1", Likes: 0},
		{ID: 2, Text: "Q2", Likes: 3, Answers: []domain.Answer{{ID: 9, Content: "A1", Likes: 1}}},
	}
}
