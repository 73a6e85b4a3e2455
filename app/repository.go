package app

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// ErrSuperseded is returned for a fetch that completed after the session it
// was started in ended. Callers drop the result silently.
var ErrSuperseded = errors.New("fetch superseded by session change")

// Refresher reloads the authoritative collection.
type Refresher interface {
	LoadAll(ctx context.Context) (domain.Snapshot, error)
}

// Repository fetches questions and keeps the last snapshot used for
// rendering. Every successful call replaces that snapshot wholesale.
type Repository struct {
	content ContentService
	log     *zap.Logger

	mu      sync.Mutex
	current domain.Snapshot
	gen     uint64
}

// NewRepository creates a Repository backed by content.
func NewRepository(content ContentService, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{content: content, log: log}
}

// LoadAll fetches the full collection, newest question first.
func (r *Repository) LoadAll(ctx context.Context) (domain.Snapshot, error) {
	gen := r.generation()

	questions, err := r.content.FetchAll(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	// Backend appends new questions, so reversing puts the newest on top.
	// Nested answers keep backend order.
	ordered := slices.Clone(questions)
	slices.Reverse(ordered)

	snap := domain.Snapshot{Kind: domain.SnapshotFull, Questions: ordered}
	if !r.replace(gen, snap) {
		return domain.Snapshot{}, ErrSuperseded
	}
	r.log.Debug("snapshot replaced", zap.String("kind", "full"), zap.Int("questions", len(ordered)))
	return snap, nil
}

// Search fetches questions matching keyword, in backend order.
func (r *Repository) Search(ctx context.Context, keyword string) (domain.Snapshot, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.Snapshot{}, domain.Invalid("keyword", MsgNeedKeyword)
	}
	gen := r.generation()

	questions, err := r.content.Search(ctx, keyword)
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap := domain.Snapshot{
		Kind:      domain.SnapshotSearch,
		Keyword:   keyword,
		Questions: slices.Clone(questions),
	}
	if !r.replace(gen, snap) {
		return domain.Snapshot{}, ErrSuperseded
	}
	r.log.Debug("snapshot replaced", zap.String("kind", "search"), zap.Int("questions", len(snap.Questions)))
	return snap, nil
}

// Current returns the last snapshot used for rendering.
func (r *Repository) Current() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Clear drops the current snapshot and invalidates fetches still in flight.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = domain.Snapshot{}
	r.gen++
}

func (r *Repository) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

func (r *Repository) replace(gen uint64, snap domain.Snapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	r.current = snap
	return true
}
