package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// Mutation is a single authoritative write.
type Mutation func(ctx context.Context) error

// Coordinator runs writes and refreshes the collection after each success.
// Nothing is predicted locally: counts change only once the refresh lands.
type Coordinator struct {
	writes  WriteService
	refresh Refresher
	log     *zap.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(writes WriteService, refresh Refresher, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{writes: writes, refresh: refresh, log: log}
}

// Perform runs m and, only if it succeeds, reloads the collection once.
func (c *Coordinator) Perform(ctx context.Context, m Mutation) (Refresh, error) {
	if err := m(ctx); err != nil {
		return Refresh{}, err
	}
	snap, err := c.refresh.LoadAll(ctx)
	return Refresh{Snapshot: snap, Err: err}, nil
}

// SubmitAnswer posts content as an answer to questionID.
func (c *Coordinator) SubmitAnswer(ctx context.Context, questionID int64, content string) (Refresh, error) {
	if strings.TrimSpace(content) == "" {
		return Refresh{}, domain.Invalid("content", MsgNeedAnswer)
	}
	return c.Perform(ctx, func(ctx context.Context) error {
		c.log.Debug("submitting answer", zap.Int64("question_id", questionID))
		return c.writes.CreateAnswer(ctx, questionID, content)
	})
}

// SubmitRating likes the target.
func (c *Coordinator) SubmitRating(ctx context.Context, target domain.Target) (Refresh, error) {
	if !target.Type.Valid() {
		return Refresh{}, domain.Invalid("target_type", "Unknown rating target.")
	}
	return c.Perform(ctx, func(ctx context.Context) error {
		c.log.Debug("submitting rating", zap.String("target_type", string(target.Type)), zap.Int64("target_id", target.ID))
		return c.writes.CreateRating(ctx, target)
	})
}
