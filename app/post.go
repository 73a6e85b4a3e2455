package app

import (
	"context"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// WriteService performs authenticated writes on the backend.
type WriteService interface {
	// CreateAnswer posts an answer to a question.
	CreateAnswer(ctx context.Context, questionID int64, content string) error

	// CreateRating records a like on a question or an answer.
	CreateRating(ctx context.Context, target domain.Target) error
}
