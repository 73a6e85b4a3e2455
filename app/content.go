package app

import (
	"context"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// ContentService fetches questions from the backend, in backend order.
type ContentService interface {
	// FetchAll returns every question with nested answers and like counts.
	FetchAll(ctx context.Context) ([]domain.Question, error)

	// Search returns questions matching keyword. Answers and likes may be absent.
	Search(ctx context.Context, keyword string) ([]domain.Question, error)
}
