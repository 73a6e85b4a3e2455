package qaapi

import (
	"context"
	"net/http"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// writeService implements app.WriteService. Every write carries the bearer.
type writeService struct {
	client *Client
}

// NewWriteService creates a WriteService backed by the Q&A backend.
func NewWriteService(client *Client) *writeService {
	return &writeService{client: client}
}

type answerRequest struct {
	QuestionID int64  `json:"question_id"`
	Content    string `json:"content"`
}

type ratingRequest struct {
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
}

func (s *writeService) CreateAnswer(ctx context.Context, questionID int64, content string) error {
	_, err := s.client.do(ctx, request{
		op:     "answer",
		method: http.MethodPost,
		path:   "/answers",
		json:   answerRequest{QuestionID: questionID, Content: content},
		bearer: true,
	})
	return err
}

func (s *writeService) CreateRating(ctx context.Context, target domain.Target) error {
	_, err := s.client.do(ctx, request{
		op:     "rate",
		method: http.MethodPost,
		path:   "/ratings",
		json:   ratingRequest{TargetType: string(target.Type), TargetID: target.ID},
		bearer: true,
	})
	return err
}
