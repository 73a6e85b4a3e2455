package qaapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// contentService implements app.ContentService. Reads are unauthenticated.
type contentService struct {
	client *Client
}

// NewContentService creates a ContentService backed by the Q&A backend.
func NewContentService(client *Client) *contentService {
	return &contentService{client: client}
}

// wireQuestion accepts the text under value_1, text or content; search
// results use the last.
type wireQuestion struct {
	ID      int64        `json:"id"`
	Value1  string       `json:"value_1"`
	Text    string       `json:"text"`
	Content string       `json:"content"`
	Likes   int          `json:"likes"`
	Answers []wireAnswer `json:"answers"`
}

type wireAnswer struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Likes   int    `json:"likes"`
}

func (s *contentService) FetchAll(ctx context.Context) ([]domain.Question, error) {
	data, err := s.client.do(ctx, request{
		op:     "fetch",
		method: http.MethodGet,
		path:   "/data_with_answers",
	})
	if err != nil {
		return nil, err
	}
	return decodeQuestions("fetch", data)
}

func (s *contentService) Search(ctx context.Context, keyword string) ([]domain.Question, error) {
	data, err := s.client.do(ctx, request{
		op:     "search",
		method: http.MethodGet,
		path:   "/search",
		query:  url.Values{"keyword": {keyword}},
	})
	if err != nil {
		return nil, err
	}
	return decodeQuestions("search", data)
}

func decodeQuestions(op string, data []byte) ([]domain.Question, error) {
	var wire []wireQuestion
	if err := decode(op, data, &wire); err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(wire))
	for _, w := range wire {
		q := domain.Question{
			ID:      w.ID,
			Text:    firstNonEmpty(w.Value1, w.Text, w.Content),
			Likes:   max(w.Likes, 0),
			Answers: make([]domain.Answer, 0, len(w.Answers)),
		}
		for _, a := range w.Answers {
			q.Answers = append(q.Answers, domain.Answer{
				ID:      a.ID,
				Content: a.Content,
				Likes:   max(a.Likes, 0),
			})
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
