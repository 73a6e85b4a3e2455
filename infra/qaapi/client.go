package qaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalqa/domain"
	"github.com/CrestNiraj12/terminalqa/infra/auth"
)

// Client is a thin HTTP wrapper for the Q&A backend.
// It handles base URL construction, bearer token injection and error mapping.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	log           *zap.Logger
}

// NewClient creates a backend client. There is deliberately no timeout; a
// request runs until the transport gives up.
func NewClient(baseURL string, tp auth.TokenProvider, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{},
		log:           log,
	}
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	form   url.Values
	json   any
	bearer bool
}

func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var body io.Reader
	contentType := ""
	switch {
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.json != nil:
		data, err := json.Marshal(r.json)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding body: %w", r.op, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", r.op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if r.bearer {
		token, err := c.tokenProvider.AccessToken()
		if err != nil {
			return nil, fmt.Errorf("%s: auth: %w", r.op, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("op", r.op),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &domain.TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: r.op, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log.Debug("request sent",
		zap.String("op", r.op),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.RejectionError{Op: r.op, Status: resp.StatusCode, Detail: parseDetail(data)}
	}
	return data, nil
}

// parseDetail extracts a string "detail" field. Structured details, such as
// field-level validation lists, are not a displayable reason.
func parseDetail(data []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func decode(op string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

var errNoToken = errors.New("response carried no access token")
