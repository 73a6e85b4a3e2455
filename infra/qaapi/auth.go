package qaapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// authService implements app.AuthService.
type authService struct {
	client *Client
}

// NewAuthService creates an AuthService backed by the Q&A backend.
func NewAuthService(client *Client) *authService {
	return &authService{client: client}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	data, err := s.client.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/login",
		form:   credentialsForm(username, password),
	})
	if err != nil {
		return "", err
	}

	var tok tokenResponse
	if err := decode("login", data, &tok); err != nil {
		return "", err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", &domain.TransportError{Op: "login", Err: errNoToken}
	}
	return tok.AccessToken, nil
}

func (s *authService) Register(ctx context.Context, username, password string) error {
	_, err := s.client.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/register",
		form:   credentialsForm(username, password),
	})
	return err
}

func credentialsForm(username, password string) url.Values {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	return form
}
