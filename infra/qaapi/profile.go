package qaapi

import (
	"context"
	"net/http"
)

// profileService implements app.ProfileService.
type profileService struct {
	client *Client
}

// NewProfileService creates a ProfileService backed by the Q&A backend.
func NewProfileService(client *Client) *profileService {
	return &profileService{client: client}
}

type profilePayload struct {
	Profile string `json:"profile"`
}

func (s *profileService) Profile(ctx context.Context) (string, error) {
	data, err := s.client.do(ctx, request{
		op:     "profile",
		method: http.MethodGet,
		path:   "/profile",
		bearer: true,
	})
	if err != nil {
		return "", err
	}
	var p profilePayload
	if err := decode("profile", data, &p); err != nil {
		return "", err
	}
	return p.Profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profile string) error {
	_, err := s.client.do(ctx, request{
		op:     "profile",
		method: http.MethodPut,
		path:   "/profile",
		json:   profilePayload{Profile: profile},
		bearer: true,
	})
	return err
}
