package app

import "context"

// AuthService exchanges user credentials with the backend.
type AuthService interface {
	// Login returns an access token for the given username and password.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, username, password string) error
}

// ProfileService reads and replaces the authenticated user's profile text.
type ProfileService interface {
	Profile(ctx context.Context) (string, error)
	UpdateProfile(ctx context.Context, profile string) error
}
