package auth

import (
	"fmt"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

func accessToken(cred domain.Credential, ok bool) (string, error) {
	if !ok {
		return "", fmt.Errorf("no stored credential: %w", domain.ErrUnauthorized)
	}
	return cred.Token, nil
}
