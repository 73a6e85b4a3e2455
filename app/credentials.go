package app

import "github.com/CrestNiraj12/terminalqa/domain"

// CredentialStore holds the session credential across restarts.
// Implementations never expose a credential with only one half set.
type CredentialStore interface {
	Get() (domain.Credential, bool)
	Set(cred domain.Credential) error
	Clear() error
}
