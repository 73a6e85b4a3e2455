package domain

import "strings"

// Credential is the bearer token plus the display identity of a session.
// Token and DisplayName are set and cleared together.
type Credential struct {
	Token       string
	DisplayName string
}

// Complete reports whether both halves of the credential are present.
func (c Credential) Complete() bool {
	return strings.TrimSpace(c.Token) != "" && strings.TrimSpace(c.DisplayName) != ""
}
