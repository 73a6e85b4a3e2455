package app

import (
	"context"
	"strings"
)

// ProfileEditor fetches the profile on open and replaces it on save.
type ProfileEditor struct {
	profiles ProfileService
}

// NewProfileEditor creates a ProfileEditor.
func NewProfileEditor(profiles ProfileService) *ProfileEditor {
	return &ProfileEditor{profiles: profiles}
}

// Open returns the current profile text. Any failure yields empty text so
// the editor still opens.
func (p *ProfileEditor) Open(ctx context.Context) (string, error) {
	text, err := p.profiles.Profile(ctx)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Save replaces the profile with the trimmed text.
func (p *ProfileEditor) Save(ctx context.Context, text string) error {
	return p.profiles.UpdateProfile(ctx, strings.TrimSpace(text))
}
