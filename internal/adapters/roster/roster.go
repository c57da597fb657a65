// Package roster supplies the artist roster: the built-in list or one read from a YAML file.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lineupplanner/internal/domain"
)

// Default returns the built-in roster: the house residents followed by the guest pool.
func Default() []domain.Artist {
	return []domain.Artist{
		{ID: "neihouse", Name: "Neihouse", Genre: "House", AvatarColor: "bg-avatar-blue", Email: "neihouse@primordialgroove.com", Bio: "Founder & resident DJ"},
		{ID: "gobi", Name: "Gobi", Genre: "Tech-House", AvatarColor: "bg-avatar-orange", Email: "gobi@primordialgroove.com", Bio: "Tech house specialist"},
		{ID: "quietpack", Name: "Quiet Pack", Genre: "Minimal", AvatarColor: "bg-avatar-purple", Email: "quietpack@primordialgroove.com", Bio: "Minimal techno curator"},
		{ID: "openslot1", Name: "TBA #1", Genre: "—", AvatarColor: "bg-avatar-gray", Bio: "Available slot for testing"},
		{ID: "openslot2", Name: "TBA #2", Genre: "—", AvatarColor: "bg-avatar-gray", Bio: "Available slot for testing"},
		{ID: "dj-nova", Name: "DJ Nova", Genre: "House", AvatarColor: "bg-avatar-amber", Email: "nova@primordialgroove.com"},
		{ID: "dj-echo", Name: "DJ Echo", Genre: "Techno", AvatarColor: "bg-avatar-orange", Email: "echo@primordialgroove.com"},
		{ID: "dj-pulse", Name: "DJ Pulse", Genre: "Trance", AvatarColor: "bg-avatar-rose", Email: "pulse@primordialgroove.com"},
		{ID: "dj-rhythm", Name: "DJ Rhythm", Genre: "Hip Hop", AvatarColor: "bg-avatar-teal", Email: "rhythm@primordialgroove.com"},
		{ID: "dj-vibe", Name: "DJ Vibe", Genre: "Deep House", AvatarColor: "bg-avatar-blue", Email: "vibe@primordialgroove.com"},
		{ID: "dj-flux", Name: "DJ Flux", Genre: "Progressive", AvatarColor: "bg-avatar-purple", Email: "flux@primordialgroove.com"},
		{ID: "dj-zen", Name: "DJ Zen", Genre: "Ambient", AvatarColor: "bg-avatar-green", Email: "zen@primordialgroove.com"},
		{ID: "dj-storm", Name: "DJ Storm", Genre: "Hardcore", AvatarColor: "bg-avatar-red", Email: "storm@primordialgroove.com"},
	}
}

type rosterFile struct {
	Artists []domain.Artist `yaml:"artists"`
}

// LoadFile reads a roster from a YAML document of the form:
//
//	artists:
//	  - id: dj-nova
//	    name: DJ Nova
//	    genre: House
//	    avatar_color: bg-avatar-amber
//	    email: nova@example.com
func LoadFile(path string) ([]domain.Artist, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML roster.
func Parse(raw []byte) ([]domain.Artist, error) {
	var f rosterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: decode roster: %v", domain.ErrInvalidInput, err)
	}
	if len(f.Artists) == 0 {
		return nil, fmt.Errorf("%w: roster has no artists", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(f.Artists))
	for i, a := range f.Artists {
		if a.ID == "" || a.Name == "" {
			return nil, fmt.Errorf("%w: roster entry %d needs an id and a name", domain.ErrInvalidInput, i)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate artist id %q", domain.ErrInvalidInput, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return f.Artists, nil
}
