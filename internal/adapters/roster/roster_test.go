package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineupplanner/internal/domain"
)

func TestDefault(t *testing.T) {
	artists := Default()
	require.Len(t, artists, 13)

	seen := map[string]bool{}
	for _, a := range artists {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
	neihouse, ok := domain.FindArtist(artists, "neihouse")
	require.True(t, ok, "the demo slot's artist is on the roster")
	assert.Equal(t, "neihouse@primordialgroove.com", neihouse.Email)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	doc := `artists:
  - id: dj-nova
    name: DJ Nova
    genre: House
    avatar_color: bg-avatar-amber
    email: nova@example.com
  - id: dj-echo
    name: DJ Echo
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	artists, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, domain.Artist{ID: "dj-nova", Name: "DJ Nova", Genre: "House", AvatarColor: "bg-avatar-amber", Email: "nova@example.com"}, artists[0])
	assert.Empty(t, artists[1].Email)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "artists: [\n"},
		{"empty", "artists: []\n"},
		{"missing name", "artists:\n  - id: dj-nova\n"},
		{"duplicate id", "artists:\n  - id: a\n    name: A\n  - id: a\n    name: B\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
