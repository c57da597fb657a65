package domain

// Artist is a performer profile from the roster.
// swagger:model Artist
type Artist struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Genre       string `json:"genre" yaml:"genre"`
	AvatarColor string `json:"avatarColor" yaml:"avatar_color"`
	Email       string `json:"email,omitempty" yaml:"email"`
	Bio         string `json:"bio,omitempty" yaml:"bio"`
}

// FindArtist returns the artist with the given ID from roster.
func FindArtist(roster []Artist, id string) (Artist, bool) {
	for _, a := range roster {
		if a.ID == id {
			return a, true
		}
	}
	return Artist{}, false
}
