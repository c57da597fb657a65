package domain

// Role is the locally trusted view a request acts under.
type Role string

const (
	RolePromoter Role = "promoter"
	RoleBooker   Role = "booker"
	RoleArtist   Role = "artist"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RolePromoter, RoleBooker, RoleArtist:
		return true
	}
	return false
}

// CanEditLineup reports whether r may change events and slots.
func (r Role) CanEditLineup() bool {
	return r == RolePromoter || r == RoleBooker
}
