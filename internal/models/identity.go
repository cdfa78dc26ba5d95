package models

// IdentityKind selects the storage namespace and whether cloud sync runs.
type IdentityKind int

const (
	// IdentityUnknown is the transitional state before the session check
	// resolves. Data written here lands under a generic fallback prefix.
	IdentityUnknown IdentityKind = iota
	IdentityGuest
	IdentityUser
)

// Identity is an explicit value threaded into the state manager rather than
// ambient global state, so namespace derivation stays a pure function.
type Identity struct {
	Kind IdentityKind
	// UserKey is the stable remote identity key. Set only for IdentityUser.
	UserKey string
}

func Guest() Identity          { return Identity{Kind: IdentityGuest} }
func User(key string) Identity { return Identity{Kind: IdentityUser, UserKey: key} }

// Namespace derives the storage key prefix for this identity.
func (id Identity) Namespace() string {
	switch id.Kind {
	case IdentityGuest:
		return "guest"
	case IdentityUser:
		if id.UserKey != "" {
			return "user-" + id.UserKey
		}
		return "local"
	default:
		return "local"
	}
}

func (id Identity) IsGuest() bool { return id.Kind == IdentityGuest }
func (id Identity) IsUser() bool  { return id.Kind == IdentityUser && id.UserKey != "" }

func (id Identity) Equal(other Identity) bool {
	return id.Kind == other.Kind && id.UserKey == other.UserKey
}
