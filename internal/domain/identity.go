package domain

// IdentityKind enumerates the variants of Identity.
type IdentityKind string

const (
	IdentityAnonymous IdentityKind = "anonymous"
	IdentityUser      IdentityKind = "user"
	IdentityAdmin     IdentityKind = "admin"
)

// Identity is the effective caller of a request. Exactly one kind is active;
// values are built through Anonymous, UserIdentity and AdminIdentity only.
type Identity struct {
	kind  IdentityKind
	id    string
	email string
}

// Anonymous returns the identity of a caller without a usable session.
func Anonymous() Identity {
	return Identity{kind: IdentityAnonymous}
}

// UserIdentity returns a customer identity.
func UserIdentity(id, email string) Identity {
	return Identity{kind: IdentityUser, id: id, email: email}
}

// AdminIdentity returns the administrator identity.
func AdminIdentity(id, email string) Identity {
	return Identity{kind: IdentityAdmin, id: id, email: email}
}

// Kind returns the active variant. The zero Identity is anonymous.
func (i Identity) Kind() IdentityKind {
	if i.kind == "" {
		return IdentityAnonymous
	}
	return i.kind
}

func (i Identity) ID() string    { return i.id }
func (i Identity) Email() string { return i.email }

func (i Identity) IsAnonymous() bool { return i.Kind() == IdentityAnonymous }
func (i Identity) IsUser() bool      { return i.Kind() == IdentityUser }
func (i Identity) IsAdmin() bool     { return i.Kind() == IdentityAdmin }

// Role maps the identity to the session role that produced it.
func (i Identity) Role() (Role, bool) {
	switch i.Kind() {
	case IdentityUser:
		return RoleUser, true
	case IdentityAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
