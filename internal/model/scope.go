package model

// AnonymousUserID is the owner used when a request carries no user identity.
const AnonymousUserID = "anonymous"

// Scope identifies who a request acts for.
type Scope struct {
	UserID   string
	Username string
}

// NewScope returns a scope for userID, falling back to AnonymousUserID.
func NewScope(userID string) Scope {
	if userID == "" {
		userID = AnonymousUserID
	}
	return Scope{UserID: userID}
}
