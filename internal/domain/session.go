package domain

type ContextKey string

const SessionContextKey ContextKey = "session"

// Session identifies one shopper's cart for the lifetime of the session token.
type Session struct {
	ID    string
	Token string
	IsNew bool
}
