package entity

// AuthenticatedIdentity is produced by a successful credential check.
// It carries no password material.
type AuthenticatedIdentity struct {
	ID                  string
	Username            string
	IsVerified          bool
	IsAcceptingMessages bool
}

// ClaimSet is the identity payload embedded in a session token.
// Issue and expiry timestamps are added by the token layer, not here.
type ClaimSet struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	IsVerified          bool   `json:"isVerified"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}

// SessionView is the read-only projection of a ClaimSet handed to API callers.
type SessionView struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	IsVerified          bool   `json:"isVerified"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}
