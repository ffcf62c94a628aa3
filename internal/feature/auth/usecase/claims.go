package usecase

import "message_backend/internal/feature/auth/domain/entity"

// AssembleClaims copies the identity fields into the token claim set.
func AssembleClaims(identity entity.AuthenticatedIdentity) entity.ClaimSet {
	return entity.ClaimSet{
		ID:                  identity.ID,
		Username:            identity.Username,
		IsVerified:          identity.IsVerified,
		IsAcceptingMessages: identity.IsAcceptingMessages,
	}
}

// RefreshClaims returns the claims for a re-issued token. Without a fresh
// identity the previous claims pass through unchanged; the directory is not
// consulted, so flag changes show up only after the next login.
func RefreshClaims(prev entity.ClaimSet, identity *entity.AuthenticatedIdentity) entity.ClaimSet {
	if identity == nil {
		return prev
	}
	return AssembleClaims(*identity)
}

// MaterializeSession projects decoded claims into the session view.
func MaterializeSession(claims entity.ClaimSet) entity.SessionView {
	return entity.SessionView{
		ID:                  claims.ID,
		Username:            claims.Username,
		IsVerified:          claims.IsVerified,
		IsAcceptingMessages: claims.IsAcceptingMessages,
	}
}
