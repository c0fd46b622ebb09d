package auth

import "context"

type contextKey string

const claimsKey contextKey = "pilot_claims"

// SetPilotClaims stores the authenticated pilot's claims on the context.
func SetPilotClaims(ctx context.Context, claims PilotClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetPilotClaims returns the claims set by the auth middleware, or nil
// for unauthenticated requests.
func GetPilotClaims(ctx context.Context) PilotClaims {
	claims, _ := ctx.Value(claimsKey).(PilotClaims)
	return claims
}
