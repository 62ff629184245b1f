package utils

import (
	"context"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// TokenClaims returns the claims of the bearer token validated for this
// request, if any.
func TokenClaims(ctx context.Context) (*validator.ValidatedClaims, bool) {
	claims, ok := ctx.Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// TokenSubject returns the subject of the validated bearer token.
func TokenSubject(ctx context.Context) (string, bool) {
	claims, ok := TokenClaims(ctx)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}
