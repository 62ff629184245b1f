package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/promptdec-api/config"
)

// CustomClaims are the profile claims a token may carry alongside sub.
type CustomClaims struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Picture  string `json:"picture"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// EnsureValidToken validates HS256 bearer tokens signed with
// cfg.JWTSecret. Requests without a token pass through so the test identity
// can apply; requests with a bad token are rejected with 401. With no secret
// configured tokens are not inspected at all.
func EnsureValidToken(cfg config.Config) (func(http.Handler) http.Handler, error) {
	if cfg.JWTSecret == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	secret := []byte(cfg.JWTSecret)
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return secret, nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		cfg.Issuer,
		[]string{cfg.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("set up jwt validator: %w", err)
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithErrorHandler(tokenErrorHandler),
	)
	return mw.CheckJWT, nil
}

func tokenErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	detail := "invalid bearer token"
	if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
		detail = "missing bearer token"
	}
	writeUnauthorized(w, detail)
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  "unauthorized",
		"detail": detail,
	})
}
