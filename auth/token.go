// Package auth mints bearer tokens accepted by the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a PromptDec bearer token.
type Claims struct {
	Name     string `json:"name,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Picture  string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// TokenOptions describes the token to mint.
type TokenOptions struct {
	Secret   string
	Issuer   string
	Audience string
	Subject  string
	TTL      time.Duration

	Name     string
	Nickname string
	Picture  string
}

// CreateToken signs an HS256 token for opts.Subject.
func CreateToken(opts TokenOptions) (string, error) {
	if opts.Secret == "" {
		return "", errors.New("jwt secret is not set")
	}
	if opts.Subject == "" {
		return "", errors.New("subject is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}

	now := time.Now()
	claims := Claims{
		Name:     opts.Name,
		Nickname: opts.Nickname,
		Picture:  opts.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   opts.Subject,
			Issuer:    opts.Issuer,
			Audience:  jwt.ClaimStrings{opts.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(opts.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token minted by CreateToken and returns its claims.
func ParseToken(tokenString, secret, issuer, audience string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}
