package utils

import (
	"context"
	"testing"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/stretchr/testify/assert"
)

func TestTokenSubject(t *testing.T) {
	_, ok := TokenSubject(context.Background())
	assert.False(t, ok)

	empty := context.WithValue(context.Background(), jwtmiddleware.ContextKey{}, &validator.ValidatedClaims{})
	_, ok = TokenSubject(empty)
	assert.False(t, ok)

	claims := &validator.ValidatedClaims{RegisteredClaims: validator.RegisteredClaims{Subject: "github|42"}}
	ctx := context.WithValue(context.Background(), jwtmiddleware.ContextKey{}, claims)
	sub, ok := TokenSubject(ctx)
	assert.True(t, ok)
	assert.Equal(t, "github|42", sub)
}
