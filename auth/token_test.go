package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseToken(t *testing.T) {
	token, err := CreateToken(TokenOptions{
		Secret:   "s3cret",
		Issuer:   "promptdec",
		Audience: "promptdec-api",
		Subject:  "github|42",
		Nickname: "octocat",
	})
	require.NoError(t, err)

	claims, err := ParseToken(token, "s3cret", "promptdec", "promptdec-api")
	require.NoError(t, err)
	assert.Equal(t, "github|42", claims.Subject)
	assert.Equal(t, "octocat", claims.Nickname)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejects(t *testing.T) {
	token, err := CreateToken(TokenOptions{Secret: "s3cret", Issuer: "promptdec", Audience: "promptdec-api", Subject: "u"})
	require.NoError(t, err)

	_, err = ParseToken(token, "other", "promptdec", "promptdec-api")
	assert.Error(t, err)
	_, err = ParseToken(token, "s3cret", "promptdec", "someone-else")
	assert.Error(t, err)

	expired, err := CreateToken(TokenOptions{Secret: "s3cret", Issuer: "promptdec", Audience: "promptdec-api", Subject: "u", TTL: time.Nanosecond})
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = ParseToken(expired, "s3cret", "promptdec", "promptdec-api")
	assert.Error(t, err)
}

func TestCreateTokenRequiresSecretAndSubject(t *testing.T) {
	_, err := CreateToken(TokenOptions{Subject: "u"})
	assert.Error(t, err)
	_, err = CreateToken(TokenOptions{Secret: "s"})
	assert.Error(t, err)
}
