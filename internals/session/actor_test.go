package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/session"
)

func TestTokenRoundTrip(t *testing.T) {
	in := session.Actor{ID: "7", Name: "Bu Ani", Username: "ani", Role: "Admin"}

	tok, err := session.Token(in, "rahasia", time.Minute)
	require.NoError(t, err)

	out, err := session.ParseToken(tok, "rahasia", 0)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.True(t, out.HasRole("admin"))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tok, err := session.Token(session.Actor{Name: "x"}, "a", time.Minute)
	require.NoError(t, err)

	_, err = session.ParseToken(tok, "b", 0)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tok, err := session.Token(session.Actor{Name: "x"}, "a", -time.Hour)
	require.NoError(t, err)

	_, err = session.ParseToken(tok, "a", time.Second)
	assert.Error(t, err)
}

func TestFromClaimsFallsBackToUsername(t *testing.T) {
	a, err := session.FromClaims(jwt.MapClaims{"username": "budi", "role": "Guru"})
	require.NoError(t, err)
	assert.Equal(t, "budi", a.Name)

	_, err = session.FromClaims(jwt.MapClaims{"role": "Guru"})
	assert.ErrorIs(t, err, session.ErrNoActor)
}
