package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lovebomb-server/internal/model"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	refresh, jti, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	gotUser, gotJTI, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, u, gotUser)
	require.Equal(t, jti, gotJTI)
}

func TestJWT_InviteToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	from, to := uuid.New(), uuid.New()

	tok, issued, err := j.GenerateInviteToken(from, to)
	require.NoError(t, err)
	require.NotEmpty(t, issued.JTI)
	require.WithinDuration(t, time.Now().Add(model.DefaultInviteTTL), issued.ExpiresAt, time.Minute)

	got, err := j.ParseInviteToken(tok)
	require.NoError(t, err)
	require.Equal(t, from, got.From)
	require.Equal(t, to, got.To)
	require.Equal(t, issued.JTI, got.JTI)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)

	_, _, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrTokenType)

	_, err = j.ParseInviteToken(access)
	require.ErrorIs(t, err, model.ErrTokenType)

	invite, _, err := j.GenerateInviteToken(u, uuid.New())
	require.NoError(t, err)
	_, err = j.ParseAccessToken(invite)
	require.ErrorIs(t, err, model.ErrTokenType)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", WithAccessTTL(-time.Minute), WithInviteTTL(-time.Minute))
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	invite, _, err := j.GenerateInviteToken(u, uuid.New())
	require.NoError(t, err)
	_, err = j.ParseInviteToken(invite)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret")
	verifier := NewJWT("other")

	access, err := issuer.GenerateAccessToken(uuid.New())
	require.NoError(t, err)
	_, err = verifier.ParseAccessToken(access)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	j := NewJWT("secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.New(), TokenType: typeAccess})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(s)
	require.Error(t, err)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret")

	_, err := j.ParseAccessToken("not-a-token")
	require.Error(t, err)
	_, err = j.ParseInviteToken("")
	require.Error(t, err)
}
