package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/model"
)

var (
	_ model.TokenManager       = (*JWT)(nil)
	_ model.InviteTokenManager = (*JWT)(nil)
)

// Claims represents JWT claims with token type and user ID. Invite tokens
// carry the inviter in UserID and the invitee in InviteeID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	InviteeID uuid.UUID `json:"to,omitempty"`
	TokenType string    `json:"typ"`
}

// JWT implements TokenManager and InviteTokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	inviteTTL  time.Duration
}

// Option tunes token lifetimes.
type Option func(*JWT)

func WithAccessTTL(ttl time.Duration) Option {
	return func(j *JWT) { j.accessTTL = ttl }
}

func WithRefreshTTL(ttl time.Duration) Option {
	return func(j *JWT) { j.refreshTTL = ttl }
}

func WithInviteTTL(ttl time.Duration) Option {
	return func(j *JWT) { j.inviteTTL = ttl }
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{
		secretKey:  secretKey,
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
		inviteTTL:  model.DefaultInviteTTL,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour

	typeAccess  = "access"
	typeRefresh = "refresh"
	typeInvite  = "invite"
)

// GenerateAccessToken creates an access token.
func (j *JWT) GenerateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	tokenString, err := j.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		UserID:    userID,
		TokenType: typeAccess,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token and returns its JTI.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	tokenString, err := j.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
		},
		UserID:    userID,
		TokenType: typeRefresh,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, jti, nil
}

// GenerateInviteToken creates a token authorizing `to` to accept a
// connection with `from`.
func (j *JWT) GenerateInviteToken(from, to uuid.UUID) (string, model.Invite, error) {
	now := time.Now()
	invite := model.Invite{
		JTI:       uuid.NewString(),
		From:      from,
		To:        to,
		IssuedAt:  now,
		ExpiresAt: now.Add(j.inviteTTL),
	}

	tokenString, err := j.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        invite.JTI,
			IssuedAt:  jwt.NewNumericDate(invite.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(invite.ExpiresAt),
		},
		UserID:    from,
		InviteeID: to,
		TokenType: typeInvite,
	})
	if err != nil {
		return "", model.Invite{}, fmt.Errorf("failed to sign invite token: %w", err)
	}

	return tokenString, invite, nil
}

// ParseAccessToken validates and extracts the user ID from an access token.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims.UserID, nil
}

// ParseRefreshToken validates and extracts the user ID and JTI from a refresh token.
func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, string, error) {
	claims, err := j.parse(tokenString, typeRefresh)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to parse refresh token: %w", err)
	}
	return claims.UserID, claims.ID, nil
}

// ParseInviteToken validates signature, expiry and type of an invite token.
func (j *JWT) ParseInviteToken(tokenString string) (model.Invite, error) {
	claims, err := j.parse(tokenString, typeInvite)
	if err != nil {
		return model.Invite{}, fmt.Errorf("failed to parse invite token: %w", err)
	}
	if claims.UserID == uuid.Nil || claims.InviteeID == uuid.Nil {
		return model.Invite{}, fmt.Errorf("invite token has no parties")
	}

	invite := model.Invite{
		JTI:  claims.ID,
		From: claims.UserID,
		To:   claims.InviteeID,
	}
	if claims.IssuedAt != nil {
		invite.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		invite.ExpiresAt = claims.ExpiresAt.Time
	}
	return invite, nil
}

func (j *JWT) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

func (j *JWT) parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: %s", model.ErrTokenType, claims.TokenType)
	}
	return claims, nil
}
