package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MinPasswordLength is the shortest accepted account password.
	MinPasswordLength = 6
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error
	UpdatePublicKey(ctx context.Context, id uuid.UUID, publicKey string) (User, error)
}

// User represents a registered identity.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	PublicKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(secret string) ([]byte, error)
	Compare(hash []byte, secret string) bool
}
