package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultInviteTTL is the lifetime of an invite token.
const DefaultInviteTTL = 7 * 24 * time.Hour

// Invite is the payload carried by a signed invite token.
type Invite struct {
	JTI       string
	From      uuid.UUID
	To        uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InviteTokenManager issues and verifies invite tokens.
type InviteTokenManager interface {
	GenerateInviteToken(from, to uuid.UUID) (string, Invite, error)
	ParseInviteToken(token string) (Invite, error)
}

// InviteStore records consumed invite tokens.
type InviteStore interface {
	// Consume marks the token as used. It returns ErrConflict when the token
	// was consumed before.
	Consume(ctx context.Context, invite Invite) error
}

// InviteEmail is the content of an invitation email.
type InviteEmail struct {
	To           string
	InviterEmail string
	AcceptURL    string
	ExpiresAt    time.Time
}

// Mailer delivers outgoing emails.
type Mailer interface {
	SendInvite(ctx context.Context, email InviteEmail) error
}
