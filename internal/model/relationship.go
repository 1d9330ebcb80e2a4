package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ledger selects one of the relationship encodings.
type Ledger string

const (
	// LedgerFriend is the open friend-request flow.
	LedgerFriend Ledger = "friend"
	// LedgerConnection is the invite-token flow.
	LedgerConnection Ledger = "connection"
)

// Status is the state of a relationship record.
type Status string

const (
	StatusRequested Status = "requested"
	StatusFriends   Status = "friends"
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
)

// Pending returns the non-terminal status of the ledger.
func (l Ledger) Pending() Status {
	if l == LedgerConnection {
		return StatusPending
	}
	return StatusRequested
}

// Established returns the terminal status of the ledger.
func (l Ledger) Established() Status {
	if l == LedgerConnection {
		return StatusAccepted
	}
	return StatusFriends
}

// Valid reports whether the ledger is known.
func (l Ledger) Valid() bool {
	return l == LedgerFriend || l == LedgerConnection
}

// Established reports whether the status is terminal for its ledger.
func (s Status) Established() bool {
	return s == StatusFriends || s == StatusAccepted
}

// Relationship is one record on an owner's ledger about a peer.
// A pair holds at most one record per ledger per owner.
type Relationship struct {
	ID           uuid.UUID
	Ledger       Ledger
	OwnerID      uuid.UUID
	PeerID       uuid.UUID
	PeerEmail    string
	Status       Status
	SharedSecret string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RelationshipStore defines persistence operations for relationship records.
type RelationshipStore interface {
	Get(ctx context.Context, ledger Ledger, ownerID, peerID uuid.UUID) (Relationship, error)
	GetForUpdate(ctx context.Context, ledger Ledger, ownerID, peerID uuid.UUID) (Relationship, error)
	// LockPair blocks other LockPair callers on the same two users until the
	// surrounding transaction ends.
	LockPair(ctx context.Context, a, b uuid.UUID) error
	Create(ctx context.Context, rel Relationship) (Relationship, error)
	Upsert(ctx context.Context, rel Relationship) (Relationship, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, sharedSecret string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ledger Ledger, ownerID uuid.UUID, statuses ...Status) ([]Relationship, error)
}

// Transactor runs fn inside a single storage transaction. Stores called with
// the context passed to fn take part in that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
