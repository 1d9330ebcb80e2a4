package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/model"
)

// GateMode selects which ledger authorizes message exchange.
type GateMode string

const (
	GateConnection GateMode = "connection"
	GateFriend     GateMode = "friend"
	GateAny        GateMode = "any"
)

// ParseGateMode validates a configured gate mode.
func ParseGateMode(s string) (GateMode, error) {
	switch m := GateMode(s); m {
	case GateConnection, GateFriend, GateAny:
		return m, nil
	default:
		return "", fmt.Errorf("unknown notes ledger %q", s)
	}
}

func (m GateMode) ledgers() []model.Ledger {
	switch m {
	case GateFriend:
		return []model.Ledger{model.LedgerFriend}
	case GateAny:
		return []model.Ledger{model.LedgerConnection, model.LedgerFriend}
	default:
		return []model.Ledger{model.LedgerConnection}
	}
}

// Gate allows an operation only between users with an established relationship.
type Gate struct {
	relationshipStore model.RelationshipStore
	mode              GateMode
}

func NewGate(relationshipStore model.RelationshipStore, mode GateMode) *Gate {
	return &Gate{relationshipStore: relationshipStore, mode: mode}
}

// RequireConnected returns a forbidden error unless userID holds an
// established relationship with peerID on one of the gate's ledgers.
func (g *Gate) RequireConnected(ctx context.Context, userID, peerID uuid.UUID) error {
	for _, ledger := range g.mode.ledgers() {
		rel, err := g.relationshipStore.Get(ctx, ledger, userID, peerID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return fmt.Errorf("failed to check relationship: %w", err)
		}
		if rel.Status == ledger.Established() {
			return nil
		}
	}
	return model.NewErrNotConnected()
}
