package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/metrics"
	"github.com/dtroode/lovebomb-server/internal/model"
)

const sharedSecretBytes = 32

// ConnectionConfig configures the invite flow.
type ConnectionConfig struct {
	// ClientURL is the base of the accept link sent by email.
	ClientURL string
	// SingleUseInvites rejects a second accept of the same invite token.
	SingleUseInvites bool
}

// Connection runs the invite-token flow. A pending invite lives on the
// inviter's ledger; the invitee has no record until acceptance.
type Connection struct {
	userStore         model.UserStore
	relationshipStore model.RelationshipStore
	inviteStore       model.InviteStore
	tokens            model.InviteTokenManager
	mailer            model.Mailer
	tx                model.Transactor
	cfg               ConnectionConfig
	logger            *logger.Logger
	newSecret         func() (string, error)
}

func NewConnection(
	userStore model.UserStore,
	relationshipStore model.RelationshipStore,
	inviteStore model.InviteStore,
	tokens model.InviteTokenManager,
	mailer model.Mailer,
	tx model.Transactor,
	cfg ConnectionConfig,
	logger *logger.Logger,
) *Connection {
	return &Connection{
		userStore:         userStore,
		relationshipStore: relationshipStore,
		inviteStore:       inviteStore,
		tokens:            tokens,
		mailer:            mailer,
		tx:                tx,
		cfg:               cfg,
		logger:            logger,
		newSecret:         randomSecret,
	}
}

// Invite creates a pending connection and emails a signed accept link to the
// invitee. The pending record is removed again if the email cannot be sent.
func (c *Connection) Invite(ctx context.Context, fromID uuid.UUID, email string) error {
	inviter, err := c.userStore.GetByID(ctx, fromID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewErrUserNotFound()
		}
		return fmt.Errorf("failed to get inviter: %w", err)
	}

	invitee, err := c.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewErrUserNotFound()
		}
		return fmt.Errorf("failed to get invitee: %w", err)
	}

	if invitee.ID == inviter.ID {
		return model.NewErrSelfRelationship()
	}

	_, err = c.relationshipStore.Get(ctx, model.LedgerConnection, inviter.ID, invitee.ID)
	if err == nil {
		return model.NewErrAlreadyConnected()
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get relationship: %w", err)
	}

	token, invite, err := c.tokens.GenerateInviteToken(inviter.ID, invitee.ID)
	if err != nil {
		return fmt.Errorf("failed to issue invite token: %w", err)
	}

	pending, err := c.relationshipStore.Create(ctx, model.Relationship{
		Ledger:  model.LedgerConnection,
		OwnerID: inviter.ID,
		PeerID:  invitee.ID,
		Status:  model.StatusPending,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.NewErrAlreadyConnected()
		}
		return fmt.Errorf("failed to create pending connection: %w", err)
	}

	err = c.mailer.SendInvite(ctx, model.InviteEmail{
		To:           invitee.Email,
		InviterEmail: inviter.Email,
		AcceptURL:    c.acceptURL(token),
		ExpiresAt:    invite.ExpiresAt,
	})
	if err != nil {
		metrics.InvitesSentTotal.WithLabelValues("failed").Inc()
		c.logger.Error("Connection service: failed to send invite email",
			"inviter_id", inviter.ID,
			"invitee_id", invitee.ID,
			"error", err.Error())

		if delErr := c.relationshipStore.Delete(ctx, pending.ID); delErr != nil {
			c.logger.Error("Connection service: failed to roll back pending connection",
				"relationship_id", pending.ID,
				"error", delErr.Error())
		}
		return fmt.Errorf("failed to send invite email: %w", err)
	}

	metrics.InvitesSentTotal.WithLabelValues("sent").Inc()
	metrics.RelationshipTransitionsTotal.WithLabelValues(string(model.LedgerConnection), string(model.StatusPending)).Inc()
	c.logger.Info("Connection service: invite sent",
		"inviter_id", inviter.ID,
		"invitee_id", invitee.ID,
		"jti", invite.JTI)

	return nil
}

// Accept redeems an invite token on behalf of callerID and records an
// accepted connection with a fresh shared secret on both ledgers.
func (c *Connection) Accept(ctx context.Context, token string, callerID uuid.UUID) (model.Relationship, error) {
	invite, err := c.tokens.ParseInviteToken(token)
	if err != nil {
		c.logger.Info("Connection service: invalid invite token",
			"user_id", callerID,
			"error", err.Error())
		return model.Relationship{}, model.NewErrInvalidInviteToken()
	}

	if invite.To != callerID {
		return model.Relationship{}, model.NewErrInviteNotForYou()
	}

	inviter, err := c.userStore.GetByID(ctx, invite.From)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Relationship{}, model.NewErrInvalidInvite()
		}
		return model.Relationship{}, fmt.Errorf("failed to get inviter: %w", err)
	}

	secret, err := c.newSecret()
	if err != nil {
		return model.Relationship{}, fmt.Errorf("failed to generate shared secret: %w", err)
	}

	var accepted model.Relationship
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		if c.cfg.SingleUseInvites {
			if err := c.inviteStore.Consume(ctx, invite); err != nil {
				if errors.Is(err, model.ErrConflict) {
					return model.NewErrInviteAlreadyUsed()
				}
				return fmt.Errorf("failed to consume invite: %w", err)
			}
		}

		// held even when no pending row exists
		if err := c.relationshipStore.LockPair(ctx, inviter.ID, callerID); err != nil {
			return fmt.Errorf("failed to lock connection pair: %w", err)
		}

		existing, err := c.relationshipStore.Get(ctx, model.LedgerConnection, callerID, inviter.ID)
		switch {
		case err == nil && existing.Status == model.StatusAccepted:
			return model.NewErrAlreadyConnected()
		case err != nil && !errors.Is(err, model.ErrNotFound):
			return fmt.Errorf("failed to get connection: %w", err)
		}

		_, err = c.relationshipStore.Upsert(ctx, model.Relationship{
			Ledger:       model.LedgerConnection,
			OwnerID:      inviter.ID,
			PeerID:       callerID,
			Status:       model.StatusAccepted,
			SharedSecret: secret,
		})
		if err != nil {
			return fmt.Errorf("failed to accept inviter connection: %w", err)
		}

		accepted, err = c.relationshipStore.Upsert(ctx, model.Relationship{
			Ledger:       model.LedgerConnection,
			OwnerID:      callerID,
			PeerID:       inviter.ID,
			Status:       model.StatusAccepted,
			SharedSecret: secret,
		})
		if err != nil {
			return fmt.Errorf("failed to accept invitee connection: %w", err)
		}

		return nil
	})
	if err != nil {
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			c.logger.Error("Connection service: failed to accept invite",
				"user_id", callerID,
				"inviter_id", inviter.ID,
				"error", err.Error())
		}
		return model.Relationship{}, err
	}

	accepted.PeerEmail = inviter.Email

	metrics.RelationshipTransitionsTotal.WithLabelValues(string(model.LedgerConnection), string(model.StatusAccepted)).Inc()
	c.logger.Info("Connection service: invite accepted",
		"user_id", callerID,
		"inviter_id", inviter.ID,
		"jti", invite.JTI)

	return accepted, nil
}

// List returns every connection record on the user's ledger.
func (c *Connection) List(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error) {
	rels, err := c.relationshipStore.ListByOwner(ctx, model.LedgerConnection, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return rels, nil
}

func (c *Connection) acceptURL(token string) string {
	return strings.TrimRight(c.cfg.ClientURL, "/") + "/invite/accept/" + url.PathEscape(token)
}

func randomSecret() (string, error) {
	b := make([]byte, sharedSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
