package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/metrics"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// Friend runs the open friend-request flow. A pending request lives on the
// recipient's ledger with status requested.
type Friend struct {
	userStore         model.UserStore
	relationshipStore model.RelationshipStore
	tx                model.Transactor
	logger            *logger.Logger
}

func NewFriend(
	userStore model.UserStore,
	relationshipStore model.RelationshipStore,
	tx model.Transactor,
	logger *logger.Logger,
) *Friend {
	return &Friend{
		userStore:         userStore,
		relationshipStore: relationshipStore,
		tx:                tx,
		logger:            logger,
	}
}

// SendRequest records a friend request from requesterID to the user with
// friendEmail.
func (f *Friend) SendRequest(ctx context.Context, requesterID uuid.UUID, friendEmail string) error {
	recipient, err := f.userStore.GetByEmail(ctx, friendEmail)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewErrUserNotFound()
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if recipient.ID == requesterID {
		return model.NewErrSelfRelationship()
	}

	_, err = f.relationshipStore.Get(ctx, model.LedgerFriend, recipient.ID, requesterID)
	if err == nil {
		return model.NewErrFriendRequestExists()
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get relationship: %w", err)
	}

	_, err = f.relationshipStore.Create(ctx, model.Relationship{
		Ledger:  model.LedgerFriend,
		OwnerID: recipient.ID,
		PeerID:  requesterID,
		Status:  model.StatusRequested,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.NewErrFriendRequestExists()
		}
		f.logger.Error("Friend service: failed to create request",
			"requester_id", requesterID,
			"recipient_id", recipient.ID,
			"error", err.Error())
		return fmt.Errorf("failed to create friend request: %w", err)
	}

	metrics.RelationshipTransitionsTotal.WithLabelValues(string(model.LedgerFriend), string(model.StatusRequested)).Inc()
	f.logger.Info("Friend service: request sent",
		"requester_id", requesterID,
		"recipient_id", recipient.ID)

	return nil
}

// AcceptRequest turns requesterID's pending request on userID's ledger into a
// mutual friendship. Both records are written in one transaction.
func (f *Friend) AcceptRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	for _, id := range []uuid.UUID{userID, requesterID} {
		if _, err := f.userStore.GetByID(ctx, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewErrUserNotFound()
			}
			return fmt.Errorf("failed to get user by id: %w", err)
		}
	}

	err := f.tx.WithinTx(ctx, func(ctx context.Context) error {
		rel, err := f.relationshipStore.GetForUpdate(ctx, model.LedgerFriend, userID, requesterID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewErrNoFriendRequest()
			}
			return fmt.Errorf("failed to lock friend request: %w", err)
		}

		if rel.Status == model.StatusFriends {
			return model.NewErrAlreadyFriends()
		}

		if err := f.relationshipStore.UpdateStatus(ctx, rel.ID, model.StatusFriends, ""); err != nil {
			return fmt.Errorf("failed to accept friend request: %w", err)
		}

		_, err = f.relationshipStore.Upsert(ctx, model.Relationship{
			Ledger:  model.LedgerFriend,
			OwnerID: requesterID,
			PeerID:  userID,
			Status:  model.StatusFriends,
		})
		if err != nil {
			return fmt.Errorf("failed to mirror friendship: %w", err)
		}

		return nil
	})
	if err != nil {
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			f.logger.Error("Friend service: failed to accept request",
				"user_id", userID,
				"requester_id", requesterID,
				"error", err.Error())
		}
		return err
	}

	metrics.RelationshipTransitionsTotal.WithLabelValues(string(model.LedgerFriend), string(model.StatusFriends)).Inc()
	f.logger.Info("Friend service: request accepted",
		"user_id", userID,
		"requester_id", requesterID)

	return nil
}

// ListFriends returns the user's friends.
func (f *Friend) ListFriends(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error) {
	rels, err := f.relationshipStore.ListByOwner(ctx, model.LedgerFriend, userID, model.StatusFriends)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return rels, nil
}

// ListRequests returns the friend requests waiting for the user.
func (f *Friend) ListRequests(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error) {
	rels, err := f.relationshipStore.ListByOwner(ctx, model.LedgerFriend, userID, model.StatusRequested)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return rels, nil
}
