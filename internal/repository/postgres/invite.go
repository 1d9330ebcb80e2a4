package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/lovebomb-server/internal/model"
)

var _ model.InviteStore = (*InviteRepository)(nil)

type InviteRepository struct {
	db *Connection
}

func NewInviteRepository(db *Connection) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Consume(ctx context.Context, invite model.Invite) error {
	const query = `
        INSERT INTO consumed_invites (jti, inviter_id, invitee_id, expires_at, consumed_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (jti) DO NOTHING
    `
	tag, err := r.db.conn(ctx).Exec(ctx, query, invite.JTI, invite.From, invite.To, invite.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to consume invite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}
	return nil
}
