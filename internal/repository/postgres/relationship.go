package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lovebomb-server/internal/model"
)

var _ model.RelationshipStore = (*RelationshipRepository)(nil)

const relationshipColumns = `r.id, r.ledger, r.owner_id, r.peer_id, u.email, r.status, r.shared_secret, r.created_at, r.updated_at`

type RelationshipRepository struct {
	db *Connection
}

func NewRelationshipRepository(db *Connection) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

func scanRelationship(row pgx.Row) (model.Relationship, error) {
	var rel model.Relationship
	err := row.Scan(
		&rel.ID, &rel.Ledger, &rel.OwnerID, &rel.PeerID, &rel.PeerEmail,
		&rel.Status, &rel.SharedSecret, &rel.CreatedAt, &rel.UpdatedAt,
	)
	return rel, err
}

func (r *RelationshipRepository) Get(ctx context.Context, ledger model.Ledger, ownerID, peerID uuid.UUID) (model.Relationship, error) {
	const query = `
        SELECT ` + relationshipColumns + `
        FROM relationships r JOIN users u ON u.id = r.peer_id
        WHERE r.ledger = $1 AND r.owner_id = $2 AND r.peer_id = $3
    `
	return r.get(ctx, query, ledger, ownerID, peerID)
}

// GetForUpdate locks the record until the surrounding transaction ends.
func (r *RelationshipRepository) GetForUpdate(ctx context.Context, ledger model.Ledger, ownerID, peerID uuid.UUID) (model.Relationship, error) {
	const query = `
        SELECT ` + relationshipColumns + `
        FROM relationships r JOIN users u ON u.id = r.peer_id
        WHERE r.ledger = $1 AND r.owner_id = $2 AND r.peer_id = $3
        FOR UPDATE OF r
    `
	return r.get(ctx, query, ledger, ownerID, peerID)
}

// LockPair takes row locks on both users in id order. FOR NO KEY UPDATE does not
// block foreign key checks from relationship inserts.
func (r *RelationshipRepository) LockPair(ctx context.Context, a, b uuid.UUID) error {
	const query = `
        SELECT id FROM users
        WHERE id IN ($1, $2)
        ORDER BY id
        FOR NO KEY UPDATE
    `
	low, high := model.CanonicalPair(a, b)
	if _, err := r.db.conn(ctx).Exec(ctx, query, low, high); err != nil {
		return fmt.Errorf("failed to lock user pair: %w", err)
	}
	return nil
}

func (r *RelationshipRepository) get(ctx context.Context, query string, args ...any) (model.Relationship, error) {
	rel, err := scanRelationship(r.db.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Relationship{}, model.ErrNotFound
		}
		return model.Relationship{}, fmt.Errorf("failed to get relationship: %w", err)
	}
	return rel, nil
}

func (r *RelationshipRepository) Create(ctx context.Context, rel model.Relationship) (model.Relationship, error) {
	const query = `
        INSERT INTO relationships (id, ledger, owner_id, peer_id, status, shared_secret, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}

	err := r.db.conn(ctx).QueryRow(ctx, query,
		rel.ID, rel.Ledger, rel.OwnerID, rel.PeerID, rel.Status, rel.SharedSecret,
	).Scan(&rel.ID, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Relationship{}, model.ErrConflict
		}
		return model.Relationship{}, fmt.Errorf("failed to create relationship: %w", err)
	}

	return rel, nil
}

// Upsert inserts the record or overwrites status and secret of the existing one.
func (r *RelationshipRepository) Upsert(ctx context.Context, rel model.Relationship) (model.Relationship, error) {
	const query = `
        INSERT INTO relationships (id, ledger, owner_id, peer_id, status, shared_secret, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        ON CONFLICT (ledger, owner_id, peer_id)
        DO UPDATE SET status = EXCLUDED.status, shared_secret = EXCLUDED.shared_secret, updated_at = NOW()
        RETURNING id, created_at, updated_at
    `
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}

	err := r.db.conn(ctx).QueryRow(ctx, query,
		rel.ID, rel.Ledger, rel.OwnerID, rel.PeerID, rel.Status, rel.SharedSecret,
	).Scan(&rel.ID, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		return model.Relationship{}, fmt.Errorf("failed to upsert relationship: %w", err)
	}

	return rel, nil
}

func (r *RelationshipRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status, sharedSecret string) error {
	const query = `
        UPDATE relationships SET status = $2, shared_secret = $3, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.conn(ctx).Exec(ctx, query, id, status, sharedSecret)
	if err != nil {
		return fmt.Errorf("failed to update relationship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *RelationshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM relationships WHERE id = $1`

	if _, err := r.db.conn(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's records on a ledger, oldest first. With no
// statuses given every record is returned.
func (r *RelationshipRepository) ListByOwner(ctx context.Context, ledger model.Ledger, ownerID uuid.UUID, statuses ...model.Status) ([]model.Relationship, error) {
	const query = `
        SELECT ` + relationshipColumns + `
        FROM relationships r JOIN users u ON u.id = r.peer_id
        WHERE r.ledger = $1 AND r.owner_id = $2
          AND (cardinality($3::text[]) = 0 OR r.status = ANY($3::text[]))
        ORDER BY r.created_at, r.id
    `
	filter := make([]string, 0, len(statuses))
	for _, s := range statuses {
		filter = append(filter, string(s))
	}

	rows, err := r.db.conn(ctx).Query(ctx, query, ledger, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	result := make([]model.Relationship, 0)
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		result = append(result, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate relationships: %w", err)
	}

	return result, nil
}
