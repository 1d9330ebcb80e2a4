package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lovebomb-server/internal/model"
)

var _ model.NotepadStore = (*NotepadRepository)(nil)

const notepadColumns = `id, user_low, user_high, shared_password_hash, created_at, updated_at`

type NotepadRepository struct {
	db *Connection
}

func NewNotepadRepository(db *Connection) *NotepadRepository {
	return &NotepadRepository{db: db}
}

func (r *NotepadRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Notepad, error) {
	query := `SELECT ` + notepadColumns + ` FROM notepads WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *NotepadRepository) GetByPair(ctx context.Context, low, high uuid.UUID) (model.Notepad, error) {
	query := `SELECT ` + notepadColumns + ` FROM notepads WHERE user_low = $1 AND user_high = $2`
	return r.get(ctx, query, low, high)
}

func (r *NotepadRepository) get(ctx context.Context, query string, args ...any) (model.Notepad, error) {
	var np model.Notepad
	err := r.db.conn(ctx).QueryRow(ctx, query, args...).Scan(
		&np.ID, &np.UserLow, &np.UserHigh, &np.SharedPasswordHash, &np.CreatedAt, &np.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Notepad{}, model.ErrNotFound
		}
		return model.Notepad{}, fmt.Errorf("failed to get notepad: %w", err)
	}
	return np, nil
}

// Create stores a notepad. A second notepad for the same pair yields ErrConflict.
func (r *NotepadRepository) Create(ctx context.Context, np model.Notepad) (model.Notepad, error) {
	query := `INSERT INTO notepads (id, user_low, user_high, shared_password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING ` + notepadColumns

	if np.ID == uuid.Nil {
		np.ID = uuid.New()
	}

	var saved model.Notepad
	err := r.db.conn(ctx).QueryRow(ctx, query, np.ID, np.UserLow, np.UserHigh, np.SharedPasswordHash).Scan(
		&saved.ID, &saved.UserLow, &saved.UserHigh, &saved.SharedPasswordHash, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Notepad{}, model.ErrConflict
		}
		return model.Notepad{}, fmt.Errorf("failed to create notepad: %w", err)
	}

	return saved, nil
}
