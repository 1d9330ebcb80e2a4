package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/model"
)

var _ model.NoteStore = (*NoteRepository)(nil)

type NoteRepository struct {
	db *Connection
}

func NewNoteRepository(db *Connection) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	const query = `
        INSERT INTO notes (id, sender_id, recipient_id, content, iv, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING seq, created_at
    `
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	err := r.db.conn(ctx).QueryRow(ctx, query, note.ID, note.SenderID, note.RecipientID, note.Content, note.IV).
		Scan(&note.Seq, &note.CreatedAt)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// ListBetween returns notes exchanged in either direction, oldest first.
func (r *NoteRepository) ListBetween(ctx context.Context, a, b uuid.UUID) ([]model.Note, error) {
	const query = `
        SELECT id, sender_id, recipient_id, content, iv, created_at, seq
        FROM notes
        WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
        ORDER BY created_at, seq
    `
	rows, err := r.db.conn(ctx).Query(ctx, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.SenderID, &n.RecipientID, &n.Content, &n.IV, &n.CreatedAt, &n.Seq); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}
