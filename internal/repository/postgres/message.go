package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/model"
)

var _ model.MessageStore = (*MessageRepository)(nil)

type MessageRepository struct {
	db *Connection
}

func NewMessageRepository(db *Connection) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Append(ctx context.Context, msg model.Message) (model.Message, error) {
	const query = `
        INSERT INTO notepad_messages (id, notepad_id, sender_id, type, content, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING seq, created_at
    `
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	err := r.db.conn(ctx).QueryRow(ctx, query, msg.ID, msg.NotepadID, msg.SenderID, msg.Type, msg.Content).
		Scan(&msg.Seq, &msg.CreatedAt)
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to append message: %w", err)
	}

	return msg, nil
}

func (r *MessageRepository) ListByNotepad(ctx context.Context, notepadID uuid.UUID) ([]model.Message, error) {
	const query = `
        SELECT id, notepad_id, sender_id, type, content, created_at, seq
        FROM notepad_messages WHERE notepad_id = $1
        ORDER BY created_at, seq
    `
	rows, err := r.db.conn(ctx).Query(ctx, query, notepadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.NotepadID, &m.SenderID, &m.Type, &m.Content, &m.CreatedAt, &m.Seq); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
