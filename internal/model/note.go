package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Note is a message exchanged between two connected users. IV is stored as
// provided by the client.
type Note struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	IV          string
	CreatedAt   time.Time
	Seq         int64
}

// NoteStore defines persistence operations for notes.
type NoteStore interface {
	Create(ctx context.Context, note Note) (Note, error)
	ListBetween(ctx context.Context, a, b uuid.UUID) ([]Note, error)
}
