package model

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageType enumerates notepad message kinds.
type MessageType string

const (
	MessageTypeChat MessageType = "chat"
	MessageTypeNote MessageType = "note"
)

// Valid reports whether the message type is known.
func (t MessageType) Valid() bool {
	return t == MessageTypeChat || t == MessageTypeNote
}

// Notepad is a password-gated channel shared by an unordered pair of users.
type Notepad struct {
	ID                 uuid.UUID
	UserLow            uuid.UUID
	UserHigh           uuid.UUID
	SharedPasswordHash []byte
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Messages           []Message
}

// Message is an append-only notepad entry.
type Message struct {
	ID        uuid.UUID
	NotepadID uuid.UUID
	SenderID  uuid.UUID
	Type      MessageType
	Content   string
	CreatedAt time.Time
	Seq       int64
}

// CanonicalPair orders two ids so that {a,b} and {b,a} map to the same key.
func CanonicalPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// NotepadStore defines persistence operations for notepads.
type NotepadStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Notepad, error)
	GetByPair(ctx context.Context, low, high uuid.UUID) (Notepad, error)
	Create(ctx context.Context, notepad Notepad) (Notepad, error)
}

// MessageStore defines persistence operations for notepad messages.
type MessageStore interface {
	Append(ctx context.Context, msg Message) (Message, error)
	ListByNotepad(ctx context.Context, notepadID uuid.UUID) ([]Message, error)
}
