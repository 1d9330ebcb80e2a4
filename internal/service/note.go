package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/metrics"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// Note stores messages exchanged between connected users.
type Note struct {
	noteStore model.NoteStore
	gate      *Gate
	logger    *logger.Logger
}

func NewNote(noteStore model.NoteStore, gate *Gate, logger *logger.Logger) *Note {
	return &Note{noteStore: noteStore, gate: gate, logger: logger}
}

// List returns the notes between callerID and peerID, oldest first.
func (n *Note) List(ctx context.Context, callerID, peerID uuid.UUID) ([]model.Note, error) {
	if err := n.gate.RequireConnected(ctx, callerID, peerID); err != nil {
		return nil, err
	}

	notes, err := n.noteStore.ListBetween(ctx, callerID, peerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Send stores a note from callerID to peerID.
func (n *Note) Send(ctx context.Context, callerID, peerID uuid.UUID, content, iv string) (model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return model.Note{}, model.NewErrInvalidArgument("content is required")
	}

	if err := n.gate.RequireConnected(ctx, callerID, peerID); err != nil {
		return model.Note{}, err
	}

	note, err := n.noteStore.Create(ctx, model.Note{
		SenderID:    callerID,
		RecipientID: peerID,
		Content:     content,
		IV:          iv,
	})
	if err != nil {
		n.logger.Error("Note service: failed to store note",
			"sender_id", callerID,
			"recipient_id", peerID,
			"error", err.Error())
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	metrics.MessagesStoredTotal.WithLabelValues("note").Inc()

	return note, nil
}
