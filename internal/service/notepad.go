package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/metrics"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// Notepad manages password-gated channels between two users. The first
// caller for a pair sets the password; later callers must present it.
type Notepad struct {
	userStore    model.UserStore
	notepadStore model.NotepadStore
	messageStore model.MessageStore
	hasher       model.PasswordHasher
	logger       *logger.Logger
}

func NewNotepad(
	userStore model.UserStore,
	notepadStore model.NotepadStore,
	messageStore model.MessageStore,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Notepad {
	return &Notepad{
		userStore:    userStore,
		notepadStore: notepadStore,
		messageStore: messageStore,
		hasher:       hasher,
		logger:       logger,
	}
}

// CreateOrJoin opens the notepad of the pair {userID1, userID2}, creating it
// with password when absent. The caller must be one of the pair.
func (n *Notepad) CreateOrJoin(ctx context.Context, callerID, userID1, userID2 uuid.UUID, password string) (model.Notepad, error) {
	if userID1 == userID2 {
		return model.Notepad{}, model.NewErrSelfRelationship()
	}
	if password == "" {
		return model.Notepad{}, model.NewErrInvalidArgument("sharedPassword is required")
	}
	if len(password) > model.MaxPasswordLength {
		return model.Notepad{}, model.NewErrInvalidArgument(
			fmt.Sprintf("sharedPassword must be at most %d bytes", model.MaxPasswordLength))
	}
	if callerID != userID1 && callerID != userID2 {
		return model.Notepad{}, model.NewErrNotNotepadMember()
	}

	for _, id := range []uuid.UUID{userID1, userID2} {
		if _, err := n.userStore.GetByID(ctx, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Notepad{}, model.NewErrUserNotFound()
			}
			return model.Notepad{}, fmt.Errorf("failed to get user by id: %w", err)
		}
	}

	low, high := model.CanonicalPair(userID1, userID2)

	np, err := n.notepadStore.GetByPair(ctx, low, high)
	switch {
	case err == nil:
		return n.join(ctx, np, password)
	case !errors.Is(err, model.ErrNotFound):
		return model.Notepad{}, fmt.Errorf("failed to get notepad: %w", err)
	}

	hash, err := n.hasher.Hash(password)
	if err != nil {
		return model.Notepad{}, fmt.Errorf("failed to hash shared password: %w", err)
	}

	np, err = n.notepadStore.Create(ctx, model.Notepad{
		UserLow:            low,
		UserHigh:           high,
		SharedPasswordHash: hash,
	})
	if err != nil {
		if !errors.Is(err, model.ErrConflict) {
			return model.Notepad{}, fmt.Errorf("failed to create notepad: %w", err)
		}

		// lost the race to a concurrent creator
		np, err = n.notepadStore.GetByPair(ctx, low, high)
		if err != nil {
			return model.Notepad{}, fmt.Errorf("failed to get notepad: %w", err)
		}
		return n.join(ctx, np, password)
	}

	n.logger.Info("Notepad service: notepad created",
		"notepad_id", np.ID,
		"created_by", callerID)

	np.Messages = []model.Message{}
	return np, nil
}

func (n *Notepad) join(ctx context.Context, np model.Notepad, password string) (model.Notepad, error) {
	if !n.hasher.Compare(np.SharedPasswordHash, password) {
		n.logger.Info("Notepad service: wrong shared password",
			"notepad_id", np.ID)
		return model.Notepad{}, model.NewErrWrongNotepadPassword()
	}

	messages, err := n.messageStore.ListByNotepad(ctx, np.ID)
	if err != nil {
		return model.Notepad{}, fmt.Errorf("failed to list messages: %w", err)
	}
	np.Messages = messages

	return np, nil
}

// SendMessage appends a message to the notepad and returns the notepad with
// its full log.
func (n *Notepad) SendMessage(ctx context.Context, notepadID, senderID uuid.UUID, msgType model.MessageType, content string) (model.Notepad, error) {
	if msgType == "" {
		msgType = model.MessageTypeChat
	}
	if !msgType.Valid() {
		return model.Notepad{}, model.NewErrInvalidArgument("type must be one of: chat note")
	}
	if strings.TrimSpace(content) == "" {
		return model.Notepad{}, model.NewErrInvalidArgument("content is required")
	}

	np, err := n.get(ctx, notepadID)
	if err != nil {
		return model.Notepad{}, err
	}

	_, err = n.messageStore.Append(ctx, model.Message{
		NotepadID: np.ID,
		SenderID:  senderID,
		Type:      msgType,
		Content:   content,
	})
	if err != nil {
		n.logger.Error("Notepad service: failed to append message",
			"notepad_id", notepadID,
			"sender_id", senderID,
			"error", err.Error())
		return model.Notepad{}, fmt.Errorf("failed to append message: %w", err)
	}

	metrics.MessagesStoredTotal.WithLabelValues("notepad").Inc()

	messages, err := n.messageStore.ListByNotepad(ctx, np.ID)
	if err != nil {
		return model.Notepad{}, fmt.Errorf("failed to list messages: %w", err)
	}
	np.Messages = messages

	return np, nil
}

// ListMessages returns the notepad's full message log in append order.
func (n *Notepad) ListMessages(ctx context.Context, notepadID uuid.UUID) ([]model.Message, error) {
	if _, err := n.get(ctx, notepadID); err != nil {
		return nil, err
	}

	messages, err := n.messageStore.ListByNotepad(ctx, notepadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (n *Notepad) get(ctx context.Context, id uuid.UUID) (model.Notepad, error) {
	np, err := n.notepadStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Notepad{}, model.NewErrNotepadNotFound()
		}
		return model.Notepad{}, fmt.Errorf("failed to get notepad: %w", err)
	}
	return np, nil
}
