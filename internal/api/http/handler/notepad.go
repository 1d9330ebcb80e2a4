package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// NotepadService defines password-gated notepad operations.
type NotepadService interface {
	CreateOrJoin(ctx context.Context, callerID, userID1, userID2 uuid.UUID, password string) (model.Notepad, error)
	SendMessage(ctx context.Context, notepadID, senderID uuid.UUID, msgType model.MessageType, content string) (model.Notepad, error)
	ListMessages(ctx context.Context, notepadID uuid.UUID) ([]model.Message, error)
}

// Notepad handles /notepad endpoints.
type Notepad struct {
	notepadService NotepadService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewNotepad creates a new Notepad handler.
func NewNotepad(notepadService NotepadService, contextManager model.ContextManager, logger *logger.Logger) *Notepad {
	return &Notepad{notepadService: notepadService, contextManager: contextManager, logger: logger}
}

// CreateOrJoin opens the notepad of two users.
func (h *Notepad) CreateOrJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	var req createOrJoinRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u1, err := parseID(req.UserID1, "userId1")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u2, err := parseID(req.UserID2, "userId2")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	np, err := h.notepadService.CreateOrJoin(r.Context(), userID, u1, u2, req.SharedPassword)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]notepadResponse{"notepad": newNotepadResponse(np)})
}

// SendMessage appends a message from the caller.
func (h *Notepad) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Sender != "" && req.Sender != userID.String() {
		writeError(w, r, h.logger, model.NewErrSenderMismatch())
		return
	}
	notepadID, err := parseID(req.NotepadID, "notepadId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	np, err := h.notepadService.SendMessage(r.Context(), notepadID, userID, model.MessageType(req.Type), req.Content)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Msg     string          `json:"msg"`
		Notepad notepadResponse `json:"notepad"`
	}{Msg: "Message sent", Notepad: newNotepadResponse(np)})
}

// ListMessages returns the notepad's messages.
func (h *Notepad) ListMessages(w http.ResponseWriter, r *http.Request) {
	notepadID, err := uuid.Parse(chi.URLParam(r, "notepadId"))
	if err != nil {
		writeError(w, r, h.logger, model.NewErrNotepadNotFound())
		return
	}

	msgs, err := h.notepadService.ListMessages(r.Context(), notepadID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]messageResponse{"messages": newMessages(msgs)})
}
