package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// NoteService defines connection-scoped note operations.
type NoteService interface {
	List(ctx context.Context, callerID, peerID uuid.UUID) ([]model.Note, error)
	Send(ctx context.Context, callerID, peerID uuid.UUID, content, iv string) (model.Note, error)
}

// Note handles /api/notes endpoints.
type Note struct {
	noteService    NoteService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewNote creates a new Note handler.
func NewNote(noteService NoteService, contextManager model.ContextManager, logger *logger.Logger) *Note {
	return &Note{noteService: noteService, contextManager: contextManager, logger: logger}
}

// List returns the notes exchanged with the user in the path.
func (h *Note) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}
	peerID, err := parseID(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	notes, err := h.noteService.List(r.Context(), userID, peerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, newNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, out)
}

// Send stores a note for the user in the path.
func (h *Note) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}
	peerID, err := parseID(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req sendNoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	note, err := h.noteService.Send(r.Context(), userID, peerID, req.Content, req.IV)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newNoteResponse(note))
}
