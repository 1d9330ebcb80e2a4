package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// ConnectionService defines invite-based connection operations.
type ConnectionService interface {
	Invite(ctx context.Context, fromID uuid.UUID, email string) error
	Accept(ctx context.Context, token string, callerID uuid.UUID) (model.Relationship, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error)
}

// Connection handles /connections endpoints.
type Connection struct {
	connectionService ConnectionService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

// NewConnection creates a new Connection handler.
func NewConnection(connectionService ConnectionService, contextManager model.ContextManager, logger *logger.Logger) *Connection {
	return &Connection{connectionService: connectionService, contextManager: contextManager, logger: logger}
}

// List returns every connection record of the caller.
func (h *Connection) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	rels, err := h.connectionService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newConnections(rels))
}

// Invite emails an invite link to the user with the given email.
func (h *Connection) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	var req inviteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err := h.connectionService.Invite(r.Context(), userID, req.Email)
	if err != nil {
		writeError(w, r, h.logger, err,
			remap{model.ErrNotFound, http.StatusBadRequest},
			remap{model.ErrConflict, http.StatusBadRequest})
		return
	}

	writeMsg(w, http.StatusOK, "Invitation sent")
}

// Accept redeems the invite token in the path for the caller.
func (h *Connection) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	_, err := h.connectionService.Accept(r.Context(), chi.URLParam(r, "token"), userID)
	if err != nil {
		writeError(w, r, h.logger, err, remap{model.ErrNotFound, http.StatusBadRequest})
		return
	}

	writeMsg(w, http.StatusOK, "Connection accepted")
}
