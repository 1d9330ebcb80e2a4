package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// FriendService defines friend ledger operations.
type FriendService interface {
	SendRequest(ctx context.Context, requesterID uuid.UUID, friendEmail string) error
	AcceptRequest(ctx context.Context, userID, requesterID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error)
	ListRequests(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error)
}

// Friend handles /friend endpoints.
type Friend struct {
	friendService  FriendService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewFriend creates a new Friend handler.
func NewFriend(friendService FriendService, contextManager model.ContextManager, logger *logger.Logger) *Friend {
	return &Friend{friendService: friendService, contextManager: contextManager, logger: logger}
}

// SendRequest records a friend request from the caller.
func (h *Friend) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	var req friendRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.friendService.SendRequest(r.Context(), userID, req.FriendEmail); err != nil {
		writeError(w, r, h.logger, err, remap{model.ErrConflict, http.StatusBadRequest})
		return
	}

	writeMsg(w, http.StatusOK, "Friend request sent")
}

// AcceptRequest accepts a pending request addressed to the caller.
func (h *Friend) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	var req friendAcceptRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	requesterID, err := parseID(req.RequesterID, "requesterId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.friendService.AcceptRequest(r.Context(), userID, requesterID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMsg(w, http.StatusOK, "Friend request accepted")
}

// ListFriends returns the caller's friends.
func (h *Friend) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	rels, err := h.friendService.ListFriends(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]peerResponse{"friends": newPeers(rels)})
}

// ListRequests returns requests waiting for the caller's answer.
func (h *Friend) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	rels, err := h.friendService.ListRequests(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]peerResponse{"requests": newPeers(rels)})
}
