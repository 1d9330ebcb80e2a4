package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
	"github.com/dtroode/lovebomb-server/internal/validation"
)

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (model.Session, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	SetPublicKey(ctx context.Context, userID uuid.UUID, publicKey string) (model.User, error)
	Refresh(ctx context.Context, refreshToken string) (model.Session, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Auth handles /api/auth endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, contextManager: contextManager, logger: logger}
}

// Register creates an account and returns a session for it.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		// an existing account is reported as a bad request
		writeError(w, r, h.logger, err, remap{model.ErrConflict, http.StatusBadRequest})
		return
	}

	h.logger.Info("Auth handler: user registered",
		"user_id", res.User.ID)

	writeJSON(w, http.StatusCreated, newAuthResponse(res))
}

// Login verifies credentials and returns a session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

// Me returns the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Refresh rotates a refresh token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

// Logout revokes a refresh token.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword replaces the caller's password.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetPublicKey stores the caller's public key.
func (h *Auth) SetPublicKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	var req publicKeyRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.authService.SetPublicKey(r.Context(), userID, req.PublicKey)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func newAuthResponse(res model.Session) authResponse {
	resp := authResponse{Token: res.AccessToken, RefreshToken: res.RefreshToken}
	if res.User.ID != uuid.Nil {
		u := newUserResponse(res.User)
		resp.User = &u
	}
	return resp
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return validation.ValidateStruct(dst)
}

// callerID returns the authenticated user or writes a 401 response.
func callerID(w http.ResponseWriter, r *http.Request, cm model.ContextManager) (uuid.UUID, bool) {
	userID, ok := cm.GetUserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, model.NewErrMissingAuthorizationToken().Message)
		return uuid.Nil, false
	}
	return userID, true
}
