package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

const maxBodyBytes = 1 << 20

type msgResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResponse{Msg: msg})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return model.NewErrInvalidArgument("Invalid request body")
	}
	return nil
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewErrInvalidArgument(field + " must be a valid id")
	}
	return id, nil
}

// remap overrides the response status of one error kind on a single route.
type remap struct {
	kind   error
	status int
}

func statusOf(kind error) int {
	switch {
	case errors.Is(kind, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, model.ErrInvalidState),
		errors.Is(kind, model.ErrInvalidArgument),
		errors.Is(kind, model.ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError converts err into a {msg} response. Errors that are not
// client-facing are logged and reported as a generic server error.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error, remaps ...remap) {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
		writeMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	status := statusOf(apiErr.Kind)
	for _, rm := range remaps {
		if errors.Is(apiErr.Kind, rm.kind) {
			status = rm.status
			break
		}
	}

	writeMsg(w, status, apiErr.Message)
}
