package model

import (
	"errors"
	"fmt"
)

// Error kinds shared by stores and services. Transport layers map them to
// response codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// APIError is a client-facing error carrying one of the error kinds above.
type APIError struct {
	Kind    error
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

func newAPIError(kind error, msg string) *APIError {
	return &APIError{Kind: kind, Message: msg}
}

func NewErrUserNotFound() *APIError {
	return newAPIError(ErrNotFound, "User not found")
}

func NewErrEmailIsTaken(email string) *APIError {
	return newAPIError(ErrConflict, fmt.Sprintf("User already exists: %s", email))
}

func NewErrInvalidCredentials() *APIError {
	return newAPIError(ErrInvalidCredentials, "Invalid credentials")
}

func NewErrInvalidArgument(msg string) *APIError {
	return newAPIError(ErrInvalidArgument, msg)
}

func NewErrMissingAuthorizationToken() *APIError {
	return newAPIError(ErrUnauthorized, "No token, authorization denied")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return newAPIError(ErrUnauthorized, "Token is not valid")
}

func NewErrFriendRequestExists() *APIError {
	return newAPIError(ErrConflict, "Already requested or friends")
}

func NewErrNoFriendRequest() *APIError {
	return newAPIError(ErrInvalidState, "No such friend request")
}

func NewErrAlreadyFriends() *APIError {
	return newAPIError(ErrConflict, "Already friends")
}

func NewErrAlreadyConnected() *APIError {
	return newAPIError(ErrConflict, "Already connected or invited")
}

func NewErrSelfRelationship() *APIError {
	return newAPIError(ErrInvalidArgument, "Cannot target yourself")
}

func NewErrInvalidInviteToken() *APIError {
	return newAPIError(ErrUnauthorized, "Invalid or expired invite")
}

func NewErrInviteNotForYou() *APIError {
	return newAPIError(ErrForbidden, "This invite is not for you")
}

func NewErrInvalidInvite() *APIError {
	return newAPIError(ErrNotFound, "Invalid invite")
}

func NewErrInviteAlreadyUsed() *APIError {
	return newAPIError(ErrConflict, "Invite already used")
}

func NewErrNotConnected() *APIError {
	return newAPIError(ErrForbidden, "Not connected with this user")
}

func NewErrNotepadNotFound() *APIError {
	return newAPIError(ErrNotFound, "Notepad not found")
}

func NewErrWrongNotepadPassword() *APIError {
	return newAPIError(ErrUnauthorized, "Invalid shared password")
}

func NewErrNotNotepadMember() *APIError {
	return newAPIError(ErrForbidden, "You can only open your own notepads")
}

func NewErrSenderMismatch() *APIError {
	return newAPIError(ErrForbidden, "Sender must be the authenticated user")
}
