package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lovebomb-server/internal/mocks"
	"github.com/dtroode/lovebomb-server/internal/model"
	"github.com/dtroode/lovebomb-server/internal/testutil"
)

func TestFriend_SendRequest(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		callSvc    bool
		wantStatus int
		wantMsg    string
	}{
		{name: "sent", body: `{"friendEmail":"b@b.com"}`, callSvc: true, wantStatus: http.StatusOK, wantMsg: "Friend request sent"},
		{name: "unknown user", body: `{"friendEmail":"b@b.com"}`, callSvc: true, svcErr: model.NewErrUserNotFound(), wantStatus: http.StatusNotFound, wantMsg: "User not found"},
		{name: "duplicate is a bad request", body: `{"friendEmail":"b@b.com"}`, callSvc: true, svcErr: model.NewErrFriendRequestExists(), wantStatus: http.StatusBadRequest},
		{name: "missing email", body: `{}`, wantStatus: http.StatusBadRequest, wantMsg: "friendEmail is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewFriendService(t)
			h := NewFriend(svc, ctxManager, testutil.MakeNoopLogger())
			if tt.callSvc {
				svc.On("SendRequest", mock.Anything, userID, "b@b.com").Return(tt.svcErr).Once()
			}

			rec := do(t, http.MethodPost, "/friend/request", "/friend/request", tt.body, userID, h.SendRequest)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeMsg(t, rec))
			}
		})
	}
}

func TestFriend_AcceptRequest(t *testing.T) {
	userID, requester := uuid.New(), uuid.New()
	body := `{"requesterId":"` + requester.String() + `"}`

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "accepted", wantStatus: http.StatusOK},
		{name: "no such request", svcErr: model.NewErrNoFriendRequest(), wantStatus: http.StatusBadRequest},
		{name: "unknown user", svcErr: model.NewErrUserNotFound(), wantStatus: http.StatusNotFound},
		{name: "already friends", svcErr: model.NewErrAlreadyFriends(), wantStatus: http.StatusConflict},
		{name: "store failure", svcErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewFriendService(t)
			h := NewFriend(svc, ctxManager, testutil.MakeNoopLogger())
			svc.On("AcceptRequest", mock.Anything, userID, requester).Return(tt.svcErr).Once()

			rec := do(t, http.MethodPost, "/friend/accept", "/friend/accept", body, userID, h.AcceptRequest)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestFriend_Lists(t *testing.T) {
	svc := mocks.NewFriendService(t)
	h := NewFriend(svc, ctxManager, testutil.MakeNoopLogger())
	userID, peer := uuid.New(), uuid.New()

	svc.On("ListFriends", mock.Anything, userID).
		Return([]model.Relationship{{PeerID: peer, PeerEmail: "p@b.com", Status: model.StatusFriends}}, nil).Once()
	svc.On("ListRequests", mock.Anything, userID).Return([]model.Relationship(nil), nil).Once()

	rec := do(t, http.MethodGet, "/friend/list", "/friend/list", "", userID, h.ListFriends)
	require.Equal(t, http.StatusOK, rec.Code)
	var friends map[string][]peerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &friends))
	require.Len(t, friends["friends"], 1)
	assert.Equal(t, peer, friends["friends"][0].ID)
	assert.Equal(t, "p@b.com", friends["friends"][0].Email)

	rec = do(t, http.MethodGet, "/friend/requests", "/friend/requests", "", userID, h.ListRequests)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"requests":[]}`, rec.Body.String())
}

func TestConnection_List_HidesPendingSecret(t *testing.T) {
	svc := mocks.NewConnectionService(t)
	h := NewConnection(svc, ctxManager, testutil.MakeNoopLogger())
	userID, a, b := uuid.New(), uuid.New(), uuid.New()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	svc.On("List", mock.Anything, userID).Return([]model.Relationship{
		{PeerID: a, PeerEmail: "a@b.com", Status: model.StatusAccepted, SharedSecret: "abc", CreatedAt: created},
		{PeerID: b, PeerEmail: "b@b.com", Status: model.StatusPending, SharedSecret: "leak", CreatedAt: created},
	}, nil).Once()

	rec := do(t, http.MethodGet, "/connections", "/connections", "", userID, h.List)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []connectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, a, resp[0].UserID.ID)
	assert.Equal(t, "abc", resp[0].SharedSecret)
	assert.Empty(t, resp[1].SharedSecret)
	assert.NotContains(t, rec.Body.String(), "leak")
}

func TestConnection_Invite(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "sent", wantStatus: http.StatusOK},
		{name: "unknown user", svcErr: model.NewErrUserNotFound(), wantStatus: http.StatusBadRequest},
		{name: "already connected", svcErr: model.NewErrAlreadyConnected(), wantStatus: http.StatusBadRequest},
		{name: "mail failure", svcErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewConnectionService(t)
			h := NewConnection(svc, ctxManager, testutil.MakeNoopLogger())
			svc.On("Invite", mock.Anything, userID, "b@b.com").Return(tt.svcErr).Once()

			rec := do(t, http.MethodPost, "/connections/invite", "/connections/invite", `{"email":"b@b.com"}`, userID, h.Invite)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestConnection_Accept(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "accepted", wantStatus: http.StatusOK},
		{name: "bad token", svcErr: model.NewErrInvalidInviteToken(), wantStatus: http.StatusUnauthorized},
		{name: "wrong recipient", svcErr: model.NewErrInviteNotForYou(), wantStatus: http.StatusForbidden},
		{name: "inviter gone", svcErr: model.NewErrInvalidInvite(), wantStatus: http.StatusBadRequest},
		{name: "reused", svcErr: model.NewErrInviteAlreadyUsed(), wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewConnectionService(t)
			h := NewConnection(svc, ctxManager, testutil.MakeNoopLogger())
			svc.On("Accept", mock.Anything, "tok.en", userID).Return(model.Relationship{}, tt.svcErr).Once()

			rec := do(t, http.MethodPost, "/connections/accept/{token}", "/connections/accept/tok.en", "", userID, h.Accept)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
