package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/model"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type publicKeyRequest struct {
	PublicKey string `json:"publicKey" validate:"required"`
}

type friendRequest struct {
	FriendEmail string `json:"friendEmail" validate:"required,email"`
}

type friendAcceptRequest struct {
	RequesterID string `json:"requesterId" validate:"required,uuid"`
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type createOrJoinRequest struct {
	UserID1        string `json:"userId1" validate:"required,uuid"`
	UserID2        string `json:"userId2" validate:"required,uuid"`
	SharedPassword string `json:"sharedPassword" validate:"required"`
}

type sendMessageRequest struct {
	NotepadID string `json:"notepadId" validate:"required,uuid"`
	Sender    string `json:"sender" validate:"omitempty,uuid"`
	Type      string `json:"type" validate:"omitempty,oneof=chat note"`
	Content   string `json:"content" validate:"required"`
}

type sendNoteRequest struct {
	Content string `json:"content" validate:"required"`
	IV      string `json:"iv"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	PublicKey string    `json:"publicKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, PublicKey: u.PublicKey, CreatedAt: u.CreatedAt}
}

type authResponse struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	User         *userResponse `json:"user,omitempty"`
}

type peerResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func newPeers(rels []model.Relationship) []peerResponse {
	peers := make([]peerResponse, 0, len(rels))
	for _, rel := range rels {
		peers = append(peers, peerResponse{ID: rel.PeerID, Email: rel.PeerEmail})
	}
	return peers
}

type connectionResponse struct {
	UserID       peerResponse `json:"userId"`
	Status       model.Status `json:"status"`
	SharedSecret string       `json:"sharedSecret,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func newConnections(rels []model.Relationship) []connectionResponse {
	out := make([]connectionResponse, 0, len(rels))
	for _, rel := range rels {
		c := connectionResponse{
			UserID:    peerResponse{ID: rel.PeerID, Email: rel.PeerEmail},
			Status:    rel.Status,
			CreatedAt: rel.CreatedAt,
		}
		if rel.Status == model.StatusAccepted {
			c.SharedSecret = rel.SharedSecret
		}
		out = append(out, c)
	}
	return out
}

type messageResponse struct {
	ID        uuid.UUID         `json:"id"`
	Sender    uuid.UUID         `json:"sender"`
	Type      model.MessageType `json:"type"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
}

func newMessages(msgs []model.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{
			ID:        m.ID,
			Sender:    m.SenderID,
			Type:      m.Type,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

type notepadResponse struct {
	ID        uuid.UUID         `json:"id"`
	Users     [2]uuid.UUID      `json:"users"`
	Messages  []messageResponse `json:"messages"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func newNotepadResponse(np model.Notepad) notepadResponse {
	return notepadResponse{
		ID:        np.ID,
		Users:     [2]uuid.UUID{np.UserLow, np.UserHigh},
		Messages:  newMessages(np.Messages),
		CreatedAt: np.CreatedAt,
		UpdatedAt: np.UpdatedAt,
	}
}

type noteResponse struct {
	ID        uuid.UUID `json:"id"`
	From      uuid.UUID `json:"from"`
	To        uuid.UUID `json:"to"`
	Content   string    `json:"content"`
	IV        string    `json:"iv"`
	CreatedAt time.Time `json:"createdAt"`
}

func newNoteResponse(n model.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		From:      n.SenderID,
		To:        n.RecipientID,
		Content:   n.Content,
		IV:        n.IV,
		CreatedAt: n.CreatedAt,
	}
}
