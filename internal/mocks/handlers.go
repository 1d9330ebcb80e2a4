package mocks

import (
	"context"
	"net"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/lovebomb-server/internal/model"
)

// AuthService is a mock of handler.AuthService.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (m *AuthService) Register(ctx context.Context, email, password string) (model.Session, error) {
	ret := m.Called(ctx, email, password)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (model.Session, error) {
	ret := m.Called(ctx, email, password)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func (m *AuthService) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	ret := m.Called(ctx, userID)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return m.Called(ctx, userID, current, next).Error(0)
}

func (m *AuthService) SetPublicKey(ctx context.Context, userID uuid.UUID, publicKey string) (model.User, error) {
	ret := m.Called(ctx, userID, publicKey)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.Session, error) {
	ret := m.Called(ctx, refreshToken)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

// FriendService is a mock of handler.FriendService.
type FriendService struct {
	mock.Mock
}

func NewFriendService(t testingT) *FriendService {
	m := &FriendService{}
	register(&m.Mock, t)
	return m
}

func (m *FriendService) SendRequest(ctx context.Context, requesterID uuid.UUID, friendEmail string) error {
	return m.Called(ctx, requesterID, friendEmail).Error(0)
}

func (m *FriendService) AcceptRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	return m.Called(ctx, userID, requesterID).Error(0)
}

func (m *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error) {
	ret := m.Called(ctx, userID)
	rels, _ := ret.Get(0).([]model.Relationship)
	return rels, ret.Error(1)
}

func (m *FriendService) ListRequests(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error) {
	ret := m.Called(ctx, userID)
	rels, _ := ret.Get(0).([]model.Relationship)
	return rels, ret.Error(1)
}

// ConnectionService is a mock of handler.ConnectionService.
type ConnectionService struct {
	mock.Mock
}

func NewConnectionService(t testingT) *ConnectionService {
	m := &ConnectionService{}
	register(&m.Mock, t)
	return m
}

func (m *ConnectionService) Invite(ctx context.Context, fromID uuid.UUID, email string) error {
	return m.Called(ctx, fromID, email).Error(0)
}

func (m *ConnectionService) Accept(ctx context.Context, token string, callerID uuid.UUID) (model.Relationship, error) {
	ret := m.Called(ctx, token, callerID)
	return ret.Get(0).(model.Relationship), ret.Error(1)
}

func (m *ConnectionService) List(ctx context.Context, userID uuid.UUID) ([]model.Relationship, error) {
	ret := m.Called(ctx, userID)
	rels, _ := ret.Get(0).([]model.Relationship)
	return rels, ret.Error(1)
}

// NotepadService is a mock of handler.NotepadService.
type NotepadService struct {
	mock.Mock
}

func NewNotepadService(t testingT) *NotepadService {
	m := &NotepadService{}
	register(&m.Mock, t)
	return m
}

func (m *NotepadService) CreateOrJoin(ctx context.Context, callerID, userID1, userID2 uuid.UUID, password string) (model.Notepad, error) {
	ret := m.Called(ctx, callerID, userID1, userID2, password)
	return ret.Get(0).(model.Notepad), ret.Error(1)
}

func (m *NotepadService) SendMessage(ctx context.Context, notepadID, senderID uuid.UUID, msgType model.MessageType, content string) (model.Notepad, error) {
	ret := m.Called(ctx, notepadID, senderID, msgType, content)
	return ret.Get(0).(model.Notepad), ret.Error(1)
}

func (m *NotepadService) ListMessages(ctx context.Context, notepadID uuid.UUID) ([]model.Message, error) {
	ret := m.Called(ctx, notepadID)
	msgs, _ := ret.Get(0).([]model.Message)
	return msgs, ret.Error(1)
}

// NoteService is a mock of handler.NoteService.
type NoteService struct {
	mock.Mock
}

func NewNoteService(t testingT) *NoteService {
	m := &NoteService{}
	register(&m.Mock, t)
	return m
}

func (m *NoteService) List(ctx context.Context, callerID, peerID uuid.UUID) ([]model.Note, error) {
	ret := m.Called(ctx, callerID, peerID)
	notes, _ := ret.Get(0).([]model.Note)
	return notes, ret.Error(1)
}

func (m *NoteService) Send(ctx context.Context, callerID, peerID uuid.UUID, content, iv string) (model.Note, error) {
	ret := m.Called(ctx, callerID, peerID, content, iv)
	return ret.Get(0).(model.Note), ret.Error(1)
}

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	ret := m.Called(protocol, addr)
	ln, _ := ret.Get(0).(net.Listener)
	return ln, ret.Error(1)
}
