package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/lovebomb-server/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	ret := m.Called(userID)
	return ret.String(0), ret.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	ret := m.Called(userID)
	return ret.String(0), ret.String(1), ret.Error(2)
}

func (m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	ret := m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	ret := m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.String(1), ret.Error(2)
}

// InviteTokenManager is a mock of model.InviteTokenManager.
type InviteTokenManager struct {
	mock.Mock
}

func NewInviteTokenManager(t testingT) *InviteTokenManager {
	m := &InviteTokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *InviteTokenManager) GenerateInviteToken(from, to uuid.UUID) (string, model.Invite, error) {
	ret := m.Called(from, to)
	return ret.String(0), ret.Get(1).(model.Invite), ret.Error(2)
}

func (m *InviteTokenManager) ParseInviteToken(token string) (model.Invite, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.Invite), ret.Error(1)
}

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(&m.Mock, t)
	return m
}

func (m *PasswordHasher) Hash(secret string) ([]byte, error) {
	ret := m.Called(secret)
	hash, _ := ret.Get(0).([]byte)
	return hash, ret.Error(1)
}

func (m *PasswordHasher) Compare(hash []byte, secret string) bool {
	return m.Called(hash, secret).Bool(0)
}

// Mailer is a mock of model.Mailer.
type Mailer struct {
	mock.Mock
}

func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	register(&m.Mock, t)
	return m
}

func (m *Mailer) SendInvite(ctx context.Context, email model.InviteEmail) error {
	return m.Called(ctx, email).Error(0)
}

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(&m.Mock, t)
	return m
}

func (m *ContextManager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return m.Called(ctx, userID).Get(0).(context.Context)
}

func (m *ContextManager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ret := m.Called(ctx)
	return ret.Get(0).(uuid.UUID), ret.Bool(1)
}

// TokenService is a mock of the token resolver used by the auth middleware.
type TokenService struct {
	mock.Mock
}

func NewTokenService(t testingT) *TokenService {
	m := &TokenService{}
	register(&m.Mock, t)
	return m
}

func (m *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	ret := m.Called(ctx, token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}
