package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/lovebomb-server/internal/model"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := m.Called(ctx, user)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *UserStore) UpdatePublicKey(ctx context.Context, id uuid.UUID, publicKey string) (model.User, error) {
	ret := m.Called(ctx, id, publicKey)
	return ret.Get(0).(model.User), ret.Error(1)
}

// RelationshipStore is a mock of model.RelationshipStore.
type RelationshipStore struct {
	mock.Mock
}

func NewRelationshipStore(t testingT) *RelationshipStore {
	m := &RelationshipStore{}
	register(&m.Mock, t)
	return m
}

func (m *RelationshipStore) Get(ctx context.Context, ledger model.Ledger, ownerID, peerID uuid.UUID) (model.Relationship, error) {
	ret := m.Called(ctx, ledger, ownerID, peerID)
	return ret.Get(0).(model.Relationship), ret.Error(1)
}

func (m *RelationshipStore) GetForUpdate(ctx context.Context, ledger model.Ledger, ownerID, peerID uuid.UUID) (model.Relationship, error) {
	ret := m.Called(ctx, ledger, ownerID, peerID)
	return ret.Get(0).(model.Relationship), ret.Error(1)
}

func (m *RelationshipStore) LockPair(ctx context.Context, a, b uuid.UUID) error {
	return m.Called(ctx, a, b).Error(0)
}

func (m *RelationshipStore) Create(ctx context.Context, rel model.Relationship) (model.Relationship, error) {
	ret := m.Called(ctx, rel)
	return ret.Get(0).(model.Relationship), ret.Error(1)
}

func (m *RelationshipStore) Upsert(ctx context.Context, rel model.Relationship) (model.Relationship, error) {
	ret := m.Called(ctx, rel)
	return ret.Get(0).(model.Relationship), ret.Error(1)
}

func (m *RelationshipStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status, sharedSecret string) error {
	return m.Called(ctx, id, status, sharedSecret).Error(0)
}

func (m *RelationshipStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RelationshipStore) ListByOwner(ctx context.Context, ledger model.Ledger, ownerID uuid.UUID, statuses ...model.Status) ([]model.Relationship, error) {
	ret := m.Called(ctx, ledger, ownerID, statuses)
	rels, _ := ret.Get(0).([]model.Relationship)
	return rels, ret.Error(1)
}

// NotepadStore is a mock of model.NotepadStore.
type NotepadStore struct {
	mock.Mock
}

func NewNotepadStore(t testingT) *NotepadStore {
	m := &NotepadStore{}
	register(&m.Mock, t)
	return m
}

func (m *NotepadStore) GetByID(ctx context.Context, id uuid.UUID) (model.Notepad, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.Notepad), ret.Error(1)
}

func (m *NotepadStore) GetByPair(ctx context.Context, low, high uuid.UUID) (model.Notepad, error) {
	ret := m.Called(ctx, low, high)
	return ret.Get(0).(model.Notepad), ret.Error(1)
}

func (m *NotepadStore) Create(ctx context.Context, notepad model.Notepad) (model.Notepad, error) {
	ret := m.Called(ctx, notepad)
	return ret.Get(0).(model.Notepad), ret.Error(1)
}

// MessageStore is a mock of model.MessageStore.
type MessageStore struct {
	mock.Mock
}

func NewMessageStore(t testingT) *MessageStore {
	m := &MessageStore{}
	register(&m.Mock, t)
	return m
}

func (m *MessageStore) Append(ctx context.Context, msg model.Message) (model.Message, error) {
	ret := m.Called(ctx, msg)
	return ret.Get(0).(model.Message), ret.Error(1)
}

func (m *MessageStore) ListByNotepad(ctx context.Context, notepadID uuid.UUID) ([]model.Message, error) {
	ret := m.Called(ctx, notepadID)
	msgs, _ := ret.Get(0).([]model.Message)
	return msgs, ret.Error(1)
}

// NoteStore is a mock of model.NoteStore.
type NoteStore struct {
	mock.Mock
}

func NewNoteStore(t testingT) *NoteStore {
	m := &NoteStore{}
	register(&m.Mock, t)
	return m
}

func (m *NoteStore) Create(ctx context.Context, note model.Note) (model.Note, error) {
	ret := m.Called(ctx, note)
	return ret.Get(0).(model.Note), ret.Error(1)
}

func (m *NoteStore) ListBetween(ctx context.Context, a, b uuid.UUID) ([]model.Note, error) {
	ret := m.Called(ctx, a, b)
	notes, _ := ret.Get(0).([]model.Note)
	return notes, ret.Error(1)
}

// InviteStore is a mock of model.InviteStore.
type InviteStore struct {
	mock.Mock
}

func NewInviteStore(t testingT) *InviteStore {
	m := &InviteStore{}
	register(&m.Mock, t)
	return m
}

func (m *InviteStore) Consume(ctx context.Context, invite model.Invite) error {
	return m.Called(ctx, invite).Error(0)
}

// RefreshTokenStore is a mock of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func NewRefreshTokenStore(t testingT) *RefreshTokenStore {
	m := &RefreshTokenStore{}
	register(&m.Mock, t)
	return m
}

func (m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	ret := m.Called(ctx, jti)
	return ret.Get(0).(model.RefreshToken), ret.Error(1)
}

func (m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	return m.Called(ctx, jti).Error(0)
}

func (m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// Transactor is a mock of model.Transactor. Unless an error is configured,
// WithinTx runs fn with the given context.
type Transactor struct {
	mock.Mock
}

func NewTransactor(t testingT) *Transactor {
	m := &Transactor{}
	register(&m.Mock, t)
	return m
}

func (m *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
