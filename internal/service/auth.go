package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (a *Auth) Register(ctx context.Context, email, password string) (model.Session, error) {
	email = model.NormalizeEmail(email)
	a.logger.Debug("Auth service: registering user",
		"email", email)

	if email == "" || password == "" {
		return model.Session{}, model.NewErrInvalidArgument("Please provide email and password")
	}
	if err := checkPasswordLength(password); err != nil {
		return model.Session{}, err
	}

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.Session{}, model.NewErrEmailIsTaken(email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.Session{}, model.NewErrEmailIsTaken(email)
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := a.issue(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID)

	return result, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = model.NormalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Session{}, model.NewErrInvalidCredentials()
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Compare(user.PasswordHash, password) {
		a.logger.Info("Auth service: invalid password",
			"user_id", user.ID)
		return model.Session{}, model.NewErrInvalidCredentials()
	}

	return a.issue(ctx, user)
}

// Me returns the current identity.
func (a *Auth) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.NewErrUserNotFound()
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password and revokes all refresh tokens.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if err := checkPasswordLength(next); err != nil {
		return err
	}

	user, err := a.Me(ctx, userID)
	if err != nil {
		return err
	}

	if !a.hasher.Compare(user.PasswordHash, current) {
		return model.NewErrInvalidCredentials()
	}

	hash, err := a.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := a.tokenService.RevokeAllForUser(ctx, userID); err != nil {
		a.logger.Error("Auth service: failed to revoke refresh tokens",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	a.logger.Info("Auth service: password changed",
		"user_id", userID)

	return nil
}

// SetPublicKey stores the client's public key.
func (a *Auth) SetPublicKey(ctx context.Context, userID uuid.UUID, publicKey string) (model.User, error) {
	publicKey = strings.TrimSpace(publicKey)
	if publicKey == "" {
		return model.User{}, model.NewErrInvalidArgument("publicKey is required")
	}

	user, err := a.userStore.UpdatePublicKey(ctx, userID, publicKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.NewErrUserNotFound()
		}
		return model.User{}, fmt.Errorf("failed to update public key: %w", err)
	}
	return user, nil
}

// Refresh rotates a refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.Session, error) {
	access, refresh, err := a.tokenService.Refresh(ctx, refreshToken)
	if err != nil {
		a.logger.Info("Auth service: refresh rejected",
			"error", err.Error())
		return model.Session{}, model.NewErrInvalidAuthorizationToken()
	}
	return model.Session{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes a refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	if err := a.tokenService.RevokeByToken(ctx, refreshToken); err != nil {
		return model.NewErrInvalidAuthorizationToken()
	}
	return nil
}

func (a *Auth) issue(ctx context.Context, user model.User) (model.Session, error) {
	access, refresh, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return model.Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func checkPasswordLength(password string) error {
	if len(password) < model.MinPasswordLength {
		return model.NewErrInvalidArgument(
			fmt.Sprintf("Password must be at least %d characters", model.MinPasswordLength))
	}
	if len(password) > model.MaxPasswordLength {
		return model.NewErrInvalidArgument(
			fmt.Sprintf("Password must be at most %d bytes", model.MaxPasswordLength))
	}
	return nil
}
