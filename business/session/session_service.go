package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myFitLane/domain"
	"myFitLane/pkg/logger"
	"myFitLane/pkg/utils"
)

const storeKeyCurrentUser = "session:current_user"

// UpstreamAuth is the demo API authentication and profile surface. The
// storefront never stores credentials itself.
type UpstreamAuth interface {
	Login(ctx context.Context, username, password string) (string, error)
	GetUser(ctx context.Context, id int) (domain.UpstreamUser, error)
	UpdateUser(ctx context.Context, id int, user domain.UpstreamUser) (domain.UpstreamUser, error)
}

// StoreRepository persists the current-user marker between mounts.
type StoreRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type sessionService struct {
	auth  UpstreamAuth
	store StoreRepository
}

func NewSessionService(auth UpstreamAuth, store StoreRepository) *sessionService {
	return &sessionService{
		auth:  auth,
		store: store,
	}
}

// Login delegates credentials to the upstream API and, on success, issues a
// local session token and remembers the active username.
func (s *sessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.auth.Login(ctx, username, password); err != nil {
		logger.Error("Upstream login failed", "username", username, "error", err)
		return domain.Session{}, errors.New("invalid username or password")
	}

	token, err := utils.GenerateJWT(username)
	if err != nil {
		logger.Error("Failed to generate session token", "error", err)
		return domain.Session{}, errors.New("failed to generate token")
	}

	if raw, err := json.Marshal(username); err == nil {
		if err := s.store.Set(ctx, storeKeyCurrentUser, raw); err != nil {
			logger.Warn("Failed to persist current user", "error", err)
		}
	}

	logger.Info("User logged in", "username", username)

	return domain.Session{Username: username, Token: token}, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.store.Delete(ctx, storeKeyCurrentUser); err != nil {
		logger.Error("Failed to clear current user", "error", err)
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

// CurrentUser returns the persisted active username, or "" when nobody is
// logged in. A corrupt marker counts as logged out.
func (s *sessionService) CurrentUser(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	raw, ok, err := s.store.Get(ctx, storeKeyCurrentUser)
	if err != nil {
		logger.Warn("Failed to read current user", "error", err)
		return "", nil
	}
	if !ok {
		return "", nil
	}

	var username string
	if err := json.Unmarshal(raw, &username); err != nil {
		logger.Warn("Corrupt current user marker", "error", err)
		return "", nil
	}

	return username, nil
}

func (s *sessionService) GetProfile(ctx context.Context, id int) (domain.UpstreamUser, error) {
	if id <= 0 {
		return domain.UpstreamUser{}, errors.New("invalid user id")
	}

	if err := ctx.Err(); err != nil {
		return domain.UpstreamUser{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.auth.GetUser(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch profile from upstream", "user_id", id, "error", err)
		return domain.UpstreamUser{}, err
	}

	return user, nil
}

func (s *sessionService) UpdateProfile(ctx context.Context, id int, user domain.UpstreamUser) (domain.UpstreamUser, error) {
	if id <= 0 {
		return domain.UpstreamUser{}, errors.New("invalid user id")
	}

	if err := ctx.Err(); err != nil {
		return domain.UpstreamUser{}, fmt.Errorf("context error: %w", err)
	}

	updated, err := s.auth.UpdateUser(ctx, id, user)
	if err != nil {
		logger.Error("Failed to update profile upstream", "user_id", id, "error", err)
		return domain.UpstreamUser{}, err
	}

	return updated, nil
}
