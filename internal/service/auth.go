package service

import (
	"context"
	"fmt"

	"filedesk-backend/internal/auth"
	"filedesk-backend/internal/models"
	"filedesk-backend/internal/store"

	"go.uber.org/zap"
)

// AuthService implements registration, login and session introspection over
// the mock users collection.
type AuthService struct {
	store    *store.Store
	resolver *auth.Resolver
	delays   Delays
	log      *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(st *store.Store, resolver *auth.Resolver, delays Delays, log *zap.Logger) *AuthService {
	return &AuthService{store: st, resolver: resolver, delays: delays, log: log}
}

// Register creates a new account. The email must be unused; the password is
// stored verbatim per the mock contract. On success the derived token is
// persisted as the current session.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.AuthResult, error) {
	sleep(ctx, s.delays.Auth)

	user := models.User{
		ID:       store.NewID(),
		Email:    email,
		Name:     name,
		Password: password,
	}

	err := s.store.WithUsers(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, errConflict("User already exists")
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	token := auth.Token(user.ID)
	if err := s.resolver.StoreToken(ctx, token); err != nil {
		s.log.Error("failed to store session token", zap.Error(err))
		return nil, fmt.Errorf("store session token: %w", err)
	}

	s.log.Info("user registered", zap.String("userId", user.ID), zap.String("email", email))
	return &models.AuthResult{Token: token, User: user.Public()}, nil
}

// Login authenticates by exact email and password match and persists the
// derived token as the current session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	sleep(ctx, s.delays.Auth)

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			token := auth.Token(u.ID)
			if err := s.resolver.StoreToken(ctx, token); err != nil {
				s.log.Error("failed to store session token", zap.Error(err))
				return nil, fmt.Errorf("store session token: %w", err)
			}
			s.log.Info("user logged in", zap.String("userId", u.ID))
			return &models.AuthResult{Token: token, User: u.Public()}, nil
		}
	}

	return nil, errInvalidCredentials()
}

// Whoami resolves the current session to its public user view.
func (s *AuthService) Whoami(ctx context.Context) (*models.PublicUser, error) {
	sleep(ctx, s.delays.Auth)

	userID, ok, err := s.resolver.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errUnauthenticated()
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == userID {
			pub := u.Public()
			return &pub, nil
		}
	}
	return nil, errNotFound("User not found")
}

// Logout clears the stored session token. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context) error {
	sleep(ctx, s.delays.Auth)
	return s.resolver.ClearToken(ctx)
}
