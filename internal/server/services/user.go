// Package services holds the business logic between the HTTP layer and the
// repositories: the auth gate and the prediction workflow.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/reviewpulse/internal/common"
	"github.com/dmitrijs2005/reviewpulse/internal/server/auth"
	"github.com/dmitrijs2005/reviewpulse/internal/server/config"
	"github.com/dmitrijs2005/reviewpulse/internal/server/models"
	sessionsrepo "github.com/dmitrijs2005/reviewpulse/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/reviewpulse/internal/server/repositories/users"
)

// UserService implements registration, login, logout and session lookup.
type UserService struct {
	users           usersrepo.Repository
	sessions        sessionsrepo.Repository
	secretKey       []byte
	sessionValidity time.Duration
}

func NewUserService(users usersrepo.Repository, sessions sessionsrepo.Repository, cfg *config.Config) *UserService {
	return &UserService{
		users:           users,
		sessions:        sessions,
		secretKey:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Register creates a new account. Empty fields yield ErrorValidation; an
// existing username or email yields ErrorAlreadyExists (one generic outcome
// for both, no field-level distinction). Only a bcrypt hash of the password
// is ever stored.
func (s *UserService) Register(ctx context.Context, userName, email, password string) (*models.User, error) {

	if userName == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	exists, err := s.users.Exists(ctx, userName, email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.users.Create(ctx, &models.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// the unique constraint can still fire between Exists and Create
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Login checks the password against the stored hash and, on success,
// creates a session row and returns the signed cookie token referencing
// it. Unknown user and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {

	user, err := s.users.GetUserByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Create(ctx, sessionID, user.UserName, s.sessionValidity); err != nil {
		return "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(sessionID, s.secretKey, s.sessionValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Logout destroys the session referenced by the token. An invalid token
// means there is nothing to clear and is not an error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	sessionID, err := auth.GetSessionIDFromToken(token, s.secretKey)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// SessionUser resolves a cookie token to the logged-in username. Expired
// sessions are deleted on sight and reported as ErrSessionExpired.
func (s *UserService) SessionUser(ctx context.Context, token string) (string, error) {
	sessionID, err := auth.GetSessionIDFromToken(token, s.secretKey)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if session.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, sessionID)
		return "", common.ErrSessionExpired
	}

	return session.UserName, nil
}
