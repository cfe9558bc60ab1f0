package service

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/auth"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/model"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrWrongCredentials hides whether the email or the password was wrong.
var ErrWrongCredentials = apperr.New(apperr.CodeAuthentication, "Wrong email or password")

// Session binds the token slot to the signing manager and resolves the
// acting user for each command.
type Session struct {
	store  auth.TokenStore
	tokens *auth.Manager
	repo   model.Repository

	actor *entity.DbUser
}

// NewSession creates a Session.
func NewSession(store auth.TokenStore, tokens *auth.Manager, repo model.Repository) *Session {
	return &Session{store: store, tokens: tokens, repo: repo}
}

// Login verifies the credentials, issues a token and overwrites the slot.
func (s *Session) Login(ctx context.Context, email, password string) (*entity.DbUser, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, time.Time{}, ErrWrongCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, ErrWrongCredentials
	}
	if err != nil {
		return nil, time.Time{}, translate(err, "User")
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			logrus.WithError(err).WithField("user_id", user.ID).Warn("password verification failed")
		}
		return nil, time.Time{}, ErrWrongCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, time.Time{}, apperr.Internal(err)
	}
	if err := s.store.Save(ctx, token); err != nil {
		return nil, time.Time{}, apperr.Wrap(apperr.CodeInternal, "failed to save session", err)
	}
	s.actor = user
	return user, expiresAt, nil
}

// Actor returns the authenticated user. Expired or forged tokens surface
// their own message joined with "Authentication required".
func (s *Session) Actor(ctx context.Context) (*entity.DbUser, error) {
	if s.actor != nil {
		return s.actor, nil
	}

	token, err := s.store.Load(ctx)
	if errors.Is(err, auth.ErrNoSession) {
		return nil, authz.ErrAuthenticationRequired
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to read session", err)
	}

	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, errors.Join(err, authz.ErrAuthenticationRequired)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithField("user_id", userID).Debug("session refers to a deleted user")
		return nil, authz.ErrAuthenticationRequired
	}
	if err != nil {
		return nil, translate(err, "User")
	}
	s.actor = user
	return user, nil
}
