package services

import (
	"context"

	"github.com/dmitrijs2005/resumebook/internal/client/session"
	"github.com/dmitrijs2005/resumebook/internal/logging"
)

// SessionService manages the stored access token. Signing out is purely
// local: the backend is never called.
type SessionService interface {
	SignIn(ctx context.Context, token string) (*session.Session, error)
	Current(ctx context.Context) (*session.Session, error)
	SignOut(ctx context.Context) error
}

type sessionService struct {
	store  *session.Store
	logger logging.Logger
}

func NewSessionService(store *session.Store, logger logging.Logger) SessionService {
	return &sessionService{store: store, logger: logger}
}

func (s *sessionService) SignIn(ctx context.Context, token string) (*session.Session, error) {
	sess, err := s.store.Save(ctx, token)
	if err != nil {
		return nil, err
	}
	if !sess.ExpiresAt.IsZero() {
		s.logger.Info(ctx, "session stored", "expires_at", sess.ExpiresAt)
	} else {
		s.logger.Info(ctx, "session stored")
	}
	return sess, nil
}

// Current returns the stored session or session.ErrNoSession.
func (s *sessionService) Current(ctx context.Context) (*session.Session, error) {
	return s.store.Load(ctx)
}

func (s *sessionService) SignOut(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "session cleared")
	return nil
}
