// Package session keeps the console's access token.
//
// The token is stored under a fixed key in the local metadata store and is
// handed to every API call as an explicit *Session value.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/resumebook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/resumebook/internal/common"
)

var ErrNoSession = errors.New("no stored session")

// Session is the credential attached to API requests.
type Session struct {
	Token string
	// ExpiresAt is the token's exp claim; zero when the token has none or
	// is not a JWT.
	ExpiresAt time.Time
}

// New wraps a raw token. The exp claim is read without verifying the
// signature: only the backend can verify it, the console just reports it.
func New(token string) *Session {
	s := &Session{Token: strings.TrimSpace(token)}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err == nil && claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

// Expired reports whether the token's exp claim lies before now. Tokens
// without an exp claim never expire.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return now.After(s.ExpiresAt)
}

// Store persists the token in the metadata repository.
type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Load returns the stored session or ErrNoSession.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	v, err := s.repo.Get(ctx, common.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(v) == 0 {
		return nil, ErrNoSession
	}
	return New(string(v)), nil
}

// Save stores token, replacing any previous one.
func (s *Store) Save(ctx context.Context, token string) (*Session, error) {
	sess := New(token)
	if sess.Token == "" {
		return nil, fmt.Errorf("save session: empty token")
	}
	if err := s.repo.Set(ctx, common.SessionKey, []byte(sess.Token)); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
