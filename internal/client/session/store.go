// Package session keeps the signed-in user's tokens and profile.
//
// Tokens and the cached profile are persisted in the local SQLite database so
// a restart keeps the user signed in; the e-mail awaiting verification after
// sign-up lives in memory only and is gone when the process exits.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyUserData     = "userData"
)

var ErrEmptySession = errors.New("session has no access token")

// Store is safe for concurrent use. Reads are served from memory; the
// database is touched on Load, Save and Clear only.
type Store struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time

	mu                sync.RWMutex
	current           *models.Session
	verificationEmail string
}

// Open creates a Store over db and loads any persisted session.
func Open(ctx context.Context, db *sql.DB, log logging.Logger) (*Store, error) {
	s := &Store{db: db, log: log, now: time.Now}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory session with the persisted one. A session whose
// access token has expired is removed from storage.
func (s *Store) Load(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(s.db)

	access, err := repo.Get(ctx, keyAccessToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if len(access) == 0 {
		s.set(nil)
		return nil
	}

	if tokenExpired(string(access), s.now()) {
		s.log.Info(ctx, "stored session expired, clearing")
		return s.Clear(ctx)
	}

	refresh, err := repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	sess := &models.Session{AccessToken: string(access), RefreshToken: string(refresh)}

	userData, err := repo.Get(ctx, keyUserData)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if len(userData) > 0 {
		var u models.User
		if err := json.Unmarshal(userData, &u); err != nil {
			s.log.Warn(ctx, "stored user data is unreadable", "error", err)
		} else {
			sess.User = &u
		}
	}

	s.set(sess)
	return nil
}

// Save persists sess atomically and makes it current.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	if sess == nil || sess.AccessToken == "" {
		return ErrEmptySession
	}

	var userData []byte
	if sess.User != nil {
		b, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encode user data: %w", err)
		}
		userData = b
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyRefreshToken, []byte(sess.RefreshToken)); err != nil {
			return err
		}
		if userData == nil {
			return repo.Delete(ctx, keyUserData)
		}
		return repo.Set(ctx, keyUserData, userData)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	cp := *sess
	if sess.User != nil {
		u := *sess.User
		cp.User = &u
	}
	s.set(&cp)
	return nil
}

// Clear forgets the session, both persisted and in memory, together with
// any pending verification e-mail.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, k := range []string{keyAccessToken, keyRefreshToken, keyUserData} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})

	s.mu.Lock()
	s.current = nil
	s.verificationEmail = ""
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccessToken returns "" when signed out or when the token has expired.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || tokenExpired(s.current.AccessToken, s.now()) {
		return ""
	}
	return s.current.AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.RefreshToken
}

func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// CurrentUser returns a copy of the signed-in user's profile, or nil.
func (s *Store) CurrentUser() *models.User {
	if !s.IsAuthenticated() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.User == nil {
		return nil
	}
	u := *s.current.User
	return &u
}

func (s *Store) SetVerificationEmail(email string) {
	s.mu.Lock()
	s.verificationEmail = email
	s.mu.Unlock()
}

func (s *Store) VerificationEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verificationEmail
}

func (s *Store) ClearVerificationEmail() {
	s.SetVerificationEmail("")
}

func (s *Store) set(sess *models.Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

// tokenExpired reports whether a JWT's exp claim is not after now. Tokens
// that are not JWTs, or carry no exp, never expire here; the server still
// has the final word with a 401.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
