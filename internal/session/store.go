// Package session owns "who is the caller and what proves it": a bearer
// token persisted to disk and the profile resolved from it. All token
// state lives on the Store and its api.Client; nothing is process-global.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"guild/internal/api"
	"guild/internal/types"
)

// TokenFileName is the fixed name of the persisted token under the config
// directory.
const TokenFileName = "token"

// Store is the single source of truth for session state. The zero value is
// not usable; construct with New.
type Store struct {
	client    *api.Client
	logger    *zap.Logger
	tokenPath string

	mu      sync.RWMutex
	user    *types.User
	token   string
	loading bool
}

// New creates a Store persisting its token inside dir.
func New(client *api.Client, dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:    client,
		logger:    logger,
		tokenPath: filepath.Join(dir, TokenFileName),
	}
}

// User returns the resolved profile, or nil when unauthenticated.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the current bearer token, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether both a token and a profile are present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Loading reports whether Initialize or Login is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Client exposes the API client carrying this session's token.
func (s *Store) Client() *api.Client { return s.client }

// Initialize restores a persisted session. A missing, expired, or rejected
// token degrades silently to the unauthenticated state; the returned error
// is only for I/O problems unrelated to authentication.
func (s *Store) Initialize(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	data, err := os.ReadFile(s.tokenPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return nil
	}

	s.attach(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		// Stored token no longer proves anything. Clear it and carry on
		// unauthenticated rather than failing the process.
		s.logger.Info("stored token rejected, clearing session", zap.Error(err))
		s.clear()
		return nil
	}

	s.setUser(user)
	s.logger.Debug("session restored", zap.String("user_id", user.ID))
	return nil
}

// Login adopts a freshly issued token: persists it, attaches it to the
// client, and resolves the profile. If the profile fetch fails the login
// failed as a whole and the store reverts to logged-out.
func (s *Store) Login(ctx context.Context, token string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.persist(token); err != nil {
		return err
	}
	s.attach(token)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.clear()
		return fmt.Errorf("resolve profile: %w", err)
	}

	s.setUser(user)
	s.logger.Info("logged in", zap.String("user_id", user.ID))
	return nil
}

// Logout clears the token, profile, persisted file, and client header.
func (s *Store) Logout() {
	s.clear()
	s.logger.Info("logged out")
}

func (s *Store) attach(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.client.SetToken(token)
}

func (s *Store) setUser(user *types.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) persist(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.tokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

func (s *Store) clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	s.client.ClearToken()
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove token file", zap.Error(err))
	}
}
