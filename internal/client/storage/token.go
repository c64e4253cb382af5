// Package storage is the single storage-access capability shared by the
// transport client and the session store: one persisted slot holding the
// bearer token.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/exchangeclient/internal/client/repositories/metadata"
)

// TokenKey is the metadata key under which the credential is persisted.
const TokenKey = "token"

// TokenStore gets, sets and clears the persisted credential.
// Get returns "" when nothing is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteTokenStore keeps the credential in the local metadata table.
type SQLiteTokenStore struct {
	repo metadata.Repository
}

func NewSQLiteTokenStore(repo metadata.Repository) *SQLiteTokenStore {
	return &SQLiteTokenStore{repo: repo}
}

func (s *SQLiteTokenStore) Get(ctx context.Context) (string, error) {
	v, found, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !found {
		return "", nil
	}
	return string(v), nil
}

func (s *SQLiteTokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the credential in process memory only.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore returns a store preloaded with token ("" for empty).
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Get(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
