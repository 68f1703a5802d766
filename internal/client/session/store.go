// Package session holds the client's credential pair: the short-lived access
// token attached to every outbound call and the longer-lived refresh token
// used solely to mint a new access token.
//
// The store is an explicit, injectable dependency of the API gateway and the
// auth lifecycle manager, so tests can run against an in-memory store and the
// CLI against a durable one. Both tokens are opaque strings; the latest pair
// always supersedes the previous one.
package session

import (
	"context"
	"sync"
)

// Credentials is the persisted pair. Either field may be empty.
type Credentials struct {
	Access  string
	Refresh string
}

// Store reads and mutates the persisted credential pair. Mutations are
// last-writer-wins; implementations must be safe for concurrent use.
type Store interface {
	// Credentials returns the currently stored pair.
	Credentials(ctx context.Context) (Credentials, error)

	// SetPair replaces both tokens.
	SetPair(ctx context.Context, access, refresh string) error

	// SetAccess replaces the access token, keeping the refresh token.
	SetAccess(ctx context.Context, access string) error

	// Clear removes both tokens.
	Clear(ctx context.Context) error
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Credentials(_ context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

func (s *MemStore) SetPair(_ context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{Access: access, Refresh: refresh}
	return nil
}

func (s *MemStore) SetAccess(_ context.Context, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.Access = access
	return nil
}

func (s *MemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}
