// Package session keeps per-login view state in process memory. Each login
// mints an opaque token; the token maps to exactly one Session until logout.
// Nothing here is shared with the persistent store.
package session

import (
	"sync"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/models"
)

// Store maps session tokens to live sessions. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*models.Session)}
}

// Create registers a new session and returns its token. Credential may be
// empty: a provider login without a credential is degraded but accepted.
func (s *Store) Create(userID string, role models.Role, fullName, credential string) (string, *models.Session, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", nil, err
	}

	sess := &models.Session{
		UserID:     userID,
		Role:       role,
		FullName:   fullName,
		Credential: credential,
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	return token, sess, nil
}

// Current returns the session for token, or nil when none is live. The
// returned value is a copy so callers cannot mutate store state.
func (s *Store) Current(token string) *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	copied := *sess
	return &copied
}

// Destroy removes the session for token. The whole record disappears in one
// step; there is no state where the role survives the identity.
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
