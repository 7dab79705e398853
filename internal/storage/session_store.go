package storage

import (
	"sync"

	"memeinator/internal/meme"
)

type chatSession struct {
	mu         sync.Mutex
	session    *meme.Session
	processing bool
}

// SessionStore keeps one meme session per chat. Updates to a session are
// applied one at a time, in arrival order per chat.
type SessionStore struct {
	sessions map[int64]*chatSession
	mu       sync.RWMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*chatSession),
	}
}

func (s *SessionStore) get(chatID int64) *chatSession {
	s.mu.RLock()
	cs, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return cs
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cs, ok = s.sessions[chatID]; !ok {
		cs = &chatSession{session: meme.NewSession()}
		s.sessions[chatID] = cs
	}
	return cs
}

// With runs fn with exclusive access to the chat's session, creating it on
// first use.
func (s *SessionStore) With(chatID int64, fn func(*meme.Session) error) error {
	cs := s.get(chatID)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return fn(cs.session)
}

// TryStart marks a long-running job (save, share) for the chat. It returns
// false when one is already running.
func (s *SessionStore) TryStart(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.sessions[chatID]
	if !ok {
		cs = &chatSession{session: meme.NewSession()}
		s.sessions[chatID] = cs
	}
	if cs.processing {
		return false
	}
	cs.processing = true
	return true
}

func (s *SessionStore) IsProcessing(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cs, ok := s.sessions[chatID]; ok {
		return cs.processing
	}
	return false
}

func (s *SessionStore) Finish(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cs, ok := s.sessions[chatID]; ok {
		cs.processing = false
	}
}

// Drop forgets the chat's session entirely.
func (s *SessionStore) Drop(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
