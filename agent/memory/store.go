package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrHistoryNotFound = errors.New("conversation history not found")
	ErrNilConversation = errors.New("conversation is nil")
	ErrInvalidUser     = errors.New("user id is empty")
)

// Store is the persistence contract used by the Manager. Implementations:
// InMemoryStore (process-local), UpstashRedisStore (REST), BunStore
// (Postgres).
type Store interface {
	Load(ctx context.Context, userID string) (*Conversation, error)
	Save(ctx context.Context, c *Conversation) error
	Delete(ctx context.Context, userID string) error
}

// InMemoryStore keeps conversations in a process-local map. It is safe for
// concurrent use; callers receive deep copies.
type InMemoryStore struct {
	mu    sync.RWMutex
	convs map[string]*Conversation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		convs: make(map[string]*Conversation),
	}
}

func (s *InMemoryStore) Load(ctx context.Context, userID string) (*Conversation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[userID]
	if !ok {
		return nil, ErrHistoryNotFound
	}
	return c.Clone(), nil
}

func (s *InMemoryStore) Save(ctx context.Context, c *Conversation) error {
	if c == nil {
		return ErrNilConversation
	}
	if strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.convs[c.UserID] = c.Clone()
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.convs, userID)
	return nil
}
