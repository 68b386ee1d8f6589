package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
)

const DefaultMaxPairs = 10

// Manager owns one bounded conversation history per user identity. All
// read-modify-write access is serialized per user so concurrent appends for
// the same identity never lose an exchange.
type Manager struct {
	store    Store
	maxPairs int

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

func NewManager(store Store, maxPairs int) *Manager {
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}
	return &Manager{
		store:    store,
		maxPairs: maxPairs,
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// MaxPairs reports the sliding-window size.
func (m *Manager) MaxPairs() int {
	return m.maxPairs
}

// GetOrCreate returns the existing history for userID or an empty one.
// It is idempotent and never errors for an unknown identity.
func (m *Manager) GetOrCreate(ctx context.Context, userID string) (*Conversation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}

	c, err := m.store.Load(ctx, userID)
	if errors.Is(err, ErrHistoryNotFound) {
		return NewConversation(userID, m.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history for user=%s: %w", userID, err)
	}
	return c, nil
}

// AppendExchange appends one user turn followed by one agent turn, then
// truncates the history to the most recent window. From the caller's
// perspective the write is atomic: either both turns become visible or the
// stored history is unchanged.
func (m *Manager) AppendExchange(ctx context.Context, userID, userText, agentText string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUser
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := m.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	c.AppendExchange(userText, agentText, m.now())
	c.TrimToPairs(m.maxPairs)

	if err := m.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save history for user=%s: %w", userID, err)
	}
	return nil
}

// ReadHistory returns the most recent limit exchanges, oldest first. An
// unknown identity yields an empty sequence, not an error.
func (m *Manager) ReadHistory(ctx context.Context, userID string, limit int) ([]contractx.Turn, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}

	c, err := m.store.Load(ctx, userID)
	if errors.Is(err, ErrHistoryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history for user=%s: %w", userID, err)
	}
	return c.LastPairs(limit), nil
}

// Clear removes the session entirely. Clearing an absent session is a no-op.
func (m *Manager) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUser
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear history for user=%s: %w", userID, err)
	}
	return nil
}

func (m *Manager) userLock(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	return lock
}
