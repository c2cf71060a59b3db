package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps session state keyed by session id.
type Store interface {
	Save(ctx context.Context, id string, c Caller, ttl time.Duration) error
	Load(ctx context.Context, id string) (Caller, error)
	Delete(ctx context.Context, id string) error
}

type memEntry struct {
	caller  Caller
	expires time.Time
}

// MemoryStore is the single-process Store used when no Redis is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memEntry
	now   func() time.Time
	cron  *cron.Cron
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memEntry),
		now:   time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, id string, c Caller, ttl time.Duration) error {
	m.mu.Lock()
	m.items[id] = memEntry{caller: c, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (Caller, error) {
	m.mu.RLock()
	e, ok := m.items[id]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expires) {
		return Caller{}, ErrSessionNotFound
	}
	return e.caller, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

// Purge drops expired sessions and returns how many were removed.
func (m *MemoryStore) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.items {
		if !now.Before(e.expires) {
			delete(m.items, id)
			n++
		}
	}
	return n
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// StartPurge schedules Purge with a cron spec such as "@every 10m".
func (m *MemoryStore) StartPurge(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if n := m.Purge(); n > 0 {
			slog.Info("purged expired sessions", "count", n)
		}
	}); err != nil {
		return err
	}
	c.Start()
	m.cron = c
	return nil
}

func (m *MemoryStore) Close() error {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
	return nil
}

func newSessionID() string {
	return uuid.NewString()
}
