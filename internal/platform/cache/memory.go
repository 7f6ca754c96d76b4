package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-process TagCache backend, the default when redis is not
// configured. Zero-value unsafe; use NewMemory
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	// tags indexes tag -> set of keys carrying it
	tags   map[string]map[string]struct{}
	stopCh chan struct{}
	once   sync.Once
}

type memEntry struct {
	value     []byte
	tags      []string
	expiresAt time.Time // zero = no expiry
}

// NewMemory builds a memory cache and starts a janitor that sweeps expired
// entries every sweep interval (default 5m when d <= 0)
func NewMemory(sweep time.Duration) *Memory {
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	m := &Memory{
		entries: make(map[string]memEntry),
		tags:    make(map[string]map[string]struct{}),
		stopCh:  make(chan struct{}),
	}
	go m.janitor(sweep)
	return m
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Get implements TagCache
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || e.expired(time.Now()) {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set implements TagCache
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unindexLocked(key)
	m.entries[key] = memEntry{value: value, tags: tags, expiresAt: exp}
	for _, tag := range tags {
		set, ok := m.tags[tag]
		if !ok {
			set = make(map[string]struct{})
			m.tags[tag] = set
		}
		set[key] = struct{}{}
	}
	return nil
}

// Delete implements TagCache
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unindexLocked(key)
	delete(m.entries, key)
	return nil
}

// InvalidateTag implements TagCache
func (m *Memory) InvalidateTag(_ context.Context, tag string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.tags[tag]
	if !ok {
		return 0, nil
	}
	n := 0
	for key := range set {
		if _, exists := m.entries[key]; exists {
			m.unindexLocked(key)
			delete(m.entries, key)
			n++
		}
	}
	delete(m.tags, tag)
	return n, nil
}

// Close stops the janitor
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stopCh) })
	return nil
}

// Len reports the live entry count, mostly for tests
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// unindexLocked removes key from every tag set it belongs to
// callers hold the write lock
func (m *Memory) unindexLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	for _, tag := range e.tags {
		if set, ok := m.tags[tag]; ok {
			delete(set, key)
			if len(set) == 0 {
				delete(m.tags, tag)
			}
		}
	}
}

func (m *Memory) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-t.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.entries {
		if e.expired(now) {
			m.unindexLocked(key)
			delete(m.entries, key)
		}
	}
}
