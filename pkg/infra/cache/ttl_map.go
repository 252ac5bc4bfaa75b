package cache

import (
	"sync"
	"time"
)

type ttlEntry struct {
	value     string
	expiresAt time.Time
}

// TTLMap is the in-process tier in front of redis. Expired entries are
// dropped on read and swept when the map is full. A map holds at most
// maxEntries keys; the entry closest to expiry is evicted first.
type TTLMap struct {
	mu         sync.RWMutex
	data       map[string]ttlEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewTTLMap creates a map whose entries live for ttl. maxEntries <= 0 means
// unbounded.
func NewTTLMap(ttl time.Duration, maxEntries int) *TTLMap {
	return &TTLMap{
		data:       make(map[string]ttlEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *TTLMap) Get(key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && m.now().After(current.expiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (m *TTLMap) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		m.sweepLocked()
		if len(m.data) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}
	m.data[key] = ttlEntry{value: value, expiresAt: m.now().Add(m.ttl)}
}

// Sweep removes every expired entry and returns how many were dropped.
func (m *TTLMap) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

func (m *TTLMap) sweepLocked() int {
	now := m.now()
	removed := 0
	for key, entry := range m.data {
		if now.After(entry.expiresAt) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

func (m *TTLMap) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

func (m *TTLMap) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *TTLMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
