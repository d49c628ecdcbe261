package cache

import (
	"sync"
	"time"
)

// TTLEntry represents an entry in TTLMap
type TTLEntry struct {
	Value     interface{}
	ExpiresAt time.Time
}

// TTLMap is a thread-safe map with TTL for each entry
type TTLMap struct {
	Data map[string]*TTLEntry
	Mu   sync.RWMutex
	TTL  time.Duration

	now func() time.Time
}

// NewTTLMap creates a new TTLMap with the specified default TTL
func NewTTLMap(ttl time.Duration) *TTLMap {
	return &TTLMap{
		Data: make(map[string]*TTLEntry),
		TTL:  ttl,
		now:  time.Now,
	}
}

// WithClock replaces the time source, used by tests to expire entries.
func (m *TTLMap) WithClock(now func() time.Time) *TTLMap {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.now = now
	return m
}

// Get retrieves a value from the TTLMap if it hasn't expired
func (m *TTLMap) Get(key string) (interface{}, bool) {
	m.Mu.RLock()
	entry, exists := m.Data[key]
	if !exists {
		m.Mu.RUnlock()
		return nil, false
	}
	now := m.now()
	isExpired := now.After(entry.ExpiresAt)
	value := entry.Value
	m.Mu.RUnlock()

	if isExpired {
		m.Mu.Lock()
		if current, ok := m.Data[key]; ok && m.now().After(current.ExpiresAt) {
			delete(m.Data, key)
		}
		m.Mu.Unlock()
		return nil, false
	}

	return value, true
}

// Set adds or updates a value using the map's default TTL
func (m *TTLMap) Set(key string, value interface{}) {
	m.SetWithTTL(key, value, m.TTL)
}

// SetWithTTL adds or updates a value that expires after ttl. A non-positive
// ttl falls back to the map default.
func (m *TTLMap) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 || (m.TTL > 0 && ttl > m.TTL) {
		ttl = m.TTL
	}
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Data[key] = &TTLEntry{
		Value:     value,
		ExpiresAt: m.now().Add(ttl),
	}
}

// Delete removes a key from the TTLMap
func (m *TTLMap) Delete(key string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	delete(m.Data, key)
}

// Len counts entries, expired ones included until they are read.
func (m *TTLMap) Len() int {
	m.Mu.RLock()
	defer m.Mu.RUnlock()
	return len(m.Data)
}

// Clear removes all entries from the TTLMap
func (m *TTLMap) Clear() {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Data = make(map[string]*TTLEntry)
}
