package otp

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/estate/pkg/cryptox"
)

// Memory is a process-local Backend. One mutex covers the map; entries
// for different phones are independent so contention stays trivial.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Issue(_ context.Context, phone string, e Entry, minGap time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.entries[phone]; ok && !prev.Expired(e.CreatedAt) && e.CreatedAt.Sub(prev.CreatedAt) < minGap {
		return ErrRateLimited
	}
	m.entries[phone] = e
	return nil
}

func (m *Memory) Get(_ context.Context, phone string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[phone]
	if !ok {
		return Entry{}, ErrNoEntry
	}
	return e, nil
}

func (m *Memory) Redeem(_ context.Context, phone, digest string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[phone]
	if !ok || e.Expired(now) {
		return ErrNoEntry
	}
	if !cryptox.EqualDigest(e.Digest, digest) {
		return ErrMismatch
	}
	delete(m.entries, phone)
	return nil
}

func (m *Memory) Delete(_ context.Context, phone string) error {
	m.mu.Lock()
	delete(m.entries, phone)
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for phone, e := range m.entries {
		if e.Expired(now) {
			delete(m.entries, phone)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Len is the number of stored entries, live or expired.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
