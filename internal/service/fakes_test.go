package service

import (
	"context"
	"sync"
	"time"

	"archery-results/internal/api"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// memStore is an in-memory CacheStore with a controllable clock.
type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     time.Time
	getErr  error
}

func newMemStore() *memStore {
	return &memStore{
		entries: make(map[string]memEntry),
		now:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	e, ok := m.entries[key]
	if !ok || !m.now.Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{value: append([]byte(nil), value...), expiresAt: m.now.Add(ttl)}
	return nil
}

func (m *memStore) Flush(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.entries))
	m.entries = make(map[string]memEntry)
	return n, nil
}

func (m *memStore) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, e := range m.entries {
		if !m.now.Before(e.expiresAt) {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}

func (m *memStore) advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// fakeUpstream serves canned bodies by url and counts requests.
type fakeUpstream struct {
	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
	calls  map[string]int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		bodies: make(map[string]string),
		status: make(map[string]int),
		calls:  make(map[string]int),
	}
}

func (f *fakeUpstream) GetRaw(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if code, ok := f.status[url]; ok {
		return nil, &api.UpstreamFetchError{URL: url, StatusCode: code}
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, &api.UpstreamFetchError{URL: url, StatusCode: 404}
	}
	return []byte(body), nil
}

func (f *fakeUpstream) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeUpstream) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}
