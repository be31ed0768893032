// Package cache holds long-lived values keyed by string, such as one API
// client per tenant credential pair.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Pool is a TTL + LRU map whose misses are filled by a single in-flight
// constructor call per key.
type Pool[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	ttl     time.Duration
	maxSize int
	group   singleflight.Group
	now     func() time.Time
}

type entry[T any] struct {
	value    T
	lastUsed time.Time
}

// New creates a pool with the given idle TTL and max entries. A ttl of zero
// keeps entries until they are evicted by size.
func New[T any](ttl time.Duration, maxSize int) *Pool[T] {
	if maxSize <= 0 {
		maxSize = 10
	}
	return &Pool[T]{
		entries: make(map[string]*entry[T]),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the value for key if present and not idle past the TTL.
func (p *Pool[T]) Get(key string) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	now := p.now()
	if p.ttl > 0 && now.Sub(e.lastUsed) > p.ttl {
		delete(p.entries, key)
		var zero T
		return zero, false
	}
	e.lastUsed = now
	return e.value, true
}

// Put stores a value, evicting the LRU entry if at capacity.
func (p *Pool[T]) Put(key string, value T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if _, exists := p.entries[key]; !exists && len(p.entries) >= p.maxSize {
		p.evictLRU()
	}
	p.entries[key] = &entry[T]{
		value:    value,
		lastUsed: now,
	}
}

// GetOrCreate returns the cached value for key or builds it with create.
// Concurrent callers for the same missing key share one create call and all
// observe its result or its error. Errors are not cached.
func (p *Pool[T]) GetOrCreate(key string, create func() (T, error)) (T, error) {
	if v, ok := p.Get(key); ok {
		return v, nil
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		if v, ok := p.Get(key); ok {
			return v, nil
		}
		v, err := create()
		if err != nil {
			return nil, err
		}
		p.Put(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate removes an entry.
func (p *Pool[T]) Invalidate(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, key)
}

// Len reports the number of live entries, expired ones included until touched.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func (p *Pool[T]) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, e := range p.entries {
		if first || e.lastUsed.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.lastUsed
			first = false
		}
	}
	if oldestKey != "" {
		delete(p.entries, oldestKey)
	}
}
