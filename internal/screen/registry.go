package screen

import (
	"context"
	"sync"
	"time"
)

// Closer is anything a registry can own.
type Closer interface {
	Close()
}

type entry struct {
	key     string
	screen  Closer
	touched time.Time
}

// Registry keeps the one live screen of every browser session. Opening a
// different screen closes the previous one so its late results are dropped.
type Registry struct {
	mu      sync.Mutex
	current map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{current: make(map[string]*entry), ttl: ttl, now: time.Now}
}

// Open returns the session's screen for key, creating it with create when the
// session currently shows something else.
func Open[S Closer](r *Registry, sessionID, key string, create func() S) S {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.current[sessionID]; ok {
		if s, same := e.screen.(S); same && e.key == key {
			e.touched = r.now()
			return s
		}
		e.screen.Close()
	}
	s := create()
	r.current[sessionID] = &entry{key: key, screen: s, touched: r.now()}
	return s
}

// Drop closes and forgets the session's screen.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.current[sessionID]; ok {
		e.screen.Close()
		delete(r.current, sessionID)
	}
}

// Forget removes the entry for key if it is still the session's screen,
// without closing it again.
func (r *Registry) Forget(sessionID, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.current[sessionID]; ok && e.key == key {
		delete(r.current, sessionID)
	}
}

// Sweep closes screens idle for longer than the ttl and returns how many.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, e := range r.current {
		if e.touched.Before(cutoff) {
			e.screen.Close()
			delete(r.current, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.current)
}

// Run sweeps periodically until ctx ends, then closes everything.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.current {
		e.screen.Close()
		delete(r.current, id)
	}
}
