package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type registryEntry struct {
	session  *Session
	lastSeen time.Time
}

// SessionRegistry keeps the live sessions of a server in memory.
// Sessions idle for longer than the TTL are dropped; nothing is persisted.
type SessionRegistry struct {
	newSession func(id string) *Session
	ttl        time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*registryEntry
}

func NewSessionRegistry(newSession func(id string) *Session, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		newSession: newSession,
		ttl:        ttl,
		now:        time.Now,
		sessions:   make(map[string]*registryEntry),
	}
}

// Get returns the session with the given id and marks it as recently used.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e.session, nil
}

// GetOrCreate returns the session for id, or a new session with a fresh id
// when id is empty or unknown.
func (r *SessionRegistry) GetOrCreate(id string) (_ *Session, created bool) {
	if id != "" {
		if s, err := r.Get(id); err == nil {
			return s, false
		}
	}
	return r.Create(), true
}

func (r *SessionRegistry) Create() *Session {
	s := r.newSession(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = &registryEntry{session: s, lastSeen: r.now()}
	return s
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes and removes sessions idle for longer than the TTL. Sessions
// with a solve in flight or a live subscriber are kept.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	expired := make([]*Session, 0)
	for id, e := range r.sessions {
		if e.lastSeen.After(cutoff) || e.session.busy() {
			continue
		}
		delete(r.sessions, id)
		expired = append(expired, e.session)
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done, then closes every session.
func (r *SessionRegistry) Run(ctx context.Context) {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("op=session.sweep expired=%d live=%d", n, r.Len())
			}
		}
	}
}

func (r *SessionRegistry) closeAll() {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for id, e := range r.sessions {
		all = append(all, e.session)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
