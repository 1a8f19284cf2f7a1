package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"yamu-backend/internal/domain"
	"yamu-backend/internal/utils"
)

// Sessions is the shared in-memory store. main replaces it after loading env;
// tests swap in their own instance.
var Sessions = NewSessionStore(30 * time.Minute)

// SessionStore keeps live booking sessions in memory. There is no
// persistence anywhere in this product: a session lives exactly as long as
// the visitor keeps booking, then expires.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*BookingSession
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		sessions: map[string]*BookingSession{},
		ttl:      ttl,
	}
}

// Create registers a fresh session at the first wizard step.
func (st *SessionStore) Create(now time.Time) *BookingSession {
	sess := &BookingSession{
		ID:         uuid.NewString(),
		Step:       domain.StepSelectBus,
		CreatedAt:  now,
		LastActive: now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Get resolves a session and refreshes its activity timestamp.
func (st *SessionStore) Get(id string) (*BookingSession, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.NotFoundError{Resource: "session"}
	}

	sess.mu.Lock()
	sess.LastActive = time.Now()
	sess.mu.Unlock()

	return sess, nil
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle beyond the TTL and returns how many were removed.
func (st *SessionStore) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.LastActive)
		sess.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired sessions until ctx is cancelled.
func (st *SessionStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := st.Sweep(time.Now()); n > 0 {
					utils.LogEvent("", "session", "sweep", "removed="+strconv.Itoa(n))
				}
			}
		}
	}()
}
