package services

import (
	"sync"
	"time"
)

// DefaultSessionTimeout matches the automatic logout applied after a period
// of user inactivity.
const DefaultSessionTimeout = 30 * time.Minute

// SessionRegistry tracks last-activity timestamps per user. Expiry is lazy:
// a session is dead once Touch or Active observes that the idle window has
// passed, with no background timers involved.
type SessionRegistry struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	timeout  time.Duration
	now      func() time.Time
}

func NewSessionRegistry(timeout time.Duration) *SessionRegistry {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &SessionRegistry{
		lastSeen: map[string]time.Time{},
		timeout:  timeout,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start registers a fresh session for uid, replacing any previous one.
func (r *SessionRegistry) Start(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSeen[uid] = r.now()
}

// Touch records activity for uid. It returns false when the session has
// already expired or never existed; an expired session is removed and must
// be re-established through login.
func (r *SessionRegistry) Touch(uid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen, ok := r.lastSeen[uid]
	if !ok {
		return false
	}
	now := r.now()
	if now.Sub(seen) > r.timeout {
		delete(r.lastSeen, uid)
		return false
	}
	r.lastSeen[uid] = now
	return true
}

// Active reports whether uid has a live session without refreshing it.
func (r *SessionRegistry) Active(uid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen, ok := r.lastSeen[uid]
	if !ok {
		return false
	}
	if r.now().Sub(seen) > r.timeout {
		delete(r.lastSeen, uid)
		return false
	}
	return true
}

// End drops uid's session.
func (r *SessionRegistry) End(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lastSeen, uid)
}
