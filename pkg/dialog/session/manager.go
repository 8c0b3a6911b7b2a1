package session

import (
	"strings"
	"sync"
	"time"

	"restaurant-chatbot-be/internal/repository/memory"
	"restaurant-chatbot-be/pkg/store"
)

// DefaultID is used when the platform sends no usable session path.
const DefaultID = "default"

// Manager owns session records and serializes turns per session id.
type Manager struct {
	sessionRepo *memory.SessionRepository
	now         func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(sessionRepo *memory.SessionRepository) *Manager {
	return &Manager{
		sessionRepo: sessionRepo,
		now:         time.Now,
		locks:       make(map[string]*sessionLock),
	}
}

// WithClock replaces the time source. Tests only.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// IDFromPath takes the last segment of a platform session path
// ("projects/p/agent/sessions/abc" -> "abc").
func IDFromPath(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if path == "" {
		return DefaultID
	}
	return path
}

// Lock blocks until the caller owns the session id. The returned func releases it.
func (m *Manager) Lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// GetOrCreate returns the live record, creating a default one on first contact.
// Callers must hold the session lock while mutating it.
func (m *Manager) GetOrCreate(id string) *store.Session {
	if s, found := m.sessionRepo.Get(id); found {
		return s
	}
	s := store.NewSession(id, m.now())
	m.sessionRepo.Save(s)
	return s
}

// Snapshot returns a copy of the record, or false if the session is unknown.
func (m *Manager) Snapshot(id string) (*store.Session, bool) {
	unlock := m.Lock(id)
	defer unlock()

	s, found := m.sessionRepo.Get(id)
	if !found {
		return nil, false
	}
	return s.Clone(), true
}

// Save stamps the record and refreshes its expiry.
func (m *Manager) Save(s *store.Session) {
	s.UpdatedAt = m.now()
	m.sessionRepo.Save(s)
}

func (m *Manager) ResetReservation(id string) {
	m.update(id, (*store.Session).ResetReservation)
}

func (m *Manager) ResetFeedback(id string) {
	m.update(id, (*store.Session).ResetFeedback)
}

func (m *Manager) ResetSupport(id string) {
	m.update(id, (*store.Session).ResetSupport)
}

// Reset clears every slot group. It reports false for unknown sessions.
func (m *Manager) Reset(id string) bool {
	unlock := m.Lock(id)
	defer unlock()

	s, found := m.sessionRepo.Get(id)
	if !found {
		return false
	}
	s.ResetAll()
	m.Save(s)
	return true
}

func (m *Manager) update(id string, fn func(*store.Session)) {
	unlock := m.Lock(id)
	defer unlock()

	s := m.GetOrCreate(id)
	fn(s)
	m.Save(s)
}

// OnExpired registers fn for sessions dropped after going idle past the ttl.
func (m *Manager) OnExpired(fn func(id string)) {
	m.sessionRepo.OnEvicted(fn)
}

func (m *Manager) Count() int {
	return m.sessionRepo.Count()
}
