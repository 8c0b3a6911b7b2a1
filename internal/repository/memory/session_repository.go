package memory

import (
	"time"

	"restaurant-chatbot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps conversation records in process memory.
// Records expire after ttl without a Save.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, purgeInterval time.Duration) *SessionRepository {
	c := cache.New(ttl, purgeInterval)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}

// OnEvicted registers a callback for records dropped by expiry. It runs on
// the purge goroutine, so it must not call back into the repository.
func (r *SessionRepository) OnEvicted(fn func(sessionID string)) {
	r.cache.OnEvicted(func(key string, _ interface{}) {
		fn(key)
	})
}
