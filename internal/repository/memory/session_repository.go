package memory

import (
	"sync"
	"time"

	"homework-ai-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds the per-user working state in memory. State is
// process-local; nothing here survives a restart. Writes go through a
// per-user lock so read-modify-write sequences from concurrent requests
// cannot lose updates.
type SessionRepository struct {
	cache *cache.Cache
	locks sync.Map // userID -> *sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	// Sessions idle for 24h are purged; the sweep runs every 10 minutes.
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Get returns the working state for a user, creating a zero state on first
// access.
func (r *SessionRepository) Get(userID string) entity.SessionState {
	if x, found := r.cache.Get(userID); found {
		return x.(entity.SessionState)
	}
	return entity.NewSessionState()
}

// Update applies fn to the user's current state under the user's lock and
// stores the result. When fn returns an error nothing is written and the
// error is passed through; fn must not block on I/O.
func (r *SessionRepository) Update(userID string, fn func(entity.SessionState) (entity.SessionState, error)) (entity.SessionState, error) {
	mu := r.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	state := r.Get(userID)
	next, err := fn(state)
	if err != nil {
		return state, err
	}
	r.cache.Set(userID, next, cache.DefaultExpiration)
	return next, nil
}

// Save replaces the user's state wholesale. Prefer Update for anything
// derived from a previous Get.
func (r *SessionRepository) Save(userID string, state entity.SessionState) {
	mu := r.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()
	r.cache.Set(userID, state, cache.DefaultExpiration)
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}

func (r *SessionRepository) lockFor(userID string) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
