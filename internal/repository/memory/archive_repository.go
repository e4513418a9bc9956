package memory

import (
	"strconv"
	"sync"
	"time"

	"homework-ai-be/internal/entity"
)

// ArchiveRepository is the in-session history of completed exchanges:
// append-to-front, most-recent-first, records immutable once stored. No
// delete or persistence operations exist.
type ArchiveRepository struct {
	mu      sync.RWMutex
	records map[string][]entity.QuestionRecord // userID -> newest first
	lastID  int64
}

func NewArchiveRepository() *ArchiveRepository {
	return &ArchiveRepository{
		records: make(map[string][]entity.QuestionRecord),
	}
}

// NextID issues a time-derived token, strictly increasing even when two
// archives land in the same nanosecond tick.
func (r *ArchiveRepository) NextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := time.Now().UnixNano()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

// Archive prepends the record to the user's history.
func (r *ArchiveRepository) Archive(userID string, record entity.QuestionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[userID] = append([]entity.QuestionRecord{record}, r.records[userID]...)
}

// List returns the user's history, most recent first.
func (r *ArchiveRepository) List(userID string) []entity.QuestionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.QuestionRecord, len(r.records[userID]))
	copy(out, r.records[userID])
	return out
}

// Recall returns the archived record with the given id without removing or
// reordering anything.
func (r *ArchiveRepository) Recall(userID, id string) (*entity.QuestionRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records[userID] {
		if r.records[userID][i].Id == id {
			record := r.records[userID][i]
			return &record, true
		}
	}
	return nil, false
}
