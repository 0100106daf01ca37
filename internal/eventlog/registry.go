package eventlog

import (
	"sync"

	pebblestore "github.com/meilisearch/MeiliES/internal/storage/pebble"
)

// Registry hands out one *Log per stream name, shared by every caller.
// Opening a fresh *Log per request would give each caller its own count
// and its own subscriber set, so two publishers on the same stream could
// assign the same event number and a subscriber could miss events
// appended through a different *Log instance. Registry closes that hole:
// all publishers and subscribers on a given stream name go through the
// same *Log.
type Registry struct {
	db *pebblestore.DB

	mu   sync.Mutex
	logs map[string]*Log
}

// NewRegistry creates a Registry backed by db.
func NewRegistry(db *pebblestore.DB) *Registry {
	return &Registry{db: db, logs: make(map[string]*Log)}
}

// Open returns the shared *Log for stream, opening and caching it on
// first access.
func (r *Registry) Open(stream string) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.logs[stream]; ok {
		return l, nil
	}
	l, err := OpenLog(r.db, stream)
	if err != nil {
		return nil, err
	}
	r.logs[stream] = l
	return l, nil
}

// Streams returns the names of every stream opened through this Registry
// so far. It does not discover streams that exist in storage but have
// not yet been opened.
func (r *Registry) Streams() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.logs))
	for name := range r.logs {
		names = append(names, name)
	}
	return names
}
