package eventlog

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	pebblestore "github.com/meilisearch/MeiliES/internal/storage/pebble"
)

// AppendRecord is a single event queued for append: a short name and an
// opaque payload. The event number is assigned by Append, never supplied
// by the caller.
type AppendRecord struct {
	EventName []byte
	EventData []byte
}

// Log provides append-only, gap-free sequencing for one named stream.
//
// Event numbers start at 0 and increase by exactly 1 per append; the
// counter and the entry write commit as a single Pebble batch so the
// numbering can never gap even if the process crashes mid-append.
type Log struct {
	db     *pebblestore.DB
	stream string

	mu    sync.Mutex
	count uint64 // number of events appended so far; also the next event number

	subMu     sync.Mutex
	subs      map[uint64]*subscriber
	nextSubID uint64
}

// OpenLog initializes a Log and restores its event count from metadata, if present.
func OpenLog(db *pebblestore.DB, stream string) (*Log, error) {
	l := &Log{db: db, stream: stream, subs: make(map[uint64]*subscriber)}
	meta, err := db.Get(KeyMeta(stream))
	if err == nil && len(meta) >= 8 {
		l.count = binary.BigEndian.Uint64(meta[:8])
	}
	return l, nil
}

// Append appends the provided records as a single atomic batch, assigning
// each a sequential event number starting at the stream's current count.
// It returns the assigned numbers in order.
func (l *Log) Append(ctx context.Context, recs []AppendRecord) ([]uint64, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.db.NewBatch()
	defer b.Close()

	seqs := make([]uint64, len(recs))
	n := l.count
	for i, r := range recs {
		seq := n
		val := EncodeRecord(r.EventName, r.EventData)
		if err := b.Set(KeyEntry(l.stream, seq), val, nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		seqs[i] = seq
		n++
	}

	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], n)
	if err := b.Set(KeyMeta(l.stream), meta[:], nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := l.db.CommitBatch(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	l.count = n
	items := make([]Item, len(recs))
	for i, r := range recs {
		items[i] = Item{Seq: seqs[i], EventName: r.EventName, EventData: r.EventData}
	}
	l.broadcast(items)
	return seqs, nil
}

// Count returns the number of events appended to the stream so far.
func (l *Log) Count() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// LastEventNumber returns (count-1, true) or (0, false) for an empty stream.
func (l *Log) LastEventNumber() (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == 0 {
		return 0, false
	}
	return l.count - 1, true
}

