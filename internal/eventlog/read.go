package eventlog

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Item is one decoded event read back from storage.
type Item struct {
	Seq       uint64
	EventName []byte
	EventData []byte
}

// ReadRange returns, in ascending order, every event in the half-open
// range [from, to) that exists at the time of the call. Events appended
// after the scan starts are not guaranteed to be included even if they
// fall inside the range — callers needing a consistent catch-up boundary
// should pass `to` as a previously-snapshotted last-event-number+1.
func (l *Log) ReadRange(from, to uint64) ([]Item, error) {
	if from >= to {
		return nil, nil
	}
	low := KeyEntry(l.stream, from)
	if from == 0 {
		// Use the stream's whole-entry prefix rather than assuming 0 is
		// itself a valid key: it bounds the scan without depending on
		// event numbers starting at zero.
		low = EntryPrefix(l.stream)
	}
	high := KeyEntry(l.stream, to)
	iter, err := l.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer iter.Close()

	items := make([]Item, 0, to-from)
	for ok := iter.First(); ok; ok = iter.Next() {
		dec, valid := DecodeRecord(iter.Value())
		if !valid {
			continue
		}
		seq := seqFromKey(iter.Key())
		items = append(items, Item{Seq: seq, EventName: dec.EventName, EventData: dec.EventData})
	}
	return items, nil
}

func seqFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}
