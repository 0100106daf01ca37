// Package eventlog implements MeiliES's durable, append-only per-stream
// event log over Pebble.
//
// # Overview
//
// Each stream is a flat, independently-numbered keyspace:
//   - strm/{name}/m           (counter: number of events appended so far)
//   - strm/{name}/e/{seq_be8} (entries, ordered by event number)
//
// Events are stored as: varint(len(event_name)) | event_name | event_data |
// crc32c(event_name|event_data).
//
//	l, _ := OpenLog(db, "orders")
//	seqs, _ := l.Append(ctx, []AppendRecord{{EventName: []byte("placed"), EventData: data}})
//
//	// Bounded range read, ascending
//	items, _ := l.ReadRange(0, 10)
//
//	// Live notification: Subscribe before snapshotting LastEventNumber
//	// so no append in between is ever missed or double-delivered.
//	id, items, overflowed := l.Subscribe(1024)
//	defer l.Unsubscribe(id)
package eventlog
