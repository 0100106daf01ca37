package command

import (
	"github.com/meilisearch/MeiliES/internal/resp"
)

// OK builds the SimpleString reply to a successful publish.
func OK() resp.Value { return resp.SimpleStringValue("OK") }

// ErrorReply builds a command-scoped Error reply.
func ErrorReply(message string) resp.Value { return resp.ErrorValue(message) }

// LastEventNumberReply builds the `[stream_name, count, last_number|null]`
// reply to a last-event-number query. hasLast is false for an empty or
// never-seen stream.
func LastEventNumberReply(streamName string, count uint64, last uint64, hasLast bool) resp.Value {
	lastVal := resp.NullBulkString()
	if hasLast {
		lastVal = resp.IntegerValue(int64(last))
	}
	return resp.ArrayValue(
		resp.BulkStringValue([]byte(streamName)),
		resp.IntegerValue(int64(count)),
		lastVal,
	)
}

// SubscribedRecord builds the acknowledgement record emitted when a
// subscription on streamName becomes active.
func SubscribedRecord(streamName string) resp.Value {
	return resp.ArrayValue(
		resp.BulkStringValue([]byte("subscribed")),
		resp.BulkStringValue([]byte(streamName)),
	)
}

// EventRecord builds one event record within a subscription's stream.
func EventRecord(streamName string, eventNumber uint64, eventName, eventData []byte) resp.Value {
	return resp.ArrayValue(
		resp.BulkStringValue([]byte("event")),
		resp.BulkStringValue([]byte(streamName)),
		resp.IntegerValue(int64(eventNumber)),
		resp.BulkStringValue(eventName),
		resp.BulkStringValue(eventData),
	)
}

// EndOfStreamRecord builds the completion record for a bounded
// subscription that has emitted every event in its range.
func EndOfStreamRecord(streamName string) resp.Value {
	return resp.ArrayValue(
		resp.BulkStringValue([]byte("end-of-stream")),
		resp.BulkStringValue([]byte(streamName)),
	)
}

// ErrorRecord builds a stream-scoped error record, sent when one
// subscription within a multi-stream subscribe fails independently of the
// others.
func ErrorRecord(streamName, message string) resp.Value {
	return resp.ArrayValue(
		resp.BulkStringValue([]byte("error")),
		resp.BulkStringValue([]byte(streamName)),
		resp.BulkStringValue([]byte(message)),
	)
}
