package eventlog

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
//   - strm/{name}/m           (counter: number of events appended so far)
//   - strm/{name}/e/{seq_be8} (entries, ordered by event number)

var (
	strmPrefix = []byte("strm/")
	entrySeg   = []byte("/e/")
	metaSuffix = []byte("/m")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyMeta builds the stream's counter key.
func KeyMeta(stream string) []byte {
	k := make([]byte, 0, len(strmPrefix)+len(stream)+len(metaSuffix))
	k = append(k, strmPrefix...)
	k = append(k, stream...)
	k = append(k, metaSuffix...)
	return k
}

// KeyEntry builds the entry key with a big-endian event number for proper ordering.
func KeyEntry(stream string, seq uint64) []byte {
	k := make([]byte, 0, len(strmPrefix)+len(stream)+len(entrySeg)+8)
	k = append(k, strmPrefix...)
	k = append(k, stream...)
	k = append(k, entrySeg...)
	k = appendBE8(k, seq)
	return k
}

// EntryPrefix returns the key prefix shared by all entries of a stream,
// used as the lower bound of a full-stream range scan.
func EntryPrefix(stream string) []byte {
	k := make([]byte, 0, len(strmPrefix)+len(stream)+len(entrySeg))
	k = append(k, strmPrefix...)
	k = append(k, stream...)
	k = append(k, entrySeg...)
	return k
}
