package eventlog

import (
	"encoding/binary"
	"hash/crc32"
)

// Record encoding: varint(len(event_name)) | event_name | event_data | crc32c(event_name|event_data)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// EncodeRecord frames an event's name and payload for storage.
func EncodeRecord(eventName, eventData []byte) []byte {
	out := make([]byte, 0, 10+len(eventName)+len(eventData)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(eventName)))
	out = append(out, tmp[:n]...)
	out = append(out, eventName...)
	out = append(out, eventData...)

	crc := crc32.Update(0, castagnoli, eventName)
	crc = crc32.Update(crc, castagnoli, eventData)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	out = append(out, crcb[:]...)
	return out
}

// Decoded is a record pulled back out of storage.
type Decoded struct {
	EventName []byte
	EventData []byte
}

// DecodeRecord reverses EncodeRecord, verifying the trailing checksum.
func DecodeRecord(b []byte) (Decoded, bool) {
	if len(b) < 1+4 {
		return Decoded{}, false
	}
	nlen, n := binary.Uvarint(b)
	if n <= 0 {
		return Decoded{}, false
	}
	if int(n)+int(nlen)+4 > len(b) {
		return Decoded{}, false
	}
	name := b[n : n+int(nlen)]
	data := b[n+int(nlen) : len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, name)
	crc = crc32.Update(crc, castagnoli, data)
	if crc != expect {
		return Decoded{}, false
	}
	return Decoded{
		EventName: append([]byte(nil), name...),
		EventData: append([]byte(nil), data...),
	}, true
}
