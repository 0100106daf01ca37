package resp

import (
	"bytes"
	"errors"
	"strconv"
)

// ErrInvalidFrame marks a RESP framing error: a malformed length prefix, a
// negative length other than the null sentinel (-1), a missing CRLF, or an
// unrecognized discriminator byte. It is fatal for the connection that
// produced it.
var ErrInvalidFrame = errors.New("resp: invalid frame")

const (
	simpleStringChar = '+'
	errorChar        = '-'
	integerChar      = ':'
	bulkStringChar   = '$'
	arrayChar        = '*'
)

var crlf = []byte{'\r', '\n'}

// Decode attempts to parse one complete Value from the front of buf. It
// returns the value and the number of bytes consumed. If buf does not yet
// contain a complete value, it returns a zero Value and 0 with a nil
// error — callers should read more bytes and retry. A non-nil error is
// always ErrInvalidFrame-wrapped and fatal.
func Decode(buf []byte) (Value, int, error) {
	if len(buf) == 0 {
		return Value{}, 0, nil
	}
	switch buf[0] {
	case simpleStringChar:
		return decodeLine(buf[1:], SimpleString, 1)
	case errorChar:
		return decodeLine(buf[1:], Error, 1)
	case integerChar:
		return decodeInteger(buf[1:])
	case bulkStringChar:
		return decodeBulkString(buf[1:])
	case arrayChar:
		return decodeArray(buf[1:])
	default:
		return Value{}, 0, invalidPrefixError(buf[0])
	}
}

func invalidPrefixError(b byte) error {
	return errors.Join(ErrInvalidFrame, errors.New("unrecognized discriminator byte "+strconv.Itoa(int(b))))
}

func findCRLF(buf []byte) int {
	return bytes.Index(buf, crlf)
}

func decodeLine(buf []byte, kind Kind, headerLen int) (Value, int, error) {
	idx := findCRLF(buf)
	if idx < 0 {
		return Value{}, 0, nil
	}
	s := string(buf[:idx])
	return Value{Kind: kind, Str: s}, headerLen + idx + len(crlf), nil
}

func decodeInteger(buf []byte) (Value, int, error) {
	idx := findCRLF(buf)
	if idx < 0 {
		return Value{}, 0, nil
	}
	n, err := strconv.ParseInt(string(buf[:idx]), 10, 64)
	if err != nil {
		return Value{}, 0, errors.Join(ErrInvalidFrame, err)
	}
	return Value{Kind: Integer, Int: n}, 1 + idx + len(crlf), nil
}

func decodeBulkString(buf []byte) (Value, int, error) {
	idx := findCRLF(buf)
	if idx < 0 {
		return Value{}, 0, nil
	}
	length, err := strconv.ParseInt(string(buf[:idx]), 10, 64)
	if err != nil {
		return Value{}, 0, errors.Join(ErrInvalidFrame, err)
	}
	advance := 1 + idx + len(crlf)
	if length < 0 {
		if length != -1 {
			return Value{}, 0, errors.Join(ErrInvalidFrame, errors.New("bulk string: negative length other than null sentinel"))
		}
		return Value{Kind: BulkString, Null: true}, advance, nil
	}
	rest := buf[idx+len(crlf):]
	need := int(length) + len(crlf)
	if len(rest) < need {
		return Value{}, 0, nil
	}
	if !bytes.Equal(rest[length:length+2], crlf) {
		return Value{}, 0, errors.Join(ErrInvalidFrame, errors.New("bulk string: missing terminating CRLF"))
	}
	data := append([]byte(nil), rest[:length]...)
	return Value{Kind: BulkString, Bulk: data}, advance + need, nil
}

func decodeArray(buf []byte) (Value, int, error) {
	idx := findCRLF(buf)
	if idx < 0 {
		return Value{}, 0, nil
	}
	length, err := strconv.ParseInt(string(buf[:idx]), 10, 64)
	if err != nil {
		return Value{}, 0, errors.Join(ErrInvalidFrame, err)
	}
	advance := 1 + idx + len(crlf)
	if length < 0 {
		if length != -1 {
			return Value{}, 0, errors.Join(ErrInvalidFrame, errors.New("array: negative length other than null sentinel"))
		}
		return Value{Kind: Array, Null: true}, advance, nil
	}

	items := make([]Value, 0, length)
	rest := buf[idx+len(crlf):]
	for i := int64(0); i < length; i++ {
		v, n, err := Decode(rest)
		if err != nil {
			return Value{}, 0, err
		}
		if n == 0 {
			return Value{}, 0, nil
		}
		items = append(items, v)
		rest = rest[n:]
		advance += n
	}
	return Value{Kind: Array, Items: items}, advance, nil
}
