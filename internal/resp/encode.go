package resp

import (
	"strconv"
)

// Encode serializes v to its RESP wire representation.
func Encode(v Value) []byte {
	buf := make([]byte, 0, 64)
	return appendValue(buf, v)
}

func appendValue(buf []byte, v Value) []byte {
	switch v.Kind {
	case SimpleString:
		buf = append(buf, simpleStringChar)
		buf = append(buf, v.Str...)
		return append(buf, crlf...)
	case Error:
		buf = append(buf, errorChar)
		buf = append(buf, v.Str...)
		return append(buf, crlf...)
	case Integer:
		buf = append(buf, integerChar)
		buf = strconv.AppendInt(buf, v.Int, 10)
		return append(buf, crlf...)
	case BulkString:
		buf = append(buf, bulkStringChar)
		if v.Null {
			buf = append(buf, '-', '1')
			return append(buf, crlf...)
		}
		buf = strconv.AppendInt(buf, int64(len(v.Bulk)), 10)
		buf = append(buf, crlf...)
		buf = append(buf, v.Bulk...)
		return append(buf, crlf...)
	case Array:
		buf = append(buf, arrayChar)
		if v.Null {
			buf = append(buf, '-', '1')
			return append(buf, crlf...)
		}
		buf = strconv.AppendInt(buf, int64(len(v.Items)), 10)
		buf = append(buf, crlf...)
		for _, item := range v.Items {
			buf = appendValue(buf, item)
		}
		return buf
	default:
		panic("resp: encode of unknown Kind")
	}
}
