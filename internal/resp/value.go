// Package resp implements a streaming encoder/decoder for the REdis
// Serialization Protocol subset MeiliES speaks on the wire: SimpleString,
// Error, Integer, BulkString (including the null bulk string) and Array
// (including the null array).
package resp

import "fmt"

// Kind identifies which of the five RESP value shapes a Value holds.
type Kind int

const (
	SimpleString Kind = iota
	Error
	Integer
	BulkString
	Array
)

func (k Kind) String() string {
	switch k {
	case SimpleString:
		return "SimpleString"
	case Error:
		return "Error"
	case Integer:
		return "Integer"
	case BulkString:
		return "BulkString"
	case Array:
		return "Array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a single decoded or to-be-encoded RESP value. Only the fields
// relevant to Kind are meaningful:
//   - SimpleString, Error: Str
//   - Integer:             Int
//   - BulkString:          Bulk, or Null if this is the null bulk string ($-1)
//   - Array:               Items, or Null if this is the null array (*-1)
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Bulk  []byte
	Items []Value
	Null  bool
}

// SimpleStringValue builds a SimpleString value.
func SimpleStringValue(s string) Value { return Value{Kind: SimpleString, Str: s} }

// ErrorValue builds an Error value.
func ErrorValue(s string) Value { return Value{Kind: Error, Str: s} }

// IntegerValue builds an Integer value.
func IntegerValue(n int64) Value { return Value{Kind: Integer, Int: n} }

// BulkStringValue builds a non-null BulkString value.
func BulkStringValue(b []byte) Value { return Value{Kind: BulkString, Bulk: b} }

// NullBulkString builds the null bulk string ($-1\r\n).
func NullBulkString() Value { return Value{Kind: BulkString, Null: true} }

// ArrayValue builds a non-null Array value.
func ArrayValue(items ...Value) Value { return Value{Kind: Array, Items: items} }

// NullArray builds the null array (*-1\r\n).
func NullArray() Value { return Value{Kind: Array, Null: true} }

// Equal reports whether v and other describe the same RESP value tree.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case SimpleString, Error:
		return v.Str == other.Str
	case Integer:
		return v.Int == other.Int
	case BulkString:
		if v.Null != other.Null {
			return false
		}
		return v.Null || string(v.Bulk) == string(other.Bulk)
	case Array:
		if v.Null != other.Null {
			return false
		}
		if v.Null {
			return true
		}
		if len(v.Items) != len(other.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(other.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
