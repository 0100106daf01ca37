// Package stream parses the textual stream-name and stream-subscription
// expressions MeiliES accepts from the wire: `name`, `name:from`, and
// `name:from:to`.
package stream

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidStreamName marks a malformed stream name: empty, containing
// ':', or containing ASCII whitespace.
var ErrInvalidStreamName = errors.New("stream: invalid stream name")

// ErrInvalidSubscription marks a malformed subscription expression: more
// than two ':' separators, or a non-decimal from/to field.
var ErrInvalidSubscription = errors.New("stream: invalid subscription expression")

// DefaultMaxNameLength is used when a caller has no configured limit to
// pass (maxLen <= 0).
const DefaultMaxNameLength = 512

// ValidateName checks a bare stream name against the character-set and
// length rules; it does not parse the `[:from[:to]]` suffix. maxLen bounds
// the name's length in bytes; a non-positive maxLen falls back to
// DefaultMaxNameLength.
func ValidateName(name string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStreamName)
	}
	if len(name) > maxLen {
		return fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidStreamName, maxLen)
	}
	for _, r := range name {
		if r == ':' {
			return fmt.Errorf("%w: name contains ':'", ErrInvalidStreamName)
		}
		if r <= ' ' || r == 0x7f {
			return fmt.Errorf("%w: name contains whitespace", ErrInvalidStreamName)
		}
	}
	return nil
}

// Subscription is the parsed form of a subscription expression: the stream
// name plus the optional from and to bounds.
type Subscription struct {
	Name string
	// FromSet is false for the live-only form (`name`): subscribe from
	// "now", with no history.
	FromSet bool
	From    uint64
	// ToSet is false unless the expression bounded the range with `:to`.
	ToSet bool
	To    uint64
}

// LiveOnly reports whether this expression requested no history at all.
func (s Subscription) LiveOnly() bool { return !s.FromSet }

// Bounded reports whether this expression named an exclusive upper bound.
func (s Subscription) Bounded() bool { return s.ToSet }

// Parse parses a subscription expression of the form `name`, `name:from`,
// or `name:from:to`. Any more than two ':' separators, a non-decimal
// from/to, or an invalid stream name is a parse error. maxNameLen is
// forwarded to ValidateName.
func Parse(expr string, maxNameLen int) (Subscription, error) {
	parts := strings.Split(expr, ":")
	if len(parts) > 3 {
		return Subscription{}, fmt.Errorf("%w: more than two ':' separators in %q", ErrInvalidSubscription, expr)
	}

	name := parts[0]
	if err := ValidateName(name, maxNameLen); err != nil {
		return Subscription{}, err
	}
	sub := Subscription{Name: name}

	if len(parts) >= 2 {
		from, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return Subscription{}, fmt.Errorf("%w: invalid from %q: %v", ErrInvalidSubscription, parts[1], err)
		}
		sub.FromSet = true
		sub.From = from
	}

	if len(parts) == 3 {
		to, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return Subscription{}, fmt.Errorf("%w: invalid to %q: %v", ErrInvalidSubscription, parts[2], err)
		}
		sub.ToSet = true
		sub.To = to
	}

	return sub, nil
}
