// Package command maps RESP request arrays to MeiliES's three recognized
// commands and builds the RESP response/event shapes sent back.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meilisearch/MeiliES/internal/resp"
	"github.com/meilisearch/MeiliES/internal/stream"
)

// ErrInvalidCommand marks an unknown command name, wrong arity, or an
// argument of the wrong RESP kind. It is never fatal for the connection —
// the caller replies with an Error value and keeps reading.
var ErrInvalidCommand = errors.New("command: invalid command")

// Kind identifies which of the three recognized commands a Command holds.
type Kind int

const (
	Publish Kind = iota
	Subscribe
	LastEventNumber
)

// Command is the parsed, validated form of one request array.
type Command struct {
	Kind Kind

	// Publish
	Stream    string
	EventName []byte
	EventData []byte

	// Subscribe
	Subscriptions []stream.Subscription

	// LastEventNumber reuses Stream above.
}

// Parse validates v as a command request: an Array of BulkStrings whose
// first element names a recognized command. maxStreamNameLen bounds stream
// names accepted from publish/subscribe/last-event-number, forwarded to
// stream.ValidateName (0 falls back to stream.DefaultMaxNameLength).
func Parse(v resp.Value, maxStreamNameLen int) (Command, error) {
	if v.Kind != resp.Array || v.Null || len(v.Items) == 0 {
		return Command{}, fmt.Errorf("%w: request is not a non-empty array", ErrInvalidCommand)
	}
	args := make([]string, len(v.Items))
	for i, item := range v.Items {
		if item.Kind != resp.BulkString || item.Null {
			return Command{}, fmt.Errorf("%w: argument %d is not a bulk string", ErrInvalidCommand, i)
		}
		args[i] = string(item.Bulk)
	}

	name := strings.ToLower(args[0])
	switch name {
	case "publish":
		if len(args) != 4 {
			return Command{}, fmt.Errorf("%w: publish takes 3 arguments, got %d", ErrInvalidCommand, len(args)-1)
		}
		if err := stream.ValidateName(args[1], maxStreamNameLen); err != nil {
			return Command{}, err
		}
		return Command{
			Kind:      Publish,
			Stream:    args[1],
			EventName: []byte(args[2]),
			EventData: []byte(args[3]),
		}, nil

	case "subscribe":
		if len(args) < 2 {
			return Command{}, fmt.Errorf("%w: subscribe takes at least 1 argument", ErrInvalidCommand)
		}
		subs := make([]stream.Subscription, len(args)-1)
		for i, a := range args[1:] {
			sub, err := stream.Parse(a, maxStreamNameLen)
			if err != nil {
				return Command{}, err
			}
			subs[i] = sub
		}
		return Command{Kind: Subscribe, Subscriptions: subs}, nil

	case "last-event-number":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: last-event-number takes 1 argument, got %d", ErrInvalidCommand, len(args)-1)
		}
		if err := stream.ValidateName(args[1], maxStreamNameLen); err != nil {
			return Command{}, err
		}
		return Command{Kind: LastEventNumber, Stream: args[1]}, nil

	default:
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrInvalidCommand, args[0])
	}
}
