package eventlog

import "errors"

// ErrStorage wraps an underlying storage engine failure encountered while
// appending to or reading from a stream.
var ErrStorage = errors.New("eventlog: storage error")
