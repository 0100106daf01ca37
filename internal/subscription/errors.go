package subscription

import "errors"

// ErrSlowConsumer marks a subscription whose live buffer exceeded its
// high-water mark because the client did not read fast enough. The error
// record is offered to the connection's output without blocking, and the
// connection is then closed.
var ErrSlowConsumer = errors.New("subscription: slow consumer")

// ErrShuttingDown marks a subscription torn down because the server is
// stopping. The connection is closed after the error record is sent and
// storage is flushed.
var ErrShuttingDown = errors.New("subscription: server shutting down")
