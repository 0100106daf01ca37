// Package server accepts RESP connections and drives each one: decoding
// requests, routing them to publish/subscribe/last-event-number handling,
// and writing replies and subscription events back in order.
//
// One connection maps to one goroutine group, coordinated with
// golang.org/x/sync/errgroup: a read loop parsing the next Command off the
// wire, a write loop draining a per-connection output channel, and one
// subscription.Engine goroutine per stream named in a subscribe request.
// Closing the connection, an I/O error, or the server shutting down all
// cancel the group's context and unwind every goroutine.
package server
