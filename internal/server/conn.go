package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meilisearch/MeiliES/internal/command"
	"github.com/meilisearch/MeiliES/internal/eventlog"
	"github.com/meilisearch/MeiliES/internal/resp"
	"github.com/meilisearch/MeiliES/internal/subscription"
	"github.com/meilisearch/MeiliES/pkg/id"
	"github.com/meilisearch/MeiliES/pkg/log"
)

// handleConn services one connection end to end until it closes, errors,
// or the server begins shutting down.
func (s *Server) handleConn(ctx context.Context, conn net.Conn, connID id.ID) {
	defer conn.Close()
	logger := s.logger.With(log.Str("conn", connID.String()), log.Str("remote", conn.RemoteAddr().String()))
	logger.Debug("connection accepted")

	// connCtx is canceled the moment readLoop returns, for any reason —
	// client disconnect, a decode error, or the listener shutting down.
	// That's the only signal writeLoop and every subscription.Engine
	// goroutine on this connection have to unwind by; errgroup's own
	// derived context only cancels on a non-nil error, which a clean EOF
	// never produces.
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	out := make(chan resp.Value, s.bufSize)

	g.Go(func() error { return s.writeLoop(connCtx, conn, out) })
	g.Go(func() error {
		defer cancel()
		return s.readLoop(connCtx, &g, conn, out, logger)
	})

	if err := g.Wait(); err != nil && !isBenignConnErr(err) {
		logger.Warn("connection closed with error", log.Err(err))
		return
	}
	logger.Debug("connection closed")
}

// readLoop decodes one Command at a time and dispatches it. Subscribe
// commands spawn one subscription.Engine goroutine per stream into g,
// writing their records into the shared out channel; Publish and
// LastEventNumber are handled inline and reply directly.
func (s *Server) readLoop(ctx context.Context, g *errgroup.Group, conn net.Conn, out chan<- resp.Value, logger log.Logger) error {
	r := resp.NewReader(conn)
	for {
		v, err := r.ReadValue()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("server: reading request: %w", err)
		}

		cmd, err := command.Parse(v, s.maxStreamNameLength)
		if err != nil {
			if err := s.emit(ctx, out, command.ErrorReply(err.Error())); err != nil {
				return err
			}
			continue
		}

		switch cmd.Kind {
		case command.Publish:
			if err := s.handlePublish(ctx, cmd, out); err != nil {
				return err
			}
		case command.LastEventNumber:
			if err := s.handleLastEventNumber(ctx, cmd, out); err != nil {
				return err
			}
		case command.Subscribe:
			for _, sub := range cmd.Subscriptions {
				sub := sub
				g.Go(func() error {
					err := s.engine.Run(ctx, s.shuttingDown, sub, out)
					if err != nil && !errors.Is(err, context.Canceled) {
						logger.Info("subscription ended", log.Str("stream", sub.Name), log.Err(err))
					}
					if errors.Is(err, subscription.ErrSlowConsumer) || errors.Is(err, subscription.ErrShuttingDown) {
						// Both force-close the connection: a slow consumer
						// can't be trusted to keep up, and a shutting-down
						// server has already sent the error record and
						// wants every connection gone. Closing conn is what
						// actually unblocks readLoop's pending Read; that,
						// in turn, cancels connCtx and unwinds everything
						// else on this connection.
						conn.Close()
						return err
					}
					return nil // any other failure does not tear down the connection
				})
			}
		}
	}
}

func (s *Server) handlePublish(ctx context.Context, cmd command.Command, out chan<- resp.Value) error {
	if len(cmd.EventData) > s.maxEventPayloadBytes {
		return s.emit(ctx, out, command.ErrorReply(fmt.Sprintf("event payload exceeds %d bytes", s.maxEventPayloadBytes)))
	}
	l, err := s.registry.Open(cmd.Stream)
	if err != nil {
		return s.emit(ctx, out, command.ErrorReply(err.Error()))
	}
	if _, err := l.Append(ctx, []eventlog.AppendRecord{{EventName: cmd.EventName, EventData: cmd.EventData}}); err != nil {
		return s.emit(ctx, out, command.ErrorReply(err.Error()))
	}
	return s.emit(ctx, out, command.OK())
}

func (s *Server) handleLastEventNumber(ctx context.Context, cmd command.Command, out chan<- resp.Value) error {
	l, err := s.registry.Open(cmd.Stream)
	if err != nil {
		return s.emit(ctx, out, command.ErrorReply(err.Error()))
	}
	last, hasLast := l.LastEventNumber()
	return s.emit(ctx, out, command.LastEventNumberReply(cmd.Stream, l.Count(), last, hasLast))
}

func (s *Server) emit(ctx context.Context, out chan<- resp.Value, v resp.Value) error {
	select {
	case out <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writeLoop owns conn's write side exclusively, coalescing replies and
// subscription events for up to flushInterval before flushing — the same
// buffered-flush discipline used for fan-out delivery, generalized to a
// single connection's multiplexed output.
func (s *Server) writeLoop(ctx context.Context, conn net.Conn, out <-chan resp.Value) error {
	bw := bufio.NewWriter(conn)
	var ticker *time.Timer
	if s.flushInterval > 0 {
		ticker = time.NewTimer(s.flushInterval)
		defer ticker.Stop()
	}
	pending := 0
	flush := func() error {
		if pending == 0 {
			return nil
		}
		pending = 0
		return bw.Flush()
	}
	tickerC := func() <-chan time.Time {
		if ticker == nil {
			return nil
		}
		return ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return flush()
		case v, ok := <-out:
			if !ok {
				return flush()
			}
			if _, err := bw.Write(resp.Encode(v)); err != nil {
				return fmt.Errorf("server: writing reply: %w", err)
			}
			pending++
			if s.flushInterval == 0 || pending >= 64 {
				if err := flush(); err != nil {
					return err
				}
				if ticker != nil && !ticker.Stop() {
					<-ticker.C
				}
				if ticker != nil {
					ticker.Reset(s.flushInterval)
				}
			}
		case <-tickerC():
			if err := flush(); err != nil {
				return err
			}
			ticker.Reset(s.flushInterval)
		}
	}
}

func isBenignConnErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
