package server

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/meilisearch/MeiliES/internal/config"
	"github.com/meilisearch/MeiliES/internal/eventlog"
	"github.com/meilisearch/MeiliES/internal/subscription"
	"github.com/meilisearch/MeiliES/pkg/id"
	"github.com/meilisearch/MeiliES/pkg/log"
)

// Server accepts RESP connections on a net.Listener and drives each one
// against a shared stream registry.
type Server struct {
	registry *eventlog.Registry
	engine   *subscription.Engine
	logger   log.Logger
	idGen    *id.Generator

	bufSize              int
	flushInterval        time.Duration
	maxEventPayloadBytes int
	maxStreamNameLength  int

	mu           sync.Mutex
	lis          net.Listener
	conns        map[net.Conn]struct{}
	shuttingDown chan struct{}
	wg           sync.WaitGroup
}

// New constructs a Server backed by registry, configured from cfg.
func New(registry *eventlog.Registry, logger log.Logger, cfg config.Config) *Server {
	return &Server{
		registry:             registry,
		engine:               subscription.NewEngine(registry, logger, cfg.SubscriptionBufferSize),
		logger:               logger,
		idGen:                id.NewGenerator(),
		bufSize:              cfg.SubscriptionBufferSize,
		flushInterval:        cfg.SubscriptionFlushInterval,
		maxEventPayloadBytes: cfg.MaxEventPayloadBytes,
		maxStreamNameLength:  cfg.MaxStreamNameLength,
		conns:                make(map[net.Conn]struct{}),
		shuttingDown:         make(chan struct{}),
	}
}

// ListenAndServe binds to addr and accepts connections until ctx is done.
// Each accepted connection is serviced on its own goroutine; ListenAndServe
// returns once every connection goroutine has unwound.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lis = l
	s.mu.Unlock()

	acceptErr := make(chan error, 1)
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				acceptErr <- err
				return
			}
			connID := s.idGen.Next()
			s.addConn(conn)
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				defer s.removeConn(conn)
				s.handleConn(ctx, conn, connID)
			}()
		}
	}()

	select {
	case <-ctx.Done():
		s.Close()
		s.wg.Wait()
		return nil
	case err := <-acceptErr:
		s.wg.Wait()
		return err
	}
}

// Close stops accepting new connections, signals every live subscription
// to end with ErrShuttingDown, and closes every open connection so a
// reader blocked in net.Conn.Read unblocks immediately instead of waiting
// on a client that may never send or disconnect on its own.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.shuttingDown:
	default:
		close(s.shuttingDown)
	}
	if s.lis != nil {
		_ = s.lis.Close()
	}
	for conn := range s.conns {
		_ = conn.Close()
	}
}

// addConn tracks conn so Close can force it shut on shutdown.
func (s *Server) addConn(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
}

// removeConn stops tracking conn once its handling goroutine has unwound.
func (s *Server) removeConn(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// Addr returns the bound listener address, or nil before ListenAndServe
// has started listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis == nil {
		return nil
	}
	return s.lis.Addr()
}
