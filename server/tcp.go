package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/himakhaitan/redis-lite/engine"
	"github.com/himakhaitan/redis-lite/pkg/config"
	"github.com/himakhaitan/redis-lite/pkg/metrics"
	"github.com/himakhaitan/redis-lite/protocol"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// TCPServer accepts RESP clients and serves each connection on its own goroutine.
// Requests on one connection are answered strictly in order.
type TCPServer struct {
	addr    string
	db      *engine.DB
	metrics *metrics.Metrics
	logger  *zap.Logger

	listener net.Listener
	conns    *xsync.MapOf[string, net.Conn]
	wg       sync.WaitGroup
	closing  atomic.Bool
}

func NewTCPServer(cfg *config.Config, db *engine.DB, m *metrics.Metrics, logger *zap.Logger) *TCPServer {
	return &TCPServer{
		addr:    cfg.ListenAddr(),
		db:      db,
		metrics: m,
		logger:  logger,
		conns:   xsync.NewMapOf[string, net.Conn](),
	}
}

// Start binds the listener and runs the accept loop in the background
func (s *TCPServer) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.addr, err)
	}
	s.listener = listener

	s.logger.Info("Listening for RESP clients", zap.String("addr", listener.Addr().String()))

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Addr returns the bound address, or nil before Start
func (s *TCPServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener and every live connection, then waits for the
// connection goroutines to finish or ctx to expire.
func (s *TCPServer) Stop(ctx context.Context) error {
	if s.listener == nil || !s.closing.CompareAndSwap(false, true) {
		return nil
	}

	err := s.listener.Close()
	s.conns.Range(func(id string, conn net.Conn) bool {
		_ = conn.Close()
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("RESP listener stopped")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connections returns the number of open client connections
func (s *TCPServer) Connections() int {
	return s.conns.Size()
}

func (s *TCPServer) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("Accept error", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *TCPServer) serve(conn net.Conn) {
	defer s.wg.Done()

	id := uuid.Must(uuid.NewV7()).String()
	s.conns.Store(id, conn)
	s.metrics.ConnectionOpened()
	if s.closing.Load() {
		// Stop may have ranged over conns before this one was registered
		s.conns.Delete(id)
		s.metrics.ConnectionClosed()
		_ = conn.Close()
		return
	}

	logger := s.logger.With(zap.String("conn_id", id), zap.String("remote", conn.RemoteAddr().String()))
	logger.Debug("Client connected")

	defer func() {
		s.conns.Delete(id)
		s.metrics.ConnectionClosed()
		_ = conn.Close()
		logger.Debug("Client disconnected")
	}()

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	for {
		frame, err := protocol.ReadFrame(reader)
		if err != nil {
			s.readFailed(logger, writer, err)
			return
		}

		reply := s.db.Handle(frame)
		if _, err := writer.Write(protocol.Serialize(reply)); err != nil {
			logger.Warn("Failed to write reply", zap.Error(err))
			return
		}
		if err := writer.Flush(); err != nil {
			logger.Warn("Failed to flush reply", zap.Error(err))
			return
		}
	}
}

// readFailed reports why a connection's read loop ended. A frame that cannot
// be split is answered once with an error reply before the connection closes.
func (s *TCPServer) readFailed(logger *zap.Logger, writer *bufio.Writer, err error) {
	switch {
	case errors.Is(err, io.EOF):
		logger.Debug("Client closed connection")
	case errors.Is(err, protocol.ErrProtocol):
		s.metrics.ProtocolError()
		logger.Info("Closing connection after unreadable frame", zap.Error(err))
		_, _ = writer.Write(protocol.Serialize(protocol.Error("ERR " + err.Error())))
		_ = writer.Flush()
	case s.closing.Load():
		logger.Debug("Connection closed by shutdown")
	default:
		logger.Info("Connection read failed", zap.Error(err))
	}
}
