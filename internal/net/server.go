package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckclash/internal/session"
)

// Server hosts player-vs-AI battles for TCP clients, one battle per connection.
type Server struct {
	Manager *session.Manager
	Port    string
	Logger  *zap.Logger
}

// Run listens on Port and serves clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.logger().Info("listening", zap.String("addr", ln.Addr().String()))
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then waits for
// open connections to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := s.logger()
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		logger.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			if err := NewController(conn, s.Manager, logger).Serve(ctx); err != nil {
				logger.Warn("connection ended", zap.String("remote", conn.RemoteAddr().String()), zap.Error(err))
				return
			}
			logger.Info("client disconnected", zap.String("remote", conn.RemoteAddr().String()))
		}()
	}
}

// PlayLocal runs a battle in the terminal without a network listener. The
// client REPL talks to an in-process controller over an in-memory pipe.
func PlayLocal(ctx context.Context, mgr *session.Manager, logger *zap.Logger, client *Client) error {
	clientConn, serverConn := net.Pipe()
	client.conn = clientConn

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- NewController(serverConn, mgr, logger).Serve(ctx)
	}()

	err := client.RunREPL(ctx)
	clientConn.Close()
	if serr := <-errCh; err == nil {
		err = serr
	}
	return err
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
