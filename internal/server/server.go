// Package server accepts client connections and runs one request loop per
// connection over the line-framed envelope protocol.
package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/yanun0323/logs"

	"main/internal/rpc"
	"main/pkg/socket"
)

const (
	// maxFrameBytes bounds one request line; a deep book snapshot fits with
	// plenty of headroom.
	maxFrameBytes = 1 << 20

	initialReadBuffer = 64 << 10
)

// Config tunes per-connection behavior.
type Config struct {
	// IdleTimeout closes a connection that stays silent longer than this.
	// Zero disables the deadline.
	IdleTimeout time.Duration
}

// Server owns the accept loop. The dispatcher and everything beneath it is
// read-only shared state, so connections never synchronize with each other.
type Server struct {
	listener   *socket.Server
	dispatcher *rpc.Dispatcher
	cfg        Config
}

func New(listener *socket.Server, dispatcher *rpc.Dispatcher, cfg Config) *Server {
	return &Server{
		listener:   listener,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Serve accepts connections until ctx is done, handling each one in its own
// goroutine. It returns after every connection loop has finished.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	var wg sync.WaitGroup
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			logs.Errorf("accept error: %v", err)
			continue
		}
		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			s.handleConn(ctx, c)
		}(conn)
	}

	wg.Wait()
	return nil
}

// handleConn runs one connection's Reading -> Dispatching -> Writing loop.
// Responses go out in request order before the next read starts.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	remote := conn.RemoteAddr().String()
	logs.Infof("connected: %s", remote)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, initialReadBuffer), maxFrameBytes)

	for {
		if s.cfg.IdleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))
		}
		if !scanner.Scan() {
			break
		}
		frame := bytes.TrimSpace(scanner.Bytes())
		if len(frame) == 0 {
			continue
		}

		resp := s.dispatcher.Dispatch(frame)
		if err := writeFrame(conn, resp); err != nil {
			logs.Warnf("write error on %s: %v", remote, err)
			return
		}
	}

	switch err := scanner.Err(); {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		// Peer closed its side; normal end of the loop.
		logs.Infof("connection closed: %s", remote)
	case errors.Is(err, os.ErrDeadlineExceeded):
		logs.Infof("idle timeout: %s", remote)
	default:
		logs.Warnf("read error on %s: %v", remote, err)
	}
}

func writeFrame(conn net.Conn, payload []byte) error {
	buf := make([]byte, 0, len(payload)+1)
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	return writeFull(conn, buf)
}

func writeFull(conn net.Conn, buf []byte) error {
	for len(buf) > 0 {
		n, err := conn.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
