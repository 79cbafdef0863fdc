package socket

import (
	"errors"
	"net"
	"os"

	"main/pkg/exception"
)

var (
	// ErrNilServer is returned when a nil server receiver is used.
	ErrNilServer = errors.New("socket: nil server")
	// ErrAlreadyListening is returned when Listen is called twice.
	ErrAlreadyListening = errors.New("socket: already listening")
	// ErrNotListening is returned when Accept is called before Listen.
	ErrNotListening = errors.New("socket: not listening")
	// ErrPathNotSocket is returned when an existing unix path is not a socket.
	ErrPathNotSocket = errors.New("socket: path exists and is not a socket")
)

// Server listens for stream connections on a tcp address or unix socket path.
type Server struct {
	network string
	addr    string
	ln      net.Listener
}

// NewServer creates a server for the provided network and address.
func NewServer(network, addr string) (*Server, error) {
	if addr == "" {
		return nil, exception.ErrEmptyAddress
	}
	switch network {
	case NetworkTCP, NetworkUnix:
	default:
		return nil, exception.ErrUnsupportedNetwork
	}
	return &Server{network: network, addr: addr}, nil
}

// Addr returns the listener address once listening, the configured address
// otherwise. Useful with tcp port 0.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Listen starts listening on the configured address.
// For unix networks it removes a stale socket file when present.
func (s *Server) Listen() error {
	if s == nil {
		return ErrNilServer
	}
	if s.addr == "" {
		return exception.ErrEmptyAddress
	}
	if s.ln != nil {
		return ErrAlreadyListening
	}
	if s.network == NetworkUnix {
		if err := RemoveIfExists(s.addr); err != nil {
			return err
		}
	}
	ln, err := net.Listen(s.network, s.addr)
	if err != nil {
		return err
	}
	if ul, ok := ln.(*net.UnixListener); ok {
		ul.SetUnlinkOnClose(true)
	}
	s.ln = ln
	return nil
}

// Accept waits for the next incoming connection.
func (s *Server) Accept() (net.Conn, error) {
	if s == nil {
		return nil, ErrNilServer
	}
	if s.ln == nil {
		return nil, ErrNotListening
	}
	return s.ln.Accept()
}

// Close stops the listener.
func (s *Server) Close() error {
	if s == nil {
		return ErrNilServer
	}
	if s.ln == nil {
		return nil
	}
	err := s.ln.Close()
	s.ln = nil
	return err
}

// RemoveIfExists removes the unix socket file if it exists.
func RemoveIfExists(path string) error {
	if path == "" {
		return exception.ErrEmptyAddress
	}
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSocket == 0 {
		return ErrPathNotSocket
	}
	return os.Remove(path)
}
