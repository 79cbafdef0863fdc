package socket

import (
	"net"

	"main/pkg/exception"
)

const (
	NetworkTCP  = "tcp"
	NetworkUnix = "unix"
)

// Client dials stream sockets using a precomputed address.
type Client struct {
	network string
	addr    string
}

// NewClient creates a client for the provided network and address.
func NewClient(network, addr string) (*Client, error) {
	if addr == "" {
		return nil, exception.ErrEmptyAddress
	}
	switch network {
	case NetworkTCP, NetworkUnix:
	default:
		return nil, exception.ErrUnsupportedNetwork
	}
	return &Client{network: network, addr: addr}, nil
}

// Addr returns the configured address.
func (c *Client) Addr() string {
	if c == nil {
		return ""
	}
	return c.addr
}

// Dial opens a stream connection.
func (c *Client) Dial() (net.Conn, error) {
	if c == nil {
		return nil, exception.ErrNilClient
	}
	if c.addr == "" {
		return nil, exception.ErrEmptyAddress
	}
	return net.Dial(c.network, c.addr)
}
