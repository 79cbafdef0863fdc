package rpc

import (
	"bufio"
	"encoding/json"
	"net"

	"github.com/yanun0323/errors"
)

// Client speaks the line-framed envelope protocol over an open connection.
// It is not safe for concurrent use: the protocol answers requests strictly
// in order on one connection, so callers issue one Call at a time.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func NewClient(conn net.Conn) *Client {
	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// Call sends one request and decodes the matching response into result.
// A server-side error envelope comes back as an error.
func (c *Client) Call(method string, params any, result any) error {
	payload, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "encode params")
	}

	frame, err := json.Marshal(Request{Method: method, Params: payload})
	if err != nil {
		return errors.Wrap(err, "encode request")
	}
	frame = append(frame, '\n')
	if _, err := c.conn.Write(frame); err != nil {
		return errors.Wrap(err, "write request")
	}

	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return errors.Wrap(err, "decode response")
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	if result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return errors.Wrap(err, "decode result")
		}
	}
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
