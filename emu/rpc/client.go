package rpc

import (
	"fmt"
	"net/rpc"
	"strconv"
	"time"
)

type Client struct {
	client *rpc.Client
}

// NewClient connects to the server on localhost:port, retrying for a
// little while in case it's still starting.
func NewClient(port int) (*Client, error) {
	var (
		client *rpc.Client
		err    error
	)
	const maxretries = 5
	for i := range maxretries {
		client, err = rpc.DialHTTP("tcp", "localhost:"+strconv.Itoa(port))
		if err == nil {
			return &Client{client: client}, nil
		}
		modRPC.WarnZ("dial tcp failed").Error("err", err).Int("retry", i).End()
		time.Sleep(250 * time.Millisecond)
	}
	return nil, fmt.Errorf("dial failed max retries: %v", err)
}

func (c *Client) Close() error {
	modRPC.DebugZ("closing rpc client").End()
	return c.client.Close()
}

func (c *Client) Reset() error              { return call(c.client, "emu.Reset", nil) }
func (c *Client) SetPause(pause bool) error { return call(c.client, "emu.SetPause", pause) }
func (c *Client) StepFrame() error          { return call(c.client, "emu.StepFrame", nil) }
func (c *Client) Stop() error               { return call(c.client, "emu.Stop", nil) }
func (c *Client) Frames() (uint64, error)   { return request[uint64](c.client, "emu.Frames", nil) }

// Frame returns the palette indices of the last frame, or nil.
func (c *Client) Frame() ([]byte, error) { return request[[]byte](c.client, "emu.Frame", nil) }

func call(client *rpc.Client, funcname string, args any) error {
	_, err := request[struct{}](client, funcname, args)
	return err
}

func request[T any](client *rpc.Client, funcname string, args any) (T, error) {
	if args == nil {
		args = &struct{}{}
	}
	var reply T
	if err := client.Call(funcname, args, &reply); err != nil {
		return reply, fmt.Errorf("rpc %s: %w", funcname, err)
	}
	return reply, nil
}
