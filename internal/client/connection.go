package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/yourusername/nfx-chrome/internal/models"
)

// ErrNotConnected is returned when sending on a connection that was never opened
var ErrNotConnected = errors.New("not connected")

// Connection manages the Unix domain socket connection to the bridge.
// Requests are serialized; events that arrive while waiting for a response
// go to the event handler.
type Connection struct {
	socketPath string
	timeout    time.Duration

	mu      sync.Mutex
	conn    net.Conn
	reader  *bufio.Reader
	onEvent func(*models.Event)
}

// NewConnection creates a new connection instance
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect establishes the Unix domain socket connection
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Connection) connectLocked() error {
	if c.conn != nil {
		return nil
	}
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Connection) closeLocked() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// OnEvent sets the handler for events read from the connection
func (c *Connection) OnEvent(fn func(*models.Event)) {
	c.mu.Lock()
	c.onEvent = fn
	c.mu.Unlock()
}

// IsConnected returns true if the connection is established
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SendRequest sends a request and waits for the response with the same ID
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	// Apply timeout if not already set
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	deadline, _ := ctx.Deadline()

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send with newline delimiter
	data = append(data, '\n')
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := c.conn.Write(data); err != nil {
		c.closeLocked()
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	// Read response with context cancellation support
	respChan := make(chan *models.Response, 1)
	errChan := make(chan error, 1)
	conn, reader, onEvent := c.conn, c.reader, c.onEvent
	id := req.Request.ID

	go func() {
		if err := conn.SetReadDeadline(deadline); err != nil {
			errChan <- fmt.Errorf("failed to set read deadline: %w", err)
			return
		}
		for {
			env, err := readEnvelope(reader)
			if err != nil {
				errChan <- err
				return
			}
			switch env.Type {
			case models.TypeEvent:
				if onEvent != nil && env.Event != nil {
					onEvent(env.Event)
				}
			case models.TypeResponse:
				if env.Response == nil {
					errChan <- fmt.Errorf("response envelope has nil response")
					return
				}
				// parse errors carry no ID
				if env.Response.ID != id && env.Response.ID != "" {
					continue
				}
				respChan <- env.Response
				return
			default:
				errChan <- fmt.Errorf("unexpected envelope type %q", env.Type)
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		// the reader goroutine is mid-line; the stream cannot be reused
		c.closeLocked()
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case err := <-errChan:
		c.closeLocked()
		return nil, err
	case resp := <-respChan:
		return resp, nil
	}
}

// ReadEvents delivers events to fn until ctx is done or the connection fails.
// It returns nil when ctx ends the stream.
func (c *Connection) ReadEvents(ctx context.Context, fn func(*models.Event)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
		return fmt.Errorf("failed to clear read deadline: %w", err)
	}

	conn, reader := c.conn, c.reader
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		env, err := readEnvelope(reader)
		if err != nil {
			c.closeLocked()
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if env.Type == models.TypeEvent && env.Event != nil {
			fn(env.Event)
		}
	}
}

func readEnvelope(r *bufio.Reader) (*models.MessageEnvelope, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read envelope: %w", err)
	}
	var env models.MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	return &env, nil
}
