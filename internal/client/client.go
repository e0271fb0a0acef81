package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/nfx-chrome/internal/config"
	"github.com/yourusername/nfx-chrome/internal/models"
	"github.com/yourusername/nfx-chrome/internal/types"
)

const (
	DefaultSocketPath = config.DefaultSocketPath
	DefaultTimeout    = time.Duration(config.DefaultTimeoutMs) * time.Millisecond
)

// Client is the bridge client
type Client struct {
	conn *Connection
}

// NewClient creates a new bridge client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// FromConfig creates a client for the bridge section of cfg
func FromConfig(cfg *config.Config) *Client {
	return NewClient(cfg.Bridge.SocketPath, cfg.BridgeTimeout())
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// OnEvent sets the handler for events received while waiting for responses
func (c *Client) OnEvent(fn func(*models.Event)) {
	c.conn.OnEvent(fn)
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, params map[string]interface{}) (*models.Response, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := models.NewRequest(uuid.New().String(), method, params)
	return c.conn.SendRequest(ctx, req)
}

// CallMethod sends a generic RPC request with the given method and parameters
func (c *Client) CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	resp, err := c.request(ctx, method, params)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, resp.Error
	}

	return resp.Result, nil
}

func (c *Client) call(ctx context.Context, method string, params map[string]interface{}, into interface{}) error {
	result, err := c.CallMethod(ctx, method, params)
	if err != nil {
		return err
	}
	if into == nil {
		return nil
	}
	return models.Decode(result, into)
}

// Ping sends a ping request to test connectivity
func (c *Client) Ping(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, models.MethodPing, nil)
}

// HitTest asks the window what region a physical point is in.
// A nil edge lets the server's platform find the resize margin.
func (c *Client) HitTest(ctx context.Context, x, y int, edge *types.Edge) (models.HitTestResult, error) {
	params := map[string]interface{}{"x": x, "y": y}
	if edge != nil {
		params["edge"] = edge.String()
	}
	var res models.HitTestResult
	err := c.call(ctx, models.MethodHitTest, params, &res)
	return res, err
}

// FlagChanged reports an OS flag change
func (c *Client) FlagChanged(ctx context.Context, flag types.Flag, on bool) (models.StateResult, error) {
	var res models.StateResult
	err := c.call(ctx, models.MethodFlagChanged, map[string]interface{}{
		"flag": flag.String(),
		"on":   on,
	}, &res)
	return res, err
}

// MouseLeave reports that the pointer left the window
func (c *Client) MouseLeave(ctx context.Context) error {
	return c.call(ctx, models.MethodMouseLeave, nil, nil)
}

// BoundsChanged reports a move, resize or DPI change
func (c *Client) BoundsChanged(ctx context.Context) error {
	return c.call(ctx, models.MethodBoundsChanged, nil, nil)
}

// Screens replaces the server's screen layout and window bounds.
// It returns the scale of the screen the window is on.
func (c *Client) Screens(ctx context.Context, screens []types.Screen, bounds *types.Rect) (scaleX, scaleY float64, err error) {
	params, err := models.ToMap(models.ScreensParams{Screens: screens, WindowBounds: bounds})
	if err != nil {
		return 0, 0, err
	}
	var res struct {
		ScaleX float64 `json:"scaleX"`
		ScaleY float64 `json:"scaleY"`
	}
	if err := c.call(ctx, models.MethodScreens, params, &res); err != nil {
		return 0, 0, err
	}
	return res.ScaleX, res.ScaleY, nil
}

// GetState returns the window state
func (c *Client) GetState(ctx context.Context) (models.StateResult, error) {
	var res models.StateResult
	err := c.call(ctx, models.MethodGetState, nil, &res)
	return res, err
}

// RequestState asks the window to enter state
func (c *Client) RequestState(ctx context.Context, state types.WindowState) (models.StateResult, error) {
	var res models.StateResult
	err := c.call(ctx, models.MethodRequestState, map[string]interface{}{"state": state.String()}, &res)
	return res, err
}

// ListSpots returns the published hit spots
func (c *Client) ListSpots(ctx context.Context) (models.SpotsResult, error) {
	var res models.SpotsResult
	err := c.call(ctx, models.MethodListSpots, nil, &res)
	return res, err
}

// Subscribe registers for events and delivers them to fn until ctx is done
func (c *Client) Subscribe(ctx context.Context, fn func(*models.Event)) error {
	if err := c.call(ctx, models.MethodSubscribe, nil, nil); err != nil {
		return err
	}
	return c.conn.ReadEvents(ctx, fn)
}
