package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// Envelope types
const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// Bridge methods
const (
	MethodPing          = "ping"
	MethodSubscribe     = "subscribe"
	MethodHitTest       = "hitTest"
	MethodFlagChanged   = "flagChanged"
	MethodMouseLeave    = "mouseLeave"
	MethodBoundsChanged = "boundsChanged"
	MethodScreens       = "screens"
	MethodGetState      = "getState"
	MethodRequestState  = "requestState"
	MethodListSpots     = "listSpots"
)

// Events pushed to subscribed connections
const (
	EventStateChanged     = "stateChanged"
	EventHoverChanged     = "hoverChanged"
	EventSetFlag          = "setFlag"
	EventDecorationUpdate = "decorationUpdate"
	EventTaskbar          = "taskbar"
	EventCornerPreference = "cornerPreference"
	EventBorderColor      = "borderColor"
	EventClose            = "close"
	EventInstall          = "install"
	EventUninstall        = "uninstall"
)

// Error codes, numbered like JSON-RPC
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
	CodeUnavailable    = -32001
)

// MessageEnvelope is the top-level message structure for all communications
type MessageEnvelope struct {
	Type     string    `json:"type"` // "request", "response", or "event"
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
	Event    *Event    `json:"event,omitempty"`
}

// Request represents an RPC request
type Request struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

// Response represents an RPC response
type Response struct {
	ID     string                 `json:"id"`
	Result map[string]interface{} `json:"result,omitempty"`
	Error  *ErrorInfo             `json:"error,omitempty"`
}

// ErrorInfo represents an error in a response
type ErrorInfo struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Error implements error
func (e *ErrorInfo) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Event represents an asynchronous event from the server
type Event struct {
	EventType string                 `json:"eventType"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewRequest creates a new request envelope
func NewRequest(id, method string, params map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeRequest,
		Request: &Request{
			ID:     id,
			Method: method,
			Params: params,
		},
	}
}

// NewResponse creates a successful response envelope
func NewResponse(id string, result map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type:     TypeResponse,
		Response: &Response{ID: id, Result: result},
	}
}

// NewErrorResponse creates a failed response envelope
func NewErrorResponse(id string, code int, message string) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeResponse,
		Response: &Response{
			ID:    id,
			Error: &ErrorInfo{Code: code, Message: message},
		},
	}
}

// NewEvent creates an event envelope stamped with the current time
func NewEvent(eventType string, data map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeEvent,
		Event: &Event{
			EventType: eventType,
			Data:      data,
			Timestamp: time.Now(),
		},
	}
}

// IsError returns true if the response contains an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// GetError returns the error message if present
func (r *Response) GetError() string {
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// HitTestResult is the result of the hitTest method
type HitTestResult struct {
	Code    string `json:"code"`
	Value   int    `json:"value"`
	Hovered string `json:"hovered,omitempty"`
}

// StateResult is the result of the getState and requestState methods
type StateResult struct {
	Window       string            `json:"window"`
	State        types.WindowState `json:"state"`
	Flags        types.Flags       `json:"flags"`
	Installed    bool              `json:"installed"`
	Disabled     bool              `json:"disabled"`
	Reason       string            `json:"reason,omitempty"`
	Rebuilds     int64             `json:"rebuilds"`
	Generation   uint64            `json:"generation"`
	TitleBar     float64           `json:"titleBarHeight"`
	WindowBounds types.Rect        `json:"windowBounds"`
}

// SpotInfo describes one published hit spot
type SpotInfo struct {
	ID      string     `json:"id"`
	Role    types.Role `json:"role"`
	Bounds  types.Rect `json:"bounds"`
	Laid    bool       `json:"laid"`
	Hovered bool       `json:"hovered"`
}

// SpotsResult is the result of the listSpots method
type SpotsResult struct {
	Generation uint64     `json:"generation"`
	Spots      []SpotInfo `json:"spots"`
}

// ScreensParams are the params of the screens method
type ScreensParams struct {
	Screens      []types.Screen `json:"screens,omitempty"`
	WindowBounds *types.Rect    `json:"windowBounds,omitempty"`
}

// ToMap converts a typed value to the map form carried in envelopes
func ToMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to convert %T to map: %w", v, err)
	}
	return m, nil
}

// Decode converts an envelope map into a typed value
func Decode(m map[string]interface{}, into interface{}) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal map: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to decode into %T: %w", into, err)
	}
	return nil
}
