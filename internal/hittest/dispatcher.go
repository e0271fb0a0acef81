// Package hittest answers the platform's non-client hit-test queries.
package hittest

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/hitspot"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// DefaultMaximizedAllowance is added to the title bar band while maximized
const DefaultMaximizedAllowance = 5

// AllEdges lets every resize margin win over the caption
var AllEdges = []types.Edge{types.EdgeTop, types.EdgeLeft, types.EdgeRight, types.EdgeBottom}

// Target is the window the dispatcher answers for
type Target interface {
	TitleBarHeight() float64
	WindowState() types.WindowState
	HitSpots() *hitspot.Registry
}

// Converter maps physical pixels to logical ones
type Converter interface {
	ToLogical(x, y int) types.Point
}

// Options tune band and precedence rules
type Options struct {
	// MaximizedAllowance extends the title bar band while maximized
	MaximizedAllowance float64
	// ResizeWins lists the edges whose resize margin beats the caption
	ResizeWins []types.Edge
	Logger     zerolog.Logger
}

// DefaultOptions returns the allowance of 5 and all edges winning
func DefaultOptions() Options {
	return Options{
		MaximizedAllowance: DefaultMaximizedAllowance,
		ResizeWins:         AllEdges,
		Logger:             zerolog.Nop(),
	}
}

// Dispatcher is safe to call from the platform's message thread.
// It reads only the published snapshot and atomic hover flags.
type Dispatcher struct {
	target    Target
	converter Converter
	allowance float64
	resize    [5]bool // indexed by types.Edge
	current   atomic.Pointer[hitspot.Spot]
	log       zerolog.Logger
}

// New creates a dispatcher for target
func New(target Target, converter Converter, opts Options) *Dispatcher {
	d := &Dispatcher{
		target:    target,
		converter: converter,
		allowance: opts.MaximizedAllowance,
		log:       opts.Logger,
	}
	for _, e := range opts.ResizeWins {
		if e > types.EdgeNone && int(e) < len(d.resize) {
			d.resize[e] = true
		}
	}
	return d
}

// Band returns the height of the title bar band for state
func (d *Dispatcher) Band(state types.WindowState) float64 {
	h := d.target.TitleBarHeight()
	if state == types.StateMaximized {
		h += d.allowance
	}
	return h
}

// HitTest resolves a physical point to a region code. edge is the resize
// margin the platform found the point on, EdgeNone if any.
func (d *Dispatcher) HitTest(x, y int, edge types.Edge) types.HitCode {
	p := d.converter.ToLogical(x, y)
	reg := d.target.HitSpots()
	onTitleBar := p.Y < d.Band(d.target.WindowState())

	var found *hitspot.Spot
	if onTitleBar {
		found = reg.Lookup(p)
		// a rebuild clears hover without telling us, so re-check the flag
		if d.current.Load() != found || (found != nil && !found.Hovered()) {
			reg.Invalidate()
			if found != nil {
				found.SetHovered(true)
			}
			d.current.Store(found)
		}
	} else {
		d.current.Store(nil)
	}
	reg.InvalidateExcept(d.current.Load())

	if found != nil {
		if code, ok := found.HitCode(); ok {
			return code
		}
	}

	if edge != types.EdgeNone {
		if !onTitleBar || d.resizeWins(edge) {
			return edge.HitCode()
		}
	}
	if onTitleBar {
		return types.HitCaption
	}
	return types.HitClient
}

func (d *Dispatcher) resizeWins(e types.Edge) bool {
	return e > types.EdgeNone && int(e) < len(d.resize) && d.resize[e]
}

// Current returns the spot the last hit test hovered, or nil
func (d *Dispatcher) Current() *hitspot.Spot {
	return d.current.Load()
}

// MouseLeft clears hover when the pointer leaves the window
func (d *Dispatcher) MouseLeft() {
	d.current.Store(nil)
	d.target.HitSpots().Invalidate()
}

// Reset forgets the hovered spot, used after a new snapshot is published
func (d *Dispatcher) Reset() {
	d.current.Store(nil)
}
