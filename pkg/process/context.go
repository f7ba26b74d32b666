// Package process provides the per-block audio processing context: output
// buffers, the block's sample-stamped events, and the cursor that dispatches
// them sample-accurately. Everything here is allocation-free after
// construction.
package process

import (
	"github.com/wavecraft/monosynth/pkg/midi"
)

// Status is returned by a block-processing call.
type Status int

const (
	// StatusOK means the block was processed and the engine has no
	// further output pending.
	StatusOK Status = iota
	// StatusKeepAlive means the engine must keep being called; it never
	// signals completion on its own.
	StatusKeepAlive
)

// Context carries one block of processing state. Output is organized
// channel × sample and written in place. Events hold the block's note
// messages ordered by non-decreasing sample offset, as guaranteed by the
// host; the internal cursor rearms at SetEvents and advances only
// forward, so each event is dispatched exactly once per block.
type Context struct {
	Output     [][]float32
	SampleRate float64

	events    []midi.Event
	nextEvent int
}

// NewContext creates a context for processing.
func NewContext() *Context {
	return &Context{}
}

// SetEvents installs the block's ordered event slice and rearms the
// dispatch cursor. Call once at the start of every block, with an empty
// slice when the block has no events.
func (c *Context) SetEvents(events []midi.Event) {
	c.events = events
	c.nextEvent = 0
}

// DispatchThrough delivers to sink, in arrival order, every event not yet
// dispatched whose sample offset is at or before the given sample index.
func (c *Context) DispatchThrough(sample int32, sink midi.EventProcessor) {
	for c.nextEvent < len(c.events) && c.events[c.nextEvent].SampleOffset() <= sample {
		sink.ProcessEvent(c.events[c.nextEvent])
		c.nextEvent++
	}
}

// PendingEvents returns how many of the block's events are still
// undispatched.
func (c *Context) PendingEvents() int {
	return len(c.events) - c.nextEvent
}

// NumSamples returns the block length.
func (c *Context) NumSamples() int {
	if len(c.Output) == 0 {
		return 0
	}
	return len(c.Output[0])
}

// NumChannels returns the number of output channels.
func (c *Context) NumChannels() int {
	return len(c.Output)
}

// WriteSample writes one value to every output channel at sample index i.
func (c *Context) WriteSample(i int, value float32) {
	for ch := range c.Output {
		c.Output[ch][i] = value
	}
}

// Clear zeros the output buffers.
func (c *Context) Clear() {
	for ch := range c.Output {
		for i := range c.Output[ch] {
			c.Output[ch][i] = 0
		}
	}
}
