package midi

import (
	"sort"
	"sync"
)

// EventQueue collects events from control-side producers (a live MIDI
// callback, a sequencer) until the audio callback drains them block by
// block. Offsets are interpreted relative to the start of the next
// collected block, so producers may schedule events arbitrarily far
// ahead.
//
// Only the host touches the queue; the synthesis core receives the
// drained, ordered slice and never takes this lock.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
	sorted bool
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

// Add enqueues one event. An offset before the next block start is
// clamped to 0 when collected.
func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
	q.sorted = false
}

// AddMultiple enqueues a batch of events.
func (q *EventQueue) AddMultiple(events ...Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	q.sorted = false
}

// CollectBlock appends to dst every queued event due within the next
// blockSize samples, ordered by non-decreasing offset with arrival order
// preserved for ties, and returns the extended slice. Collected offsets
// are clamped into [0, blockSize). Remaining events slide blockSize
// samples closer to their due block.
func (q *EventQueue) CollectBlock(blockSize int32, dst []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return dst
	}
	if !q.sorted {
		sort.SliceStable(q.events, func(i, j int) bool {
			return q.events[i].SampleOffset() < q.events[j].SampleOffset()
		})
		q.sorted = true
	}

	kept := q.events[:0]
	for _, event := range q.events {
		offset := event.SampleOffset()
		if offset >= blockSize {
			kept = append(kept, withOffset(event, offset-blockSize))
			continue
		}
		if offset < 0 {
			offset = 0
		}
		dst = append(dst, withOffset(event, offset))
	}
	// Clear the tail so dropped events don't pin memory.
	for i := len(kept); i < len(q.events); i++ {
		q.events[i] = nil
	}
	q.events = kept
	return dst
}

// Size returns the number of queued events.
func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Clear discards all queued events.
func (q *EventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.events {
		q.events[i] = nil
	}
	q.events = q.events[:0]
	q.sorted = true
}

func withOffset(event Event, offset int32) Event {
	switch e := event.(type) {
	case NoteOnEvent:
		e.Offset = offset
		return e
	case NoteOffEvent:
		e.Offset = offset
		return e
	case PolyPressureEvent:
		e.Offset = offset
		return e
	default:
		return event
	}
}
