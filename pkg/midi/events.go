// Package midi defines the sample-stamped note events consumed by the
// synthesis core and the host-side queue that collects them per block.
package midi

import (
	"fmt"
	"math"
)

// EventType identifies the kind of a note event.
type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
)

// Event is a timestamped note message. SampleOffset is the index within
// the current processing block at which the event takes effect.
type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int32
	String() string
}

// EventProcessor is a sink for dispatched events.
type EventProcessor interface {
	ProcessEvent(event Event)
}

// BaseEvent carries the fields shared by all event kinds.
type BaseEvent struct {
	EventChannel uint8
	Offset       int32
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

func (e BaseEvent) SampleOffset() int32 {
	return e.Offset
}

// NoteOnEvent starts a note. Velocity is normalized to [0, 1].
type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   float64
}

func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%.3f, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

// NoteOffEvent releases a note.
type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
}

func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Offset)
}

// PolyPressureEvent updates the pressure of a sounding note.
// Pressure is normalized to [0, 1].
type PolyPressureEvent struct {
	BaseEvent
	NoteNumber uint8
	Pressure   float64
}

func (e PolyPressureEvent) Type() EventType {
	return EventTypePolyPressure
}

func (e PolyPressureEvent) String() string {
	return fmt.Sprintf("PolyPressure{ch:%d, note:%d, pressure:%.3f, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Pressure, e.Offset)
}

// NoteToFrequency converts a MIDI note number to a frequency in Hz using
// equal temperament. A tuningA4 of 0 selects concert pitch (440 Hz).
// NoteToFrequency(69, 0) is exactly 440.
func NoteToFrequency(note uint8, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	return tuningA4 * math.Pow(2, (float64(note)-69.0)/12.0)
}

// NoteNumberToName returns the conventional name of a note number, e.g.
// 69 -> "A4".
func NoteNumberToName(note uint8) string {
	noteNames := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
