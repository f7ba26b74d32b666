// Package voice tracks monophonic note state. A Tracker turns note events
// into the target frequency and smoothed amplitude the oscillator plays.
package voice

import (
	"github.com/wavecraft/monosynth/pkg/midi"
	"github.com/wavecraft/monosynth/pkg/param"
)

// NoNote marks that no note has sounded since reset.
const NoNote = -1

// DefaultRampTime is the linear ramp applied to velocity and pressure
// changes, in seconds.
const DefaultRampTime = 0.005

// Tracker is a single-voice, last-note-priority note tracker. A NoteOn
// always pre-empts the held note; NoteOff and PolyPressure only apply to
// the note currently held. Releasing a note ramps amplitude to zero but
// keeps the note bookkeeping until the next NoteOn, so a decaying note
// never races a new one.
type Tracker struct {
	heldNote        int
	targetFrequency float64
	tuningA4        float64
	sampleRate      float64
	amplitude       *param.Smoother
}

// NewTracker creates a tracker with the default amplitude ramp.
func NewTracker() *Tracker {
	return &Tracker{
		heldNote:  NoNote,
		tuningA4:  440.0,
		amplitude: param.NewSmoother(param.LinearSmoothing, DefaultRampTime),
	}
}

// Initialize fixes the sample rate for the processing session and
// restores power-on state.
func (t *Tracker) Initialize(sampleRate float64) {
	t.sampleRate = sampleRate
	t.Reset()
}

// Reset restores power-on state: no note held, amplitude silent.
func (t *Tracker) Reset() {
	t.heldNote = NoNote
	t.targetFrequency = 0
	t.amplitude.Reset(0)
}

// ProcessEvent applies one note event. Events for notes that are not
// held are ignored without any state change.
func (t *Tracker) ProcessEvent(event midi.Event) {
	switch e := event.(type) {
	case midi.NoteOnEvent:
		t.heldNote = int(e.NoteNumber)
		t.targetFrequency = midi.NoteToFrequency(e.NoteNumber, t.tuningA4)
		t.amplitude.SetTarget(clampUnit(e.Velocity), t.sampleRate)
	case midi.NoteOffEvent:
		if int(e.NoteNumber) == t.heldNote {
			t.amplitude.SetTarget(0, t.sampleRate)
		}
	case midi.PolyPressureEvent:
		if int(e.NoteNumber) == t.heldNote {
			t.amplitude.SetTarget(clampUnit(e.Pressure), t.sampleRate)
		}
	}
}

// HeldNote returns the tracked note number, or NoNote.
func (t *Tracker) HeldNote() int {
	return t.heldNote
}

// NoteSounded reports whether any note has sounded since reset. While
// false, the engine falls back to its idle pitch parameter.
func (t *Tracker) NoteSounded() bool {
	return t.heldNote != NoNote
}

// CurrentFrequency returns the frequency of the tracked note in Hz.
func (t *Tracker) CurrentFrequency() float64 {
	return t.targetFrequency
}

// NextAmplitude advances the amplitude smoother by one sample and
// returns the new value. Call exactly once per sample.
func (t *Tracker) NextAmplitude() float64 {
	return t.amplitude.Next()
}

// CurrentAmplitude returns the amplitude without advancing the smoother.
func (t *Tracker) CurrentAmplitude() float64 {
	return t.amplitude.Current()
}

// Gate reports whether the amplitude target is non-zero.
func (t *Tracker) Gate() bool {
	return t.amplitude.Target() != 0
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
