// Package oscillator provides the phase-accumulator oscillator used by the
// synthesis core.
package oscillator

import "math"

// Waveform selects the shape generated by an Oscillator. It is a closed
// variant set: Advance dispatches on it in one switch, so adding a shape
// means adding a case there and nothing else changes for callers.
type Waveform int32

const (
	// Sine is the only waveform currently produced.
	Sine Waveform = iota

	numWaveforms // keep last
)

// NumWaveforms is the number of selectable waveforms.
const NumWaveforms = int32(numWaveforms)

// String returns the display name of the waveform.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "Sine Wave"
	default:
		return "Unknown"
	}
}

// Oscillator generates periodic waveforms from a running phase accumulator.
// Phase is kept in [0, 1) and advanced by frequency/sampleRate per sample.
type Oscillator struct {
	sampleRate float64
	phase      float64
	waveform   Waveform
}

// New creates an oscillator for the given sample rate.
func New(sampleRate float64) *Oscillator {
	return &Oscillator{
		sampleRate: sampleRate,
		waveform:   Sine,
	}
}

// SetSampleRate fixes the sample rate for the processing session.
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	o.sampleRate = sampleRate
}

// SetWaveform selects the generated waveform.
func (o *Oscillator) SetWaveform(w Waveform) {
	if w < 0 || w >= Waveform(numWaveforms) {
		w = Sine
	}
	o.waveform = w
}

// Waveform returns the selected waveform.
func (o *Oscillator) Waveform() Waveform {
	return o.waveform
}

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// Reset returns the phase to 0.
func (o *Oscillator) Reset() {
	o.phase = 0.0
}

// Advance returns the waveform value at the current phase, then advances
// the phase by frequency/sampleRate wrapped into [0, 1). A non-positive
// frequency or sample rate freezes the phase instead of reversing it or
// dividing by zero.
func (o *Oscillator) Advance(frequency float64) float64 {
	var sample float64
	switch o.waveform {
	case Sine:
		sample = math.Sin(2.0 * math.Pi * o.phase)
	}

	if frequency > 0 && o.sampleRate > 0 {
		o.phase += frequency / o.sampleRate
		if o.phase >= 1.0 {
			o.phase -= math.Floor(o.phase)
		}
	}
	return sample
}

// Process fills buffer by advancing at a fixed frequency - no allocations.
func (o *Oscillator) Process(buffer []float32, frequency float64) {
	for i := range buffer {
		buffer[i] = float32(o.Advance(frequency))
	}
}
