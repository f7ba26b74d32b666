// Package synth implements the monophonic oscillator engine: a single
// phase-accumulator voice driven by sample-accurate note events and
// smoothed, atomically updated parameters.
package synth

import (
	"fmt"
	"math"

	"github.com/wavecraft/monosynth/pkg/dsp/gain"
	"github.com/wavecraft/monosynth/pkg/dsp/oscillator"
	"github.com/wavecraft/monosynth/pkg/param"
	"github.com/wavecraft/monosynth/pkg/process"
	"github.com/wavecraft/monosynth/pkg/voice"
)

// Parameter IDs.
const (
	ParamGain uint32 = iota
	ParamFrequency
	ParamMode
)

// Power-on defaults and ranges. Defined once; Initialize and Reset both
// derive state from these, and the parameter metadata is built from them.
const (
	MinGainDb     = -30.0
	MaxGainDb     = 0.0
	DefaultGainDb = -10.0
	GainSmoothing = 0.003 // seconds

	MinFrequency     = 1.0
	MaxFrequency     = 20000.0
	DefaultFrequency = 420.0
	FreqSmoothing    = 0.010 // seconds
	freqSkew         = 0.25  // perceptual resolution at the low end
)

// Processor drives the per-block pipeline: it dispatches the block's due
// events into the note tracker, advances the oscillator at the tracked
// (or idle) frequency, and scales each raw sample by the smoothed note
// amplitude and the smoothed master gain before writing it to every
// output channel. The processing path performs no allocation, takes no
// locks and never panics; invalid inputs fall back to safe defaults.
type Processor struct {
	params    *param.Registry
	gainParam *param.Parameter
	freqParam *param.Parameter
	modeParam *param.Parameter

	masterGain *param.Smoother
	idlePitch  *param.Smoother
	tracker    *voice.Tracker
	osc        *oscillator.Oscillator

	sampleRate float64
}

// New creates a processor with power-on defaults. Initialize must be
// called with the session sample rate before processing.
func New() *Processor {
	p := &Processor{
		params:     param.NewRegistry(),
		masterGain: param.NewSmoother(param.LinearSmoothing, GainSmoothing),
		idlePitch:  param.NewSmoother(param.LinearSmoothing, FreqSmoothing),
		tracker:    voice.NewTracker(),
		osc:        oscillator.New(0),
	}

	p.gainParam = param.New(ParamGain, "Gain").
		Range(MinGainDb, MaxGainDb).
		Default(DefaultGainDb).
		Unit("dB").
		Smoothing(GainSmoothing).
		Build()
	p.freqParam = param.New(ParamFrequency, "Frequency").
		Range(MinFrequency, MaxFrequency).
		Skewed(freqSkew).
		Default(DefaultFrequency).
		Unit("Hz").
		Smoothing(FreqSmoothing).
		Build()
	p.modeParam = param.New(ParamMode, "Mode").
		Range(0, float64(oscillator.NumWaveforms-1)).
		Steps(oscillator.NumWaveforms - 1).
		Build()
	p.params.Add(p.gainParam, p.freqParam, p.modeParam)

	p.resetState()
	return p
}

// Initialize fixes the sample rate for the processing session and
// restores power-on state. It must be called before ProcessAudio.
func (p *Processor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if sampleRate <= 0 {
		return fmt.Errorf("synth: sample rate must be positive, got %v", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("synth: max block size must be positive, got %d", maxBlockSize)
	}

	p.sampleRate = sampleRate
	p.osc.SetSampleRate(sampleRate)
	p.tracker.Initialize(sampleRate)
	p.resetState()
	return nil
}

// Reset restores phase, held-note state and all smoothers to power-on
// defaults without reallocating. Parameter targets are externally owned
// and stay as the host last committed them.
func (p *Processor) Reset() {
	p.tracker.Reset()
	p.resetState()
}

func (p *Processor) resetState() {
	p.osc.Reset()
	p.masterGain.Reset(DefaultGainDb)
	p.idlePitch.Reset(DefaultFrequency)
}

// Parameters returns the registry for control-surface access.
func (p *Processor) Parameters() *param.Registry {
	return p.params
}

// SampleRate returns the session sample rate, 0 before Initialize.
func (p *Processor) SampleRate() float64 {
	return p.sampleRate
}

// ProcessAudio renders one block into ctx.Output. The latest committed
// parameter targets are read once at block start; events installed on the
// context are applied at their exact sample offsets. Always returns
// StatusKeepAlive: the engine is host-driven and has no terminal state.
func (p *Processor) ProcessAudio(ctx *process.Context) process.Status {
	p.masterGain.SetTarget(p.gainParam.PlainValue(), p.sampleRate)
	p.idlePitch.SetTarget(p.freqParam.PlainValue(), p.sampleRate)
	p.osc.SetWaveform(oscillator.Waveform(math.Round(p.modeParam.PlainValue())))

	numSamples := ctx.NumSamples()
	for i := 0; i < numSamples; i++ {
		ctx.DispatchThrough(int32(i), p.tracker)

		idle := p.idlePitch.Next()
		frequency := p.tracker.CurrentFrequency()
		if !p.tracker.NoteSounded() {
			frequency = idle
		}

		raw := p.osc.Advance(frequency)
		amplitude := p.tracker.NextAmplitude()
		master := gain.DbToLinear(p.masterGain.Next())
		ctx.WriteSample(i, float32(raw*amplitude*master))
	}
	return process.StatusKeepAlive
}
