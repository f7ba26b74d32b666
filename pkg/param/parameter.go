// Package param provides lock-free parameters and value smoothing for the
// audio engine. Control surfaces write a parameter's target as a single
// atomic word; the audio context reads the latest committed value at block
// start, so targets are tearing-free with at most one block of staleness.
package param

import (
	"math"
	"sync/atomic"
)

// Parameter is one externally controlled value. The live value is stored
// normalized in [0, 1]; Min, Max and the skew exponent define the mapping
// to the plain (display) range.
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32
	Skew         float64 // 1 = linear mapping
	Smoothing    float64 // recommended smoothing time in seconds

	value atomic.Uint64
}

// Value returns the current normalized value (0-1).
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue stores a normalized value (0-1) with one atomic word write.
func (p *Parameter) SetValue(value float64) {
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	p.value.Store(math.Float64bits(value))
}

// PlainValue returns the current value mapped to the plain range.
func (p *Parameter) PlainValue() float64 {
	return p.Denormalize(p.Value())
}

// SetPlainValue stores a plain-range value.
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// ResetToDefault restores the parameter's default value.
func (p *Parameter) ResetToDefault() {
	p.SetValue(p.DefaultValue)
}

// Normalize converts a plain value to a normalized one, clamped to [0, 1].
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized < 0 {
		normalized = 0
	} else if normalized > 1 {
		normalized = 1
	}
	if p.Skew != 1 && p.Skew > 0 {
		normalized = math.Pow(normalized, p.Skew)
	}
	return normalized
}

// Denormalize converts a normalized value (0-1) to the plain range.
func (p *Parameter) Denormalize(normalized float64) float64 {
	if normalized < 0 {
		normalized = 0
	} else if normalized > 1 {
		normalized = 1
	}
	if p.Skew != 1 && p.Skew > 0 {
		normalized = math.Pow(normalized, 1.0/p.Skew)
	}
	return p.Min + normalized*(p.Max-p.Min)
}
