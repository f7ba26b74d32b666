package param

import (
	"math"
)

// SmoothingStyle selects the smoothing algorithm.
type SmoothingStyle int

const (
	// LinearSmoothing ramps by a fixed per-sample increment and converges
	// in exactly ceil(timeConstant*sampleRate) samples.
	LinearSmoothing SmoothingStyle = iota
	// ExponentialSmoothing is a one-pole ramp toward the target.
	ExponentialSmoothing
)

// Smoother ramps a value toward a target over a configured time instead
// of jumping, preventing audible clicks. Next must be called exactly once
// per sample; the convergence schedule assumes it.
type Smoother struct {
	style        SmoothingStyle
	timeConstant float64 // seconds
	current      float64
	target       float64
	smoothing    bool

	step  float64 // linear increment per sample
	coeff float64 // exponential pole
}

// snapThreshold ends an exponential ramp once the remaining distance is
// inaudible.
const snapThreshold = 1e-4

// NewSmoother creates a smoother converging over timeConstant seconds.
func NewSmoother(style SmoothingStyle, timeConstant float64) *Smoother {
	return &Smoother{
		style:        style,
		timeConstant: timeConstant,
	}
}

// SetTarget updates the value the smoother converges toward. The ramp
// slope is fixed at this moment from the current value and the sample
// rate. A non-positive sample rate (rate not yet known) or a zero time
// constant snaps to the target instantly instead of producing an
// undefined increment.
func (s *Smoother) SetTarget(target, sampleRate float64) {
	if target == s.target && (s.smoothing || s.current == target) {
		return
	}

	s.target = target
	samples := s.timeConstant * sampleRate
	if sampleRate <= 0 || samples <= 0 {
		s.current = target
		s.smoothing = false
		return
	}

	switch s.style {
	case LinearSmoothing:
		s.step = (target - s.current) / samples
	case ExponentialSmoothing:
		s.coeff = math.Exp(-1.0 / samples)
	}
	s.smoothing = s.step != 0 || s.style == ExponentialSmoothing
}

// Next advances the smoother by exactly one sample and returns the new
// current value. Once the target is reached it keeps returning it.
func (s *Smoother) Next() float64 {
	if !s.smoothing {
		return s.current
	}

	switch s.style {
	case LinearSmoothing:
		s.current += s.step
		if (s.step > 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.current = s.target
			s.smoothing = false
		}
	case ExponentialSmoothing:
		s.current = s.target + (s.current-s.target)*s.coeff
		if math.Abs(s.current-s.target) < snapThreshold {
			s.current = s.target
			s.smoothing = false
		}
	}
	return s.current
}

// Current returns the current value without advancing.
func (s *Smoother) Current() float64 {
	return s.current
}

// Target returns the value the smoother is converging toward.
func (s *Smoother) Target() float64 {
	return s.target
}

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.smoothing
}

// Reset snaps current value and target to value instantly.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.smoothing = false
}
