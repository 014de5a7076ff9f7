package fxchain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-room/dsp/filter/biquad"
	"github.com/cwbudde/algo-room/dsp/filter/design"
)

// Stage type tags.
const (
	KindLowpass  = "lowpass"
	KindHighpass = "highpass"
	KindDelay    = "delay"
	KindChorus   = "chorus"
)

// filterOrder is the order of the lowpass/highpass stages.
const filterOrder = 4

// Lowpass attenuates content above Cutoff with a 4th-order Butterworth.
type Lowpass struct {
	Cutoff     float64 // Hz
	SampleRate float64
}

// NewLowpass creates a lowpass stage.
func NewLowpass(cutoff, sampleRate float64) (*Lowpass, error) {
	if err := validateCutoff(cutoff, sampleRate); err != nil {
		return nil, err
	}

	return &Lowpass{Cutoff: cutoff, SampleRate: sampleRate}, nil
}

// Kind returns the stage type tag.
func (l *Lowpass) Kind() string { return KindLowpass }

// Apply filters a copy of in. A fresh filter cascade is built per call so
// repeated applications are deterministic.
func (l *Lowpass) Apply(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	biquad.NewChain(design.ButterworthLP(l.Cutoff, filterOrder, l.SampleRate)).ProcessBlock(out)

	return out
}

// Highpass attenuates content below Cutoff with a 4th-order Butterworth.
type Highpass struct {
	Cutoff     float64 // Hz
	SampleRate float64
}

// NewHighpass creates a highpass stage.
func NewHighpass(cutoff, sampleRate float64) (*Highpass, error) {
	if err := validateCutoff(cutoff, sampleRate); err != nil {
		return nil, err
	}

	return &Highpass{Cutoff: cutoff, SampleRate: sampleRate}, nil
}

// Kind returns the stage type tag.
func (h *Highpass) Kind() string { return KindHighpass }

// Apply filters a copy of in.
func (h *Highpass) Apply(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	biquad.NewChain(design.ButterworthHP(h.Cutoff, filterOrder, h.SampleRate)).ProcessBlock(out)

	return out
}

// Delay adds one attenuated, time-shifted copy of the signal onto itself:
// out[n+delay] += in[n] * Feedback. It is a single tap, not a recursive echo.
type Delay struct {
	Time       float64 // seconds
	Feedback   float64
	SampleRate float64
}

// NewDelay creates a delay stage.
func NewDelay(time, feedback, sampleRate float64) (*Delay, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("fxchain: delay sample rate must be > 0: %f", sampleRate)
	}

	if time < 0 || math.IsNaN(time) || math.IsInf(time, 0) {
		return nil, fmt.Errorf("fxchain: delay time must be >= 0: %f", time)
	}

	if feedback < 0 || feedback > 1 || math.IsNaN(feedback) {
		return nil, fmt.Errorf("fxchain: delay feedback must be in [0, 1]: %f", feedback)
	}

	return &Delay{Time: time, Feedback: feedback, SampleRate: sampleRate}, nil
}

// Kind returns the stage type tag.
func (d *Delay) Kind() string { return KindDelay }

// Apply returns in plus the shifted, attenuated copy. Output length equals
// input length; shifted samples past the end are dropped.
func (d *Delay) Apply(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	delaySamples := int(d.Time * d.SampleRate)
	if delaySamples <= 0 || delaySamples >= len(in) {
		return out
	}

	for n := 0; n+delaySamples < len(in); n++ {
		out[n+delaySamples] += in[n] * d.Feedback
	}

	return out
}

// Chorus mixes each sample with a copy whose delay is modulated by a
// sinusoidal LFO: out[n] = 0.7*in[n] + 0.3*in[n-delay(n)]. Samples whose
// modulated index would fall outside the buffer are left unmodified.
type Chorus struct {
	Rate       float64 // LFO rate in Hz
	Depth      float64 // peak delay excursion in seconds
	SampleRate float64
}

// NewChorus creates a chorus stage.
func NewChorus(rate, depth, sampleRate float64) (*Chorus, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("fxchain: chorus sample rate must be > 0: %f", sampleRate)
	}

	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("fxchain: chorus rate must be > 0: %f", rate)
	}

	if depth < 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return nil, fmt.Errorf("fxchain: chorus depth must be >= 0: %f", depth)
	}

	return &Chorus{Rate: rate, Depth: depth, SampleRate: sampleRate}, nil
}

// Kind returns the stage type tag.
func (c *Chorus) Kind() string { return KindChorus }

// Apply applies the modulated-delay mix to a copy of in.
func (c *Chorus) Apply(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	step := 2 * math.Pi * c.Rate / c.SampleRate
	for i := range in {
		lfo := math.Sin(step * float64(i))
		delayed := i - int(c.Depth*c.SampleRate*lfo)

		if delayed >= 0 && delayed < len(in) {
			out[i] = 0.7*in[i] + 0.3*in[delayed]
		}
	}

	return out
}

func validateCutoff(cutoff, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return fmt.Errorf("fxchain: filter sample rate must be > 0: %f", sampleRate)
	}

	if cutoff <= 0 || cutoff >= sampleRate/2 || math.IsNaN(cutoff) {
		return fmt.Errorf("fxchain: filter cutoff must be in (0, %f): %f", sampleRate/2, cutoff)
	}

	return nil
}
