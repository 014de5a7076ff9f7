// Package room turns traced propagation paths into impulse responses and
// renders registered sources to microphones through them.
package room

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-room/dsp/filter/biquad"
	"github.com/cwbudde/algo-room/dsp/filter/design"
	"github.com/cwbudde/algo-room/internal/vecmath"
	"github.com/cwbudde/algo-room/props"
	"github.com/cwbudde/algo-room/trace"
)

// ErrInvalidDuration is returned for a non-positive impulse response duration.
var ErrInvalidDuration = errors.New("room: duration must be positive")

// Variant selects the impulse response synthesis strategy.
type Variant int

const (
	// Broadband collapses each path's per-band attenuation to its mean and
	// synthesizes one full-range response. Cheap, spectrally flat.
	Broadband Variant = iota

	// Filterbank synthesizes one response per octave band, band-limits each
	// with a 4th-order filter, and sums them. Tracks frequency-dependent
	// absorption at roughly 6x the filtering cost of Broadband.
	Filterbank
)

const (
	// pulseLength bounds the decaying pulse written per path.
	pulseLength = 64

	// pulseDecaySeconds is the time constant of the per-path pulse decay.
	pulseDecaySeconds = 0.01

	// diffusionLoss scales pulse amplitude down by up to 30% for fully
	// diffuse surfaces.
	diffusionLoss = 0.3

	// Band edge factors for the filterbank, relative to each band center.
	bandEdgeLow  = 0.67
	bandEdgeHigh = 1.5
)

// Synthesizer converts traced paths into time-domain impulse responses.
type Synthesizer struct {
	sampleRate float64
	speed      float64
	materials  props.MaterialTable
}

// NewSynthesizer creates a synthesizer for the given session sample rate and
// propagation medium. The material table supplies diffusion coefficients for
// reflecting surfaces.
func NewSynthesizer(sampleRate float64, medium props.Medium, materials props.MaterialTable) *Synthesizer {
	return &Synthesizer{
		sampleRate: sampleRate,
		speed:      medium.SpeedOfSound,
		materials:  materials,
	}
}

// Synthesize renders paths into an impulse response of the given duration
// using the selected variant.
func (s *Synthesizer) Synthesize(paths []trace.Path, duration float64, variant Variant) ([]float64, error) {
	if variant == Filterbank {
		return s.Filterbank(paths, duration)
	}

	return s.Broadband(paths, duration)
}

// Broadband synthesizes a single full-range impulse response. Each path
// contributes a short decaying pulse at its arrival delay, with amplitude
// equal to the mean of its per-band attenuation. An empty path list yields
// an all-zero response of the requested length.
func (s *Synthesizer) Broadband(paths []trace.Path, duration float64) ([]float64, error) {
	ir, err := s.newBuffer(duration)
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		amplitude := vecmath.Mean(p.Attenuation[:]) * s.diffusionScale(p)
		s.addPulse(ir, p.Length, amplitude)
	}

	return ir, nil
}

// Filterbank synthesizes one response per canonical band using that band's
// attenuation alone, band-limits each, and sums them into the result.
func (s *Synthesizer) Filterbank(paths []trace.Path, duration float64) ([]float64, error) {
	ir, err := s.newBuffer(duration)
	if err != nil {
		return nil, err
	}

	band := make([]float64, len(ir))

	for b := 0; b < props.NumBands; b++ {
		for i := range band {
			band[i] = 0
		}

		for _, p := range paths {
			s.addPulse(band, p.Length, p.Attenuation[b])
		}

		biquad.NewChain(s.bandFilter(b)).ProcessBlock(band)
		vecmath.AddBlockInPlace(ir, band)
	}

	return ir, nil
}

// BandBuffers returns the six per-band responses before band-limiting.
// Exposed for diagnostics; their sample-wise sum carries the same energy
// distribution the filterbank shapes spectrally.
func (s *Synthesizer) BandBuffers(paths []trace.Path, duration float64) ([props.NumBands][]float64, error) {
	var bands [props.NumBands][]float64

	for b := 0; b < props.NumBands; b++ {
		buf, err := s.newBuffer(duration)
		if err != nil {
			return bands, err
		}

		for _, p := range paths {
			s.addPulse(buf, p.Length, p.Attenuation[b])
		}

		bands[b] = buf
	}

	return bands, nil
}

func (s *Synthesizer) newBuffer(duration float64) ([]float64, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, ErrInvalidDuration
	}

	return make([]float64, int(duration*s.sampleRate)), nil
}

// addPulse accumulates a decaying pulse for one path arrival into ir.
// Paths whose delay falls past the end of the buffer are skipped.
func (s *Synthesizer) addPulse(ir []float64, pathLength, amplitude float64) {
	delay := int(math.Round(pathLength / s.speed * s.sampleRate))
	if delay < 0 || delay >= len(ir) {
		return
	}

	n := pulseLength
	if rest := len(ir) - delay; rest < n {
		n = rest
	}

	tau := s.sampleRate * pulseDecaySeconds
	for i := 0; i < n; i++ {
		ir[delay+i] += amplitude * math.Exp(-float64(i)/tau)
	}
}

// diffusionScale attenuates pulses reflecting off diffuse surfaces; the
// direct path is unscaled.
func (s *Synthesizer) diffusionScale(p trace.Path) float64 {
	if p.Surface == nil {
		return 1
	}

	mat := s.materials.Get(p.Surface.Material)

	return 1 - mat.Diffusion*diffusionLoss
}

// bandFilter returns the band-limiting cascade for band index b: lowpass for
// the lowest band, highpass for the highest, bandpass in between.
func (s *Synthesizer) bandFilter(b int) []biquad.Coefficients {
	const order = 4

	freq := props.Bands[b]

	switch b {
	case 0:
		return design.ButterworthLP(freq*bandEdgeHigh, order, s.sampleRate)
	case props.NumBands - 1:
		return design.ButterworthHP(freq*bandEdgeLow, order, s.sampleRate)
	default:
		return design.ButterworthBP(freq*bandEdgeLow, freq*bandEdgeHigh, order, s.sampleRate)
	}
}
