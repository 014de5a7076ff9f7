// Package analyze computes standard room acoustics metrics from impulse
// responses, such as those returned by the engine's RoomResponse.
package analyze

import (
	"errors"
	"math"
)

// Errors returned by analysis functions.
var (
	ErrEmptyIR           = errors.New("analyze: impulse response is empty")
	ErrInvalidSampleRate = errors.New("analyze: sample rate must be positive")
)

// dbFloor caps the Schroeder curve where the decayed energy underflows.
const dbFloor = -200

// Metrics holds impulse response analysis results.
type Metrics struct {
	RT60       float64 // reverberation time in seconds (T30, falling back to T20)
	EDT        float64 // early decay time in seconds (0 to -10 dB)
	T20        float64 // RT from -5 to -25 dB slope
	T30        float64 // RT from -5 to -35 dB slope
	C50        float64 // clarity at 50 ms in dB
	C80        float64 // clarity at 80 ms in dB
	D50        float64 // definition at 50 ms (ratio 0-1)
	D80        float64 // definition at 80 ms (ratio 0-1)
	CenterTime float64 // energy centroid in seconds
	PeakIndex  int     // sample index of the IR peak (absolute maximum)
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all metrics from an impulse response. Decay-based
// metrics are measured from the IR peak onward.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peak := peakIndex(ir)
	tail := ir[peak:]
	schroeder := a.schroeder(tail)

	m := Metrics{
		PeakIndex:  peak,
		CenterTime: a.centerTime(tail),
		C50:        a.clarity(tail, 50),
		C80:        a.clarity(tail, 80),
		D50:        a.definition(tail, 50),
		D80:        a.definition(tail, 80),
		EDT:        a.reverbTime(schroeder, 0, -10),
		T20:        a.reverbTime(schroeder, -5, -25),
		T30:        a.reverbTime(schroeder, -5, -35),
	}

	// T30 is the more robust estimate when enough decay range exists.
	if m.T30 > 0 {
		m.RT60 = m.T30
	} else {
		m.RT60 = m.T20
	}

	return m, nil
}

// Schroeder returns the backward-integrated energy decay curve in dB,
// normalized to 0 dB total energy.
func (a *Analyzer) Schroeder(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return a.schroeder(ir), nil
}

func (a *Analyzer) schroeder(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var cum float64
	for i := len(ir) - 1; i >= 0; i-- {
		cum += ir[i] * ir[i]
		curve[i] = cum
	}

	total := curve[0]
	if total <= 0 {
		return curve
	}

	for i, v := range curve {
		if ratio := v / total; ratio > 0 {
			curve[i] = 10 * math.Log10(ratio)
		} else {
			curve[i] = dbFloor
		}
	}

	return curve
}

// reverbTime fits a line to the Schroeder curve between startDB and endDB
// and extrapolates the decay to -60 dB.
func (a *Analyzer) reverbTime(schroeder []float64, startDB, endDB float64) float64 {
	start, end := -1, -1

	for i, v := range schroeder {
		if start < 0 && v <= startDB {
			start = i
		}

		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}

	if start < 0 || end <= start+1 {
		return 0
	}

	// Least-squares slope of the curve over [start, end], dB per sample.
	var sumX, sumY, sumXX, sumXY float64

	n := float64(end - start + 1)
	for i := start; i <= end; i++ {
		x := float64(i - start)
		sumX += x
		sumY += schroeder[i]
		sumXX += x * x
		sumXY += x * schroeder[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0 // no decay
	}

	rt := -60 / (slope * a.SampleRate)
	if rt < 0 {
		return 0
	}

	return rt
}

// definition computes D(t): the early-to-total energy ratio at boundary ms.
func (a *Analyzer) definition(ir []float64, boundaryMs float64) float64 {
	boundary := int(math.Round(boundaryMs / 1000 * a.SampleRate))
	if boundary <= 0 {
		return 0
	}

	if boundary >= len(ir) {
		return 1
	}

	var early, total float64
	for i, v := range ir {
		e := v * v

		total += e
		if i < boundary {
			early += e
		}
	}

	if total <= 0 {
		return 0
	}

	return early / total
}

// clarity computes C(t) in dB: early versus late energy at boundary ms.
func (a *Analyzer) clarity(ir []float64, boundaryMs float64) float64 {
	d := a.definition(ir, boundaryMs)
	if d <= 0 {
		return math.Inf(-1)
	}

	if d >= 1 {
		return math.Inf(1)
	}

	return 10 * math.Log10(d/(1-d))
}

// centerTime returns the energy centroid of the IR in seconds.
func (a *Analyzer) centerTime(ir []float64) float64 {
	var weighted, total float64
	for i, v := range ir {
		e := v * v
		weighted += float64(i) * e
		total += e
	}

	if total <= 0 {
		return 0
	}

	return weighted / total / a.SampleRate
}

func peakIndex(ir []float64) int {
	idx := 0
	peak := math.Abs(ir[0])

	for i, v := range ir {
		if a := math.Abs(v); a > peak {
			peak = a
			idx = i
		}
	}

	return idx
}
