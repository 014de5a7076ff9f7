package room

import "github.com/cwbudde/algo-room/geom"

// Source is a point audio source registered with an engine. Samples are mono
// and interpreted at the engine sample rate.
type Source struct {
	Position   geom.Vec3
	Samples    []float64
	SampleRate float64
	Name       string
}

// Pattern is a microphone directivity pattern.
type Pattern string

// Supported directivity patterns.
const (
	Omnidirectional Pattern = "omnidirectional"
	Cardioid        Pattern = "cardioid"
	Figure8         Pattern = "figure8"
)

// Microphone is a capture point registered with an engine. Axis is the unit
// facing direction for directional patterns; a zero axis (or the
// omnidirectional pattern) means uniform pickup.
type Microphone struct {
	Position geom.Vec3
	Name     string
	Pattern  Pattern
	Axis     geom.Vec3
}

// Gain returns the directivity gain for sound arriving along the unit
// propagation direction arrival (pointing toward the microphone).
func (m Microphone) Gain(arrival geom.Vec3) float64 {
	axis := m.Axis.Normalize()
	if axis == (geom.Vec3{}) || m.Pattern == Omnidirectional || m.Pattern == "" {
		return 1
	}

	// Incidence direction: from the microphone toward the incoming sound.
	cos := axis.Dot(arrival.Scale(-1))

	switch m.Pattern {
	case Cardioid:
		return 0.5 * (1 + cos)
	case Figure8:
		if cos < 0 {
			return -cos
		}

		return cos
	default:
		return 1
	}
}
