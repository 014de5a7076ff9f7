package fxchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrUnknownStage is returned when a chain config references an unknown
// stage kind.
var ErrUnknownStage = errors.New("fxchain: unknown stage kind")

// Parameter defaults applied when a config node omits a value.
const (
	defaultCutoff   = 1000.0
	defaultTime     = 0.05
	defaultFeedback = 0.3
	defaultRate     = 1.5
	defaultDepth    = 0.002
)

// node is the serialized form of one chain stage.
type node struct {
	Type   string             `json:"type"`
	Params map[string]float64 `json:"params,omitempty"`
}

// getNum extracts a numeric parameter, returning def if missing or invalid.
func (n node) getNum(key string, def float64) float64 {
	v, ok := n.Params[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// ParseChain builds a chain from a JSON stage list, e.g.
//
//	[{"type":"lowpass","params":{"cutoff":4000}},
//	 {"type":"delay","params":{"time":0.05,"feedback":0.2}}]
//
// Missing parameters take stage defaults; unknown stage kinds are an error.
func ParseChain(data []byte, sampleRate float64) (*Chain, error) {
	var nodes []node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("fxchain: parse chain: %w", err)
	}

	chain := NewChain()

	for i, n := range nodes {
		stage, err := newStage(n, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("fxchain: node %d (%s): %w", i, n.Type, err)
		}

		chain.Append(stage)
	}

	return chain, nil
}

func newStage(n node, sampleRate float64) (Stage, error) {
	switch n.Type {
	case KindLowpass:
		return NewLowpass(n.getNum("cutoff", defaultCutoff), sampleRate)
	case KindHighpass:
		return NewHighpass(n.getNum("cutoff", defaultCutoff), sampleRate)
	case KindDelay:
		return NewDelay(n.getNum("time", defaultTime), n.getNum("feedback", defaultFeedback), sampleRate)
	case KindChorus:
		return NewChorus(n.getNum("rate", defaultRate), n.getNum("depth", defaultDepth), sampleRate)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, n.Type)
	}
}

// MarshalJSON serializes the chain as the stage list ParseChain accepts.
func (c *Chain) MarshalJSON() ([]byte, error) {
	nodes := make([]node, 0, len(c.stages))

	for _, s := range c.stages {
		switch st := s.(type) {
		case *Lowpass:
			nodes = append(nodes, node{Type: KindLowpass, Params: map[string]float64{"cutoff": st.Cutoff}})
		case *Highpass:
			nodes = append(nodes, node{Type: KindHighpass, Params: map[string]float64{"cutoff": st.Cutoff}})
		case *Delay:
			nodes = append(nodes, node{Type: KindDelay, Params: map[string]float64{"time": st.Time, "feedback": st.Feedback}})
		case *Chorus:
			nodes = append(nodes, node{Type: KindChorus, Params: map[string]float64{"rate": st.Rate, "depth": st.Depth}})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, s.Kind())
		}
	}

	return json.Marshal(nodes)
}
