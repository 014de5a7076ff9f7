// Package fxchain implements the ordered post-processing chain applied to
// impulse responses (or any audio buffer) before rendering.
//
// Stages form a closed, tagged set (lowpass, highpass, delay, chorus) with
// explicit parameters, so chains are serializable and testable in isolation.
// Every stage is a pure function of its input: no audio state survives
// between invocations, making a chain reentrant and safe to share across
// concurrently rendered source/microphone pairs.
package fxchain

// Stage is one unary signal transform. Apply must not retain or modify its
// input and must return the same output for the same input every time.
type Stage interface {
	// Kind returns the stage type tag used for serialization.
	Kind() string

	// Apply transforms one buffer into a new buffer (same or different
	// length).
	Apply(in []float64) []float64
}

// Chain is an ordered list of stages applied left to right.
type Chain struct {
	stages []Stage
}

// NewChain creates an empty chain, optionally seeded with stages.
func NewChain(stages ...Stage) *Chain {
	c := &Chain{}
	for _, s := range stages {
		c.Append(s)
	}

	return c
}

// Append adds a stage to the end of the chain. Nil stages are ignored.
func (c *Chain) Append(s Stage) {
	if s != nil {
		c.stages = append(c.stages, s)
	}
}

// Clear removes all stages.
func (c *Chain) Clear() {
	c.stages = nil
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Process runs in through every stage in order and returns the result.
// The input buffer is never modified; an empty chain returns a copy.
func (c *Chain) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	for _, s := range c.stages {
		out = s.Apply(out)
	}

	return out
}
