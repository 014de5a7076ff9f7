package biquad

import (
	"math"
	"testing"
)

func TestIdentityPassThrough(t *testing.T) {
	s := NewSection(Identity())

	input := []float64{1, -0.5, 0.25, 0, 0.75}
	for _, x := range input {
		if y := s.ProcessSample(x); y != x {
			t.Errorf("ProcessSample(%v) = %v", x, y)
		}
	}
}

func TestSectionImpulseResponse(t *testing.T) {
	// One-pole lowpass y[n] = 0.5*x[n] + 0.5*y[n-1]
	c := Coefficients{B0: 0.5, A1: -0.5}
	s := NewSection(c)

	expected := []float64{0.5, 0.25, 0.125, 0.0625}

	x := 1.0
	for i, want := range expected {
		y := s.ProcessSample(x)
		if math.Abs(y-want) > 1e-12 {
			t.Errorf("h[%d] = %v, expected %v", i, y, want)
		}
		x = 0
	}
}

func TestProcessBlockMatchesPerSample(t *testing.T) {
	c := Coefficients{B0: 0.3, B1: 0.2, B2: 0.1, A1: -0.4, A2: 0.05}

	input := []float64{1, 0.5, -0.25, 0.75, -1, 0.1, 0.9, -0.3}

	perSample := NewSection(c)
	expected := make([]float64, len(input))
	for i, x := range input {
		expected[i] = perSample.ProcessSample(x)
	}

	block := make([]float64, len(input))
	copy(block, input)
	NewSection(c).ProcessBlock(block)

	for i := range block {
		if math.Abs(block[i]-expected[i]) > 1e-12 {
			t.Errorf("block[%d] = %v, expected %v", i, block[i], expected[i])
		}
	}
}

func TestSectionReset(t *testing.T) {
	c := Coefficients{B0: 0.5, A1: -0.9}
	s := NewSection(c)

	first := s.ProcessSample(1)
	s.ProcessSample(1)
	s.Reset()

	if got := s.ProcessSample(1); got != first {
		t.Errorf("after Reset got %v, expected %v", got, first)
	}
}

func TestChainCascade(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 0.5, A1: -0.5},
		{B0: 0.5, A1: -0.5},
	}
	chain := NewChain(coeffs)

	if chain.NumSections() != 2 {
		t.Fatalf("NumSections = %d", chain.NumSections())
	}

	if chain.Order() != 4 {
		t.Errorf("Order = %d", chain.Order())
	}

	// Cascading two identical one-pole sections by hand.
	a := NewSection(coeffs[0])
	b := NewSection(coeffs[1])

	input := []float64{1, 0, 0, 0, 0}
	for i, x := range input {
		want := b.ProcessSample(a.ProcessSample(x))
		if got := chain.ProcessSample(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("sample %d: chain = %v, manual = %v", i, got, want)
		}
	}
}

func TestChainEmptyIsPassThrough(t *testing.T) {
	chain := NewChain(nil)

	buf := []float64{1, 2, 3}
	chain.ProcessBlock(buf)

	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 {
		t.Errorf("empty chain modified buffer: %v", buf)
	}
}
