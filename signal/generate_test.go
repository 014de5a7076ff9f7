package signal

import (
	"math"
	"testing"
)

func TestNewGeneratorInvalidSampleRate(t *testing.T) {
	if _, err := NewGenerator(0); err == nil {
		t.Fatal("NewGenerator(0) expected error")
	}
}

func TestImpulse(t *testing.T) {
	g, err := NewGenerator(44100)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	out, err := g.Impulse(16)
	if err != nil {
		t.Fatalf("Impulse: %v", err)
	}

	if out[0] != 1 {
		t.Errorf("out[0] = %g, want 1", out[0])
	}

	for i := 1; i < len(out); i++ {
		if out[i] != 0 {
			t.Errorf("out[%d] = %g, want 0", i, out[i])
		}
	}

	if _, err := g.Impulse(0); err == nil {
		t.Error("Impulse(0) expected error")
	}
}

func TestSinePeriodicity(t *testing.T) {
	g, err := NewGenerator(1000)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	// 100 Hz at 1 kHz sample rate repeats every 10 samples.
	out, err := g.Sine(100, 0.5, 40)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}

	if out[0] != 0 {
		t.Errorf("out[0] = %g, want 0", out[0])
	}

	for i := 0; i < 30; i++ {
		if math.Abs(out[i]-out[i+10]) > 1e-12 {
			t.Errorf("out[%d] = %g, out[%d] = %g, want equal", i, out[i], i+10, out[i+10])
		}
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	a, err := NewGenerator(44100, WithSeed(7))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	b, err := NewGenerator(44100, WithSeed(7))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	na, err := a.WhiteNoise(1, 256)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	nb, err := b.WhiteNoise(1, 256)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	for i := range na {
		if na[i] != nb[i] {
			t.Fatalf("sample %d differs: %g vs %g", i, na[i], nb[i])
		}

		if math.Abs(na[i]) > 1 {
			t.Fatalf("sample %d = %g outside [-1, 1]", i, na[i])
		}
	}

	if _, err := a.WhiteNoise(-1, 10); err == nil {
		t.Error("WhiteNoise(-1, 10) expected error")
	}
}
