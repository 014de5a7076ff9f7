package room

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-room/dsp/conv"
	"github.com/cwbudde/algo-room/fxchain"
	"github.com/cwbudde/algo-room/geom"
	"github.com/cwbudde/algo-room/internal/vecmath"
	"github.com/cwbudde/algo-room/props"
	"github.com/cwbudde/algo-room/trace"
)

// Errors returned by Render.
var (
	ErrNoSources     = errors.New("room: no sources registered")
	ErrNoMicrophones = errors.New("room: no microphones registered")
)

const (
	defaultSampleRate = 44100.0

	// defaultIRDuration is the impulse response length synthesized per
	// source/microphone pair.
	defaultIRDuration = 2.0

	// tailSeconds pads every output buffer for the reverb tail.
	tailSeconds = 2.0

	// normalizePeak is the target peak of non-silent output buffers.
	normalizePeak = 0.9
)

// Engine renders registered sources to registered microphones through the
// room's acoustic response.
type Engine struct {
	tracer *trace.Tracer
	synth  *Synthesizer

	sampleRate float64
	irDuration float64
	variant    Variant

	sources []Source
	mics    []Microphone
	chain   *fxchain.Chain
}

// engineConfig collects options before the tracer and synthesizer are built.
type engineConfig struct {
	medium     props.Medium
	materials  props.MaterialTable
	sampleRate float64
	irDuration float64
	variant    Variant
	traceOpts  []trace.Option
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithMedium sets the propagation medium. Default is air.
func WithMedium(m props.Medium) Option {
	return func(cfg *engineConfig) { cfg.medium = m }
}

// WithMaterials sets the material table consulted for reflections.
// Default is the built-in table.
func WithMaterials(t props.MaterialTable) Option {
	return func(cfg *engineConfig) { cfg.materials = t }
}

// WithSampleRate sets the session sample rate. Default 44100.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *engineConfig) {
		if sampleRate > 0 {
			cfg.sampleRate = sampleRate
		}
	}
}

// WithIRDuration sets the impulse response duration in seconds synthesized
// per pair. Default 2.
func WithIRDuration(seconds float64) Option {
	return func(cfg *engineConfig) {
		if seconds > 0 {
			cfg.irDuration = seconds
		}
	}
}

// WithVariant selects the synthesis variant. Default Filterbank.
func WithVariant(v Variant) Option {
	return func(cfg *engineConfig) { cfg.variant = v }
}

// WithTracerOptions forwards options to the underlying path tracer.
func WithTracerOptions(opts ...trace.Option) Option {
	return func(cfg *engineConfig) { cfg.traceOpts = append(cfg.traceOpts, opts...) }
}

// New creates an engine over the given room geometry.
func New(geometry []geom.Triangle, opts ...Option) *Engine {
	cfg := engineConfig{
		medium:     props.Media().Get("air"),
		materials:  props.Materials(),
		sampleRate: defaultSampleRate,
		irDuration: defaultIRDuration,
		variant:    Filterbank,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Engine{
		tracer:     trace.New(geometry, cfg.medium, cfg.materials, cfg.traceOpts...),
		synth:      NewSynthesizer(cfg.sampleRate, cfg.medium, cfg.materials),
		sampleRate: cfg.sampleRate,
		irDuration: cfg.irDuration,
		variant:    cfg.variant,
	}
}

// SampleRate returns the session sample rate.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// AddSource registers an audio source.
func (e *Engine) AddSource(s Source) {
	e.sources = append(e.sources, s)
}

// AddMicrophone registers a microphone. Names key the Render output and
// should be unique.
func (e *Engine) AddMicrophone(m Microphone) {
	e.mics = append(e.mics, m)
}

// SetChain sets the post-processing chain applied to every synthesized
// impulse response before convolution. A nil chain disables post-processing.
// The chain is stateless between invocations, so one instance is safely
// shared across concurrently rendered pairs.
func (e *Engine) SetChain(c *fxchain.Chain) {
	e.chain = c
}

// Render mixes every source into every microphone and returns one buffer
// per microphone, keyed by name. Each buffer is normalized to a 0.9 peak;
// silent buffers are left untouched. Microphones render concurrently, as
// no pair shares state.
func (e *Engine) Render() (map[string][]float64, error) {
	if len(e.sources) == 0 {
		return nil, ErrNoSources
	}

	if len(e.mics) == 0 {
		return nil, ErrNoMicrophones
	}

	longest := 0
	for _, src := range e.sources {
		if len(src.Samples) > longest {
			longest = len(src.Samples)
		}
	}

	outLen := longest + int(tailSeconds*e.sampleRate)

	buffers := make([][]float64, len(e.mics))
	errs := make([]error, len(e.mics))

	var wg sync.WaitGroup
	for i := range e.mics {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			buffers[i], errs[i] = e.renderMicrophone(e.mics[i], outLen)
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	out := make(map[string][]float64, len(e.mics))
	for i, mic := range e.mics {
		out[mic.Name] = buffers[i]
	}

	return out, nil
}

// renderMicrophone mixes every source into one output buffer and
// normalizes it.
func (e *Engine) renderMicrophone(mic Microphone, outLen int) ([]float64, error) {
	out := make([]float64, outLen)

	for _, src := range e.sources {
		if len(src.Samples) == 0 {
			continue
		}

		ir, err := e.pairResponse(src, mic)
		if err != nil {
			return nil, fmt.Errorf("room: render %q through %q: %w", src.Name, mic.Name, err)
		}

		convolved, err := conv.Convolve(src.Samples, ir)
		if err != nil {
			return nil, fmt.Errorf("room: render %q through %q: %w", src.Name, mic.Name, err)
		}

		vecmath.AddBlockInPlace(out, convolved)
	}

	normalize(out)

	return out, nil
}

// pairResponse traces, applies microphone directivity, synthesizes, and
// post-processes one pair's impulse response.
func (e *Engine) pairResponse(src Source, mic Microphone) ([]float64, error) {
	paths := e.tracer.Trace(src.Position, mic.Position)

	for i := range paths {
		gain := mic.Gain(paths[i].Arrival)
		if gain == 1 {
			continue
		}

		for b := range paths[i].Attenuation {
			paths[i].Attenuation[b] *= gain
		}
	}

	ir, err := e.synth.Synthesize(paths, e.irDuration, e.variant)
	if err != nil {
		return nil, err
	}

	if e.chain != nil {
		ir = e.chain.Process(ir)
	}

	return ir, nil
}

// RoomResponse traces and synthesizes the raw impulse response between two
// positions, returning it with the path list for analysis. No directivity,
// post-processing, or mixing is applied.
func (e *Engine) RoomResponse(sourcePos, micPos geom.Vec3, duration float64) ([]float64, []trace.Path, error) {
	paths := e.tracer.Trace(sourcePos, micPos)

	ir, err := e.synth.Synthesize(paths, duration, e.variant)
	if err != nil {
		return nil, nil, err
	}

	return ir, paths, nil
}

// normalize scales buf so its peak absolute sample equals normalizePeak.
// An all-zero buffer is left untouched.
func normalize(buf []float64) {
	peak := vecmath.MaxAbs(buf)
	if peak == 0 {
		return
	}

	vecmath.ScaleBlockInPlace(buf, normalizePeak/peak)
}
