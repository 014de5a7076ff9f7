// Package props holds the static acoustic property tables: frequency bands,
// surface materials, and propagation media. Tables are plain values meant to
// be injected into the tracer and synthesizer, so tests can substitute their
// own entries without touching process-wide state.
package props

// NumBands is the number of canonical octave bands.
const NumBands = 6

// Bands lists the canonical octave band center frequencies in Hz. All
// per-band coefficient vectors in this library align to this order.
var Bands = [NumBands]float64{125, 250, 500, 1000, 2000, 4000}
