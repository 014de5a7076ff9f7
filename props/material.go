package props

import (
	"sort"
	"strings"
)

// Material describes the acoustic behavior of a surface. Absorption and
// Reflection are aligned to Bands; Diffusion is 0 for a perfectly specular
// surface and 1 for a fully diffuse one.
type Material struct {
	Name         string            `json:"name"`
	Absorption   [NumBands]float64 `json:"absorption_coeff"`
	Reflection   [NumBands]float64 `json:"reflection_coeff"`
	Diffusion    float64           `json:"diffusion_coeff"`
	Density      float64           `json:"density"`        // kg/m^3
	SpeedOfSound float64           `json:"speed_of_sound"` // m/s
	Impedance    float64           `json:"impedance"`      // Rayl
}

// MaterialTable maps lower-case material keys to their properties. Lookups
// for unknown keys fall back to the table's default material.
type MaterialTable struct {
	materials  map[string]Material
	defaultKey string
}

// NewMaterialTable builds a table from the given entries. defaultKey selects
// the fallback material for unknown lookups and must be present in materials.
func NewMaterialTable(materials map[string]Material, defaultKey string) MaterialTable {
	return MaterialTable{materials: materials, defaultKey: defaultKey}
}

// Get returns the material for name (case-insensitive). Unknown names resolve
// to the default material rather than failing.
func (t MaterialTable) Get(name string) Material {
	if m, ok := t.materials[strings.ToLower(name)]; ok {
		return m
	}

	return t.materials[t.defaultKey]
}

// List returns the sorted material keys.
func (t MaterialTable) List() []string {
	keys := make([]string, 0, len(t.materials))
	for k := range t.materials {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Materials returns the standard material table covering common woods,
// metals, building materials, and soft furnishings. Coefficients are typical
// published octave-band values.
func Materials() MaterialTable {
	return NewMaterialTable(map[string]Material{
		"oak": {
			Name:         "Oak Wood",
			Absorption:   [NumBands]float64{0.15, 0.15, 0.10, 0.10, 0.10, 0.10},
			Reflection:   [NumBands]float64{0.85, 0.85, 0.90, 0.90, 0.90, 0.90},
			Diffusion:    0.3,
			Density:      750,
			SpeedOfSound: 3850,
			Impedance:    2.89e6,
		},
		"pine": {
			Name:         "Pine Wood",
			Absorption:   [NumBands]float64{0.10, 0.10, 0.08, 0.08, 0.08, 0.08},
			Reflection:   [NumBands]float64{0.90, 0.90, 0.92, 0.92, 0.92, 0.92},
			Diffusion:    0.25,
			Density:      550,
			SpeedOfSound: 3320,
			Impedance:    1.83e6,
		},
		"maple": {
			Name:         "Maple Wood",
			Absorption:   [NumBands]float64{0.12, 0.12, 0.09, 0.09, 0.09, 0.09},
			Reflection:   [NumBands]float64{0.88, 0.88, 0.91, 0.91, 0.91, 0.91},
			Diffusion:    0.28,
			Density:      705,
			SpeedOfSound: 4110,
			Impedance:    2.90e6,
		},
		"steel": {
			Name:         "Steel",
			Absorption:   [NumBands]float64{0.05, 0.05, 0.05, 0.05, 0.05, 0.05},
			Reflection:   [NumBands]float64{0.95, 0.95, 0.95, 0.95, 0.95, 0.95},
			Diffusion:    0.1,
			Density:      7850,
			SpeedOfSound: 5960,
			Impedance:    4.68e7,
		},
		"aluminum": {
			Name:         "Aluminum",
			Absorption:   [NumBands]float64{0.05, 0.05, 0.05, 0.05, 0.05, 0.05},
			Reflection:   [NumBands]float64{0.95, 0.95, 0.95, 0.95, 0.95, 0.95},
			Diffusion:    0.08,
			Density:      2700,
			SpeedOfSound: 6420,
			Impedance:    1.73e7,
		},
		"copper": {
			Name:         "Copper",
			Absorption:   [NumBands]float64{0.04, 0.04, 0.04, 0.04, 0.04, 0.04},
			Reflection:   [NumBands]float64{0.96, 0.96, 0.96, 0.96, 0.96, 0.96},
			Diffusion:    0.12,
			Density:      8960,
			SpeedOfSound: 4760,
			Impedance:    4.26e7,
		},
		"concrete": {
			Name:         "Concrete",
			Absorption:   [NumBands]float64{0.01, 0.01, 0.02, 0.02, 0.03, 0.04},
			Reflection:   [NumBands]float64{0.99, 0.99, 0.98, 0.98, 0.97, 0.96},
			Diffusion:    0.15,
			Density:      2400,
			SpeedOfSound: 3200,
			Impedance:    7.68e6,
		},
		"brick": {
			Name:         "Brick",
			Absorption:   [NumBands]float64{0.03, 0.03, 0.03, 0.04, 0.05, 0.07},
			Reflection:   [NumBands]float64{0.97, 0.97, 0.97, 0.96, 0.95, 0.93},
			Diffusion:    0.4,
			Density:      1920,
			SpeedOfSound: 3650,
			Impedance:    7.01e6,
		},
		"plaster": {
			Name:         "Plaster",
			Absorption:   [NumBands]float64{0.02, 0.02, 0.03, 0.04, 0.05, 0.05},
			Reflection:   [NumBands]float64{0.98, 0.98, 0.97, 0.96, 0.95, 0.95},
			Diffusion:    0.2,
			Density:      1200,
			SpeedOfSound: 2000,
			Impedance:    2.40e6,
		},
		"glass": {
			Name:         "Glass",
			Absorption:   [NumBands]float64{0.18, 0.06, 0.04, 0.03, 0.02, 0.02},
			Reflection:   [NumBands]float64{0.82, 0.94, 0.96, 0.97, 0.98, 0.98},
			Diffusion:    0.05,
			Density:      2500,
			SpeedOfSound: 5640,
			Impedance:    1.41e7,
		},
		"carpet": {
			Name:         "Carpet",
			Absorption:   [NumBands]float64{0.08, 0.24, 0.57, 0.69, 0.71, 0.73},
			Reflection:   [NumBands]float64{0.92, 0.76, 0.43, 0.31, 0.29, 0.27},
			Diffusion:    0.8,
			Density:      200,
			SpeedOfSound: 100,
			Impedance:    2.00e4,
		},
		"curtain": {
			Name:         "Curtain (Heavy)",
			Absorption:   [NumBands]float64{0.14, 0.35, 0.55, 0.72, 0.70, 0.65},
			Reflection:   [NumBands]float64{0.86, 0.65, 0.45, 0.28, 0.30, 0.35},
			Diffusion:    0.9,
			Density:      300,
			SpeedOfSound: 80,
			Impedance:    2.40e4,
		},
	}, "concrete")
}
