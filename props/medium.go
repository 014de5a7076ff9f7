package props

import (
	"sort"
	"strings"
)

// Medium describes the bulk propagation medium between surfaces.
type Medium struct {
	Name         string  `json:"name"`
	SpeedOfSound float64 `json:"speed_of_sound"`    // m/s
	Density      float64 `json:"density"`           // kg/m^3
	Impedance    float64 `json:"impedance"`         // Rayl
	Attenuation  float64 `json:"attenuation_coeff"` // dB/m/kHz
}

// MediumTable maps lower-case medium keys to their properties. Lookups for
// unknown keys fall back to the table's default medium.
type MediumTable struct {
	media      map[string]Medium
	defaultKey string
}

// NewMediumTable builds a table from the given entries. defaultKey selects
// the fallback medium for unknown lookups and must be present in media.
func NewMediumTable(media map[string]Medium, defaultKey string) MediumTable {
	return MediumTable{media: media, defaultKey: defaultKey}
}

// Get returns the medium for name (case-insensitive). Unknown names resolve
// to the default medium rather than failing.
func (t MediumTable) Get(name string) Medium {
	if m, ok := t.media[strings.ToLower(name)]; ok {
		return m
	}

	return t.media[t.defaultKey]
}

// List returns the sorted medium keys.
func (t MediumTable) List() []string {
	keys := make([]string, 0, len(t.media))
	for k := range t.media {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Media returns the standard propagation media table.
func Media() MediumTable {
	return NewMediumTable(map[string]Medium{
		"air": {
			Name:         "Air (20°C)",
			SpeedOfSound: 343.0,
			Density:      1.204,
			Impedance:    413.0,
			Attenuation:  0.0012,
		},
		"water": {
			Name:         "Water (20°C)",
			SpeedOfSound: 1482.0,
			Density:      998.0,
			Impedance:    1.48e6,
			Attenuation:  0.0003,
		},
		"glass": {
			Name:         "Glass",
			SpeedOfSound: 5640.0,
			Density:      2500.0,
			Impedance:    1.41e7,
			Attenuation:  0.0001,
		},
		"earth": {
			Name:         "Earth (soil)",
			SpeedOfSound: 1800.0,
			Density:      1600.0,
			Impedance:    2.88e6,
			Attenuation:  0.05,
		},
	}, "air")
}
