package props

import (
	"encoding/json"
	"fmt"
	"io"
)

// ExportJSON writes the material table to w as indented JSON, keyed by the
// table's lookup names. The layout matches the per-band coefficient order of
// Bands so exported tables round-trip through ImportJSON.
func (t MaterialTable) ExportJSON(w io.Writer) error {
	out := make(map[string]Material, len(t.materials))
	for k, m := range t.materials {
		out[k] = m
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("props: export materials: %w", err)
	}

	return nil
}

// ImportJSON reads a material table from r. defaultKey selects the fallback
// material and must be present in the decoded table.
func ImportJSON(r io.Reader, defaultKey string) (MaterialTable, error) {
	var materials map[string]Material
	if err := json.NewDecoder(r).Decode(&materials); err != nil {
		return MaterialTable{}, fmt.Errorf("props: import materials: %w", err)
	}

	if _, ok := materials[defaultKey]; !ok {
		return MaterialTable{}, fmt.Errorf("props: default material %q not in table", defaultKey)
	}

	return NewMaterialTable(materials, defaultKey), nil
}
