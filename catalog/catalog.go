package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"bms-tracker/models"
)

// Catalog maps venue code to its static metadata.
type Catalog map[string]models.VenueMeta

// Load reads the venue catalog from a JSON file keyed by venue code.
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}

	var venues Catalog
	if err := json.Unmarshal(raw, &venues); err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}

	for code, meta := range venues {
		meta.Code = code
		venues[code] = meta
	}
	return venues, nil
}

// Meta returns the metadata for a venue code, falling back to "Unknown"
// city/state for codes missing from the catalog.
func (c Catalog) Meta(code string) models.VenueMeta {
	if meta, ok := c[code]; ok {
		if meta.City == "" {
			meta.City = "Unknown"
		}
		if meta.State == "" {
			meta.State = "Unknown"
		}
		return meta
	}
	return models.VenueMeta{Code: code, City: "Unknown", State: "Unknown"}
}

// Codes returns all venue codes in the catalog.
func (c Catalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	return codes
}
