package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/kassaklap/backend/internal/domain"
)

// Loader reads the static supermarket catalog from a JSON dataset
// file. A catalog that fails validation is rejected whole, so the
// process fails at startup instead of serving partial data.
type Loader struct {
	path string
}

// NewLoader creates a loader for the dataset at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the catalog file.
func (l *Loader) Load() ([]domain.CatalogEntry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", l.path, err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", l.path, err)
	}
	return entries, nil
}

// Parse decodes and validates a catalog dataset. Establishment codes
// are lowercased here once, so every later lookup is case-exact.
func Parse(data []byte) ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCatalog, err)
	}

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		code := strings.ToLower(strings.TrimSpace(entries[i].Code))
		if code == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty establishment code", domain.ErrMalformedCatalog, i)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateEstablishment, code)
		}
		seen[code] = struct{}{}
		entries[i].Code = code

		for j, p := range entries[i].Products {
			if strings.TrimSpace(p.Name) == "" {
				return nil, fmt.Errorf("%w: entry %q product %d has an empty name", domain.ErrMalformedCatalog, code, j)
			}
			if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
				return nil, fmt.Errorf("%w: entry %q product %q has invalid price %v", domain.ErrMalformedCatalog, code, p.Name, p.Price)
			}
		}
	}

	return entries, nil
}
