package flavor

import (
	"context"
	"strings"
)

type staticEntry struct {
	vector    Vector
	groups    []string
	threshold float64
}

// Bundled slice of molecular flavor data, enough to run fully offline.
// Intensities are relative, not absolute concentrations.
var staticFlavorDB = map[string]staticEntry{
	"tomato": {
		vector:    Vector{"furaneol": 0.7, "hexanal": 0.5, "glutamate": 0.8},
		groups:    []string{"ketones", "aldehydes"},
		threshold: 0.6,
	},
	"garlic": {
		vector:    Vector{"allicin": 0.9, "diallyl_disulfide": 0.8},
		groups:    []string{"sulfides"},
		threshold: 0.2,
	},
	"onion": {
		vector:    Vector{"propanethial": 0.8, "diallyl_disulfide": 0.4},
		groups:    []string{"sulfides"},
		threshold: 0.3,
	},
	"basil": {
		vector:    Vector{"linalool": 0.8, "estragole": 0.6, "eugenol": 0.4},
		groups:    []string{"terpenes", "phenols"},
		threshold: 0.4,
	},
	"lemon": {
		vector:    Vector{"limonene": 0.9, "citral": 0.8},
		groups:    []string{"terpenes", "aldehydes"},
		threshold: 0.5,
	},
	"ginger": {
		vector:    Vector{"gingerol": 0.9, "zingiberene": 0.6},
		groups:    []string{"phenols", "terpenes"},
		threshold: 0.3,
	},
	"chicken": {
		vector:    Vector{"glutamate": 0.5, "inosinate": 0.6},
		groups:    []string{"amines"},
		threshold: 1.2,
	},
	"beef": {
		vector:    Vector{"glutamate": 0.7, "inosinate": 0.7, "pyrazines": 0.5},
		groups:    []string{"amines", "pyrazines"},
		threshold: 1.0,
	},
	"salmon": {
		vector:    Vector{"trimethylamine": 0.6, "omega3_aldehydes": 0.5},
		groups:    []string{"amines", "aldehydes"},
		threshold: 0.7,
	},
	"mushroom": {
		vector:    Vector{"octenol": 0.8, "glutamate": 0.9},
		groups:    []string{"alcohols"},
		threshold: 0.5,
	},
	"honey": {
		vector:    Vector{"phenylacetaldehyde": 0.7, "fructose": 0.9},
		groups:    []string{"aldehydes", "sugars"},
		threshold: 0.8,
	},
	"chocolate": {
		vector:    Vector{"theobromine": 0.8, "pyrazines": 0.7, "vanillin": 0.5},
		groups:    []string{"alkaloids", "pyrazines"},
		threshold: 0.4,
	},
	"yogurt": {
		vector:    Vector{"diacetyl": 0.6, "lactic_acid": 0.8},
		groups:    []string{"ketones", "acids"},
		threshold: 0.9,
	},
	"cheese": {
		vector:    Vector{"diacetyl": 0.7, "butyric_acid": 0.6, "glutamate": 0.8},
		groups:    []string{"ketones", "acids", "amines"},
		threshold: 0.5,
	},
	"spinach": {
		vector:    Vector{"hexanal": 0.6, "methyl_sulfides": 0.3},
		groups:    []string{"aldehydes"},
		threshold: 1.1,
	},
	"rice": {
		vector:    Vector{"acetylpyrroline": 0.5},
		groups:    []string{"pyrrolines"},
		threshold: 1.4,
	},
	"cinnamon": {
		vector:    Vector{"cinnamaldehyde": 0.9, "eugenol": 0.5},
		groups:    []string{"aldehydes", "phenols"},
		threshold: 0.3,
	},
	"vanilla": {
		vector:    Vector{"vanillin": 0.9},
		groups:    []string{"phenols", "aldehydes"},
		threshold: 0.6,
	},
}

// StaticLookup serves flavor data from the bundled table. Matching is by
// case-insensitive substring so "2 cloves garlic" resolves to "garlic".
type StaticLookup struct{}

// NewStaticLookup returns the bundled offline lookup.
func NewStaticLookup() *StaticLookup {
	return &StaticLookup{}
}

func findEntry(ingredient string) (staticEntry, bool) {
	name := strings.ToLower(ingredient)
	if entry, ok := staticFlavorDB[name]; ok {
		return entry, true
	}
	for key, entry := range staticFlavorDB {
		if strings.Contains(name, key) {
			return entry, true
		}
	}
	return staticEntry{}, false
}

func (s *StaticLookup) FlavorVector(_ context.Context, ingredient string) (Vector, Provenance, error) {
	entry, ok := findEntry(ingredient)
	if !ok {
		return Vector{}, ProvenanceDefault, nil
	}
	out := make(Vector, len(entry.vector))
	for k, v := range entry.vector {
		out[k] = v
	}
	return out, ProvenanceDefault, nil
}

func (s *StaticLookup) FunctionalGroups(_ context.Context, ingredient string) ([]string, Provenance, error) {
	entry, ok := findEntry(ingredient)
	if !ok {
		return nil, ProvenanceDefault, nil
	}
	return append([]string(nil), entry.groups...), ProvenanceDefault, nil
}

func (s *StaticLookup) AromaThreshold(_ context.Context, ingredient string) (float64, Provenance, error) {
	entry, ok := findEntry(ingredient)
	if !ok {
		return DefaultAromaThreshold, ProvenanceDefault, nil
	}
	return entry.threshold, ProvenanceDefault, nil
}
