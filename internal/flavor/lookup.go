package flavor

import "context"

// Vector maps a flavor dimension (chemical compound or functional-group
// tag) to an intensity or preference weight.
type Vector map[string]float64

// Provenance tells the caller where a lookup result came from, so it can
// branch on data quality instead of being unaware of silent fallbacks.
type Provenance string

const (
	ProvenanceLive    Provenance = "live"    // fetched from the remote service
	ProvenanceCached  Provenance = "cached"  // served from the client's TTL cache
	ProvenanceDefault Provenance = "default" // static local table or neutral default
)

// Lookup provides per-ingredient molecular flavor data. Implementations
// must keep failures scoped to the single ingredient being looked up.
type Lookup interface {
	FlavorVector(ctx context.Context, ingredient string) (Vector, Provenance, error)
	FunctionalGroups(ctx context.Context, ingredient string) ([]string, Provenance, error)
	// AromaThreshold returns the aroma detection threshold (lower means a
	// stronger, more salient aroma). 1.0 when unknown.
	AromaThreshold(ctx context.Context, ingredient string) (float64, Provenance, error)
}

// DefaultAromaThreshold is used when no data exists for an ingredient.
const DefaultAromaThreshold = 1.0
