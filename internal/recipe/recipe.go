package recipe

import "context"

// Recipe is a single candidate meal. Recipes are read-only during a
// planning run; the corpus is loaded once and shared across runs.
type Recipe struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	ImageURL      string             `json:"image_url,omitempty"`
	Ingredients   []string           `json:"ingredients"`
	Calories      int                `json:"calories"`
	Macros        map[string]int     `json:"macros,omitempty"` // {"protein": 20, "carbs": 30, "fat": 10}
	FlavorProfile map[string]float64 `json:"flavor_profile,omitempty"`
	Cuisine       string             `json:"cuisine,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
}

// Corpus is a read-only collection of candidate recipes. ListAll must be
// idempotent and non-mutating; the planner calls it exactly once at
// construction and treats the result as immutable afterwards.
type Corpus interface {
	ListAll(ctx context.Context) ([]Recipe, error)
}

// StaticCorpus is an in-memory Corpus, used in tests and for demo data.
type StaticCorpus []Recipe

func (s StaticCorpus) ListAll(_ context.Context) ([]Recipe, error) {
	out := make([]Recipe, len(s))
	copy(out, s)
	return out, nil
}
