package flavor

import (
	"context"
	"log"
	"math"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// Genome is a user's aggregated, normalized preference vector over flavor
// dimensions, built once per planning run from liked/disliked ingredients.
type Genome = Vector

// Weight applied to flavor intensities of disliked ingredients.
const dislikeWeight = 0.5

// neutralScore is returned when no preference or profile data exists.
const neutralScore = 0.5

// Model predicts how well a recipe fits a user's palate.
type Model struct {
	lookup Lookup
}

// NewModel creates a Model backed by the given flavor lookup.
func NewModel(lookup Lookup) *Model {
	return &Model{lookup: lookup}
}

// GenerateGenome builds the user's flavor genome. A lookup failure
// skips that ingredient entirely, leaving no partial contribution; it
// never aborts genome construction. An empty genome means "no usable
// preference data".
func (m *Model) GenerateGenome(ctx context.Context, user profile.UserProfile) Genome {
	genome := Genome{}

	for _, ingredient := range user.LikedIngredients {
		vector, _, err := m.lookup.FlavorVector(ctx, ingredient)
		if err != nil {
			log.Printf("Warning: could not fetch flavor data for %q: %v", ingredient, err)
			continue
		}
		groups, _, err := m.lookup.FunctionalGroups(ctx, ingredient)
		if err != nil {
			log.Printf("Warning: could not fetch functional groups for %q: %v", ingredient, err)
			continue
		}
		threshold, _, err := m.lookup.AromaThreshold(ctx, ingredient)
		if err != nil {
			log.Printf("Warning: could not fetch aroma threshold for %q: %v", ingredient, err)
			continue
		}
		// Lower threshold means a stronger, more salient flavor.
		weight := 1.0 / (threshold + 0.1)

		for compound, intensity := range vector {
			genome[compound] += intensity * weight
		}
		for _, group := range groups {
			genome["functional_"+group] += 1.0
		}
	}

	for _, ingredient := range user.DislikedIngredients {
		vector, _, err := m.lookup.FlavorVector(ctx, ingredient)
		if err != nil {
			log.Printf("Warning: could not fetch disliked ingredient data for %q: %v", ingredient, err)
			continue
		}
		for compound, intensity := range vector {
			genome[compound] -= intensity * dislikeWeight
		}
	}

	normalizeGenome(genome)
	return genome
}

// normalizeGenome maps accumulated values into [0,1] relative to the
// maximum absolute value, centering zero at 0.5.
func normalizeGenome(genome Genome) {
	maxAbs := 0.0
	for _, v := range genome {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return
	}
	for k, v := range genome {
		genome[k] = clamp01((v/maxAbs + 1) / 2)
	}
}

// RecipeProfile builds a recipe's aggregated flavor vector, normalized so
// the dimensions sum to 1 when non-empty.
func (m *Model) RecipeProfile(ctx context.Context, rec recipe.Recipe) Vector {
	prof := Vector{}

	for _, ingredient := range rec.Ingredients {
		vector, _, err := m.lookup.FlavorVector(ctx, ingredient)
		if err != nil {
			log.Printf("Warning: could not fetch flavor profile for ingredient %q: %v", ingredient, err)
			continue
		}

		threshold, _, err := m.lookup.AromaThreshold(ctx, ingredient)
		if err != nil {
			threshold = DefaultAromaThreshold
		}
		weight := 1.0 / (threshold + 0.1)

		for compound, intensity := range vector {
			prof[compound] += intensity * weight
		}
	}

	total := 0.0
	for _, v := range prof {
		total += v
	}
	if total > 0 {
		for k, v := range prof {
			prof[k] = v / total
		}
	}

	return prof
}

// HedonicScore predicts the pleasure/fit of a recipe for a genome, in
// [0,1]. Returns the neutral 0.5 when either the genome or the recipe's
// flavor profile is empty.
func (m *Model) HedonicScore(ctx context.Context, rec recipe.Recipe, genome Genome) float64 {
	if len(genome) == 0 {
		return neutralScore
	}

	prof := m.RecipeProfile(ctx, rec)
	if len(prof) == 0 {
		return neutralScore
	}

	similarity := cosineSimilarity(genome, prof)

	// Strong aromas carry more hedonic weight.
	bonus := 0.0
	for _, ingredient := range rec.Ingredients {
		threshold, _, err := m.lookup.AromaThreshold(ctx, ingredient)
		if err != nil {
			continue
		}
		if threshold < 1.0 {
			bonus += (1.0 - threshold) * 0.1
		}
	}
	if bonus > 0.2 {
		bonus = 0.2
	}

	return clamp01(similarity + bonus)
}

// Pairing describes the molecular compatibility of two ingredients.
type Pairing struct {
	Compatible     bool    `json:"compatible"`
	Similarity     float64 `json:"similarity_score"`
	Recommendation string  `json:"recommendation"`
}

// AnalyzePairing computes the flavor-vector similarity of two ingredients
// and labels the result.
func (m *Model) AnalyzePairing(ctx context.Context, ing1, ing2 string) Pairing {
	v1, _, err1 := m.lookup.FlavorVector(ctx, ing1)
	v2, _, err2 := m.lookup.FlavorVector(ctx, ing2)
	if err1 != nil || err2 != nil || len(v1) == 0 || len(v2) == 0 {
		return Pairing{Recommendation: "Poor"}
	}

	similarity := cosineSimilarity(v1, v2)

	rec := "Poor"
	switch {
	case similarity > 0.8:
		rec = "Excellent"
	case similarity > 0.6:
		rec = "Good"
	case similarity > 0.4:
		rec = "Fair"
	}

	return Pairing{
		Compatible:     similarity > 0.6,
		Similarity:     similarity,
		Recommendation: rec,
	}
}

// cosineSimilarity computes cosine similarity over the union of dimension
// keys, treating absent keys as 0.
func cosineSimilarity(a, b Vector) float64 {
	dot := 0.0
	for k, av := range a {
		dot += av * b[k]
	}

	normA := 0.0
	for _, v := range a {
		normA += v * v
	}
	normB := 0.0
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
