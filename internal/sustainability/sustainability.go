package sustainability

import (
	"context"
	"fmt"
	"log"
	"strings"

	"nutriplan/internal/recipe"
)

// Lookup resolves an ingredient to its carbon footprint in kg CO2e per
// kg of food. Unknown ingredients resolve to 0.0 rather than an error
// so one exotic ingredient never distorts a meal's estimate upward.
type Lookup interface {
	CarbonFootprintPerKg(ctx context.Context, ingredient string) (float64, error)
}

// Footprints in kg CO2e per kg, drawn from published life-cycle
// assessment averages.
var staticFootprints = map[string]float64{
	"beef":      27.0,
	"lamb":      24.5,
	"cheese":    13.5,
	"pork":      12.1,
	"chicken":   6.9,
	"salmon":    6.0,
	"fish":      5.4,
	"eggs":      4.8,
	"rice":      4.0,
	"milk":      3.2,
	"yogurt":    2.2,
	"tofu":      2.0,
	"beans":     2.0,
	"oats":      1.7,
	"bread":     1.4,
	"pasta":     1.2,
	"potato":    0.9,
	"tomato":    1.1,
	"lentils":   0.9,
	"vegetable": 0.5,
	"fruit":     0.4,
}

// StaticLookup serves carbon footprints from the bundled table using
// case-insensitive substring matching on ingredient text.
type StaticLookup struct{}

func NewStaticLookup() *StaticLookup {
	return &StaticLookup{}
}

func (s *StaticLookup) CarbonFootprintPerKg(_ context.Context, ingredient string) (float64, error) {
	lower := strings.ToLower(ingredient)
	for key, footprint := range staticFootprints {
		if strings.Contains(lower, key) {
			return footprint, nil
		}
	}
	return 0.0, nil
}

// Estimator aggregates per-ingredient footprints into meal and plan
// level estimates. An assumed portion of 150g per ingredient keeps the
// estimate comparable across recipes without portion data.
type Estimator struct {
	lookup Lookup
}

const assumedPortionKg = 0.15

func NewEstimator(lookup Lookup) *Estimator {
	return &Estimator{lookup: lookup}
}

// MealFootprint estimates one recipe's footprint in kg CO2e. Lookup
// failures contribute 0 and are logged, never propagated.
func (e *Estimator) MealFootprint(ctx context.Context, rec recipe.Recipe) float64 {
	total := 0.0
	for _, ingredient := range rec.Ingredients {
		perKg, err := e.lookup.CarbonFootprintPerKg(ctx, ingredient)
		if err != nil {
			log.Printf("Warning: carbon lookup failed for %q: %v", ingredient, err)
			continue
		}
		total += perKg * assumedPortionKg
	}
	return total
}

// PlanFootprint sums meal footprints over an entire plan.
func (e *Estimator) PlanFootprint(ctx context.Context, meals []recipe.Recipe) float64 {
	total := 0.0
	for _, rec := range meals {
		total += e.MealFootprint(ctx, rec)
	}
	return total
}

// Rating labels a weekly plan footprint in kg CO2e.
func Rating(totalKg float64) string {
	switch {
	case totalKg < 20:
		return "Excellent"
	case totalKg < 35:
		return "Good"
	default:
		return "Fair"
	}
}

// Score maps a daily footprint onto a 0-100 scale where 100 means
// near-zero emissions and 0 means 5kg CO2e or more.
func Score(totalKg float64) (float64, string) {
	value := 100 - totalKg/5.0*100
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	label := "Poor"
	switch {
	case value >= 80:
		label = "Excellent"
	case value >= 60:
		label = "Good"
	case value >= 40:
		label = "Fair"
	}
	return value, label
}

// Describe summarizes a plan footprint for display.
func Describe(totalKg float64) string {
	return fmt.Sprintf("%.2f kg CO2e (%s)", totalKg, Rating(totalKg))
}
