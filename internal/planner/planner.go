package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"nutriplan/internal/flavor"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/sustainability"
	"nutriplan/internal/variety"
)

// ErrNoRecipesAvailable is returned when the corpus holds no recipes at
// all; no meal can ever be produced, so the whole run aborts.
var ErrNoRecipesAvailable = errors.New("no recipes available")

// Slot calorie constraints.
const (
	snackTargetCalories = 250
	snackMaxCalories    = 400
	mealMinCalories     = 300
)

// DefaultRepeatLookback is how many recent selections the hard
// repetition filter inspects. Some deployments run with 3.
const DefaultRepeatLookback = 9

// Config controls slot layout and scoring weights. The three weights
// must sum to 1.0; this is validated at construction, not per request.
type Config struct {
	SlotVariant    string // "standard" (3 slots) or "extended" (5 slots)
	HealthWeight   float64
	TasteWeight    float64
	VarietyWeight  float64
	NoRepeatWindow int
	RepeatLookback int
}

// DefaultConfig returns the reference deployment configuration.
func DefaultConfig() Config {
	return Config{
		SlotVariant:    "standard",
		HealthWeight:   0.4,
		TasteWeight:    0.4,
		VarietyWeight:  0.2,
		NoRepeatWindow: variety.DefaultNoRepeatWindow,
		RepeatLookback: DefaultRepeatLookback,
	}
}

// Validate checks the configuration invariants that must hold before
// any plan is generated.
func (c Config) Validate() error {
	if c.SlotVariant != "standard" && c.SlotVariant != "extended" {
		return fmt.Errorf("unknown slot variant %q", c.SlotVariant)
	}
	sum := c.HealthWeight + c.TasteWeight + c.VarietyWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights sum to %v, must sum to 1.0", sum)
	}
	return nil
}

func (c Config) slots() []string {
	if c.SlotVariant == "extended" {
		return extendedSlots
	}
	return standardSlots
}

// Planner is the plan generation orchestrator. The corpus is loaded
// once at construction and treated as immutable, so one Planner may be
// shared across concurrent runs; each run owns its own variety state.
type Planner struct {
	recipes   []recipe.Recipe
	flavors   *flavor.Model
	estimator *sustainability.Estimator
	cfg       Config

	// rng only seeds per-run generators and is the planner's sole
	// mutable state, so it is guarded for concurrent CreatePlan calls.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewPlanner loads the corpus and validates configuration. The injected
// rng seeds a fresh per-run generator that drives candidate tie-breaking
// and fallback selection; fix its seed to make runs reproducible in
// tests.
func NewPlanner(ctx context.Context, corpus recipe.Corpus, flavors *flavor.Model, estimator *sustainability.Estimator, cfg Config, rng *rand.Rand) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planner config: %w", err)
	}
	if err := nutrition.ValidateRatios(); err != nil {
		return nil, fmt.Errorf("invalid macro ratio table: %w", err)
	}

	recipes, err := corpus.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe corpus: %w", err)
	}

	return &Planner{
		recipes:   recipes,
		flavors:   flavors,
		estimator: estimator,
		cfg:       cfg,
		rng:       rng,
	}, nil
}

// CreatePlan generates a multi-day meal plan for the user.
func (p *Planner) CreatePlan(ctx context.Context, user profile.UserProfile, days int) (*PlanResponse, error) {
	if len(p.recipes) == 0 {
		return nil, ErrNoRecipesAvailable
	}
	if days < 1 {
		return nil, fmt.Errorf("days must be >= 1, got %d", days)
	}

	targets := nutrition.CalculateTargets(user)
	genome := p.flavors.GenerateGenome(ctx, user)

	// Each run gets its own generator; *rand.Rand is not safe for
	// concurrent use, so only the seed draw is serialized.
	p.rngMu.Lock()
	rng := rand.New(rand.NewSource(p.rng.Int63()))
	p.rngMu.Unlock()

	// Availability beats strict preference compliance: if excluding
	// disliked ingredients leaves nothing, plan from the full corpus.
	candidates := filterDisliked(p.recipes, user.DislikedIngredients)
	if len(candidates) == 0 {
		candidates = p.recipes
	}

	slots := p.cfg.slots()
	mealSlots := 0
	for _, slot := range slots {
		if !isSnackSlot(slot) {
			mealSlots++
		}
	}

	tracker := variety.NewTracker(p.cfg.NoRepeatWindow)
	var history []recipe.Recipe

	plan := &PlanResponse{
		ID:          uuid.NewString(),
		UserName:    user.Name,
		GeneratedAt: time.Now().UTC(),
	}

	for day := 1; day <= days; day++ {
		meals := make(map[string]recipe.Recipe, len(slots))
		var dayRecipes []recipe.Recipe

		for _, slot := range slots {
			selected := p.selectForSlot(ctx, rng, slot, candidates, history, tracker, genome, targets.Calories, mealSlots)
			meals[slot] = selected
			dayRecipes = append(dayRecipes, selected)

			history = append(history, selected)
			if len(history) > p.cfg.RepeatLookback {
				history = history[len(history)-p.cfg.RepeatLookback:]
			}
		}

		daily := DailyPlan{
			Day:   day,
			Meals: meals,
			Stats: DayStats{
				Calories:          sumCalories(dayRecipes),
				TargetCalories:    targets.Calories,
				CarbonFootprintKg: p.estimator.PlanFootprint(ctx, dayRecipes),
			},
			Scores: DayScores{
				HealthMatch: healthMatch(sumCalories(dayRecipes), targets.Calories),
				TasteMatch:  p.meanHedonic(ctx, dayRecipes, genome),
				Variety:     variety.PlanVarietyScore(dayRecipes),
			},
		}
		plan.Days = append(plan.Days, daily)

		tracker.UpdateHistory(dayRecipes, dayCuisine(dayRecipes))
	}

	plan.ShoppingList = buildShoppingList(plan.Days)
	plan.PrepTimeline = buildPrepTimeline(plan.Days, slots)
	plan.OverallStats = p.overallStats(plan.Days)

	return plan, nil
}

// selectForSlot runs constrained multi-objective selection for one slot.
func (p *Planner) selectForSlot(ctx context.Context, rng *rand.Rand, slot string, candidates, history []recipe.Recipe, tracker *variety.Tracker, genome flavor.Genome, dailyCalories, mealSlots int) recipe.Recipe {
	snack := isSnackSlot(slot)
	slotTarget := float64(snackTargetCalories)
	if !snack {
		slotTarget = float64(dailyCalories) / float64(mealSlots)
	}

	recent := history
	if len(recent) > p.cfg.RepeatLookback {
		recent = recent[len(recent)-p.cfg.RepeatLookback:]
	}

	var eligible []recipe.Recipe
	for _, cand := range candidates {
		if snack && cand.Calories > snackMaxCalories {
			continue
		}
		// The 5-slot layout spreads calories thinner, so undersized
		// main meals are only rejected there.
		if !snack && p.cfg.SlotVariant == "extended" && cand.Calories < mealMinCalories {
			continue
		}
		if tracker.CheckRepetition(cand, recent) {
			continue
		}
		eligible = append(eligible, cand)
	}

	// Guarantee a non-null meal: fall back to a uniform random pick
	// from the full candidate set when filtering leaves nothing.
	if len(eligible) == 0 {
		return candidates[rng.Intn(len(candidates))]
	}

	// Randomized traversal order breaks ties among equal scorers.
	order := rng.Perm(len(eligible))

	best := eligible[order[0]]
	bestScore := -1.0
	for _, idx := range order {
		cand := eligible[idx]
		health := math.Max(0, 1-math.Abs(float64(cand.Calories)-slotTarget)/slotTarget)
		taste := p.flavors.HedonicScore(ctx, cand, genome)
		varietyScore := tracker.ScoreVariety(cand, recent)

		total := p.cfg.HealthWeight*health + p.cfg.TasteWeight*taste + p.cfg.VarietyWeight*varietyScore
		if total > bestScore {
			bestScore = total
			best = cand
		}
	}
	return best
}

func (p *Planner) meanHedonic(ctx context.Context, dayRecipes []recipe.Recipe, genome flavor.Genome) float64 {
	if len(dayRecipes) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, rec := range dayRecipes {
		sum += p.flavors.HedonicScore(ctx, rec, genome)
	}
	return sum / float64(len(dayRecipes))
}

func (p *Planner) overallStats(days []DailyPlan) OverallStats {
	if len(days) == 0 {
		return OverallStats{SustainabilityRating: sustainability.Rating(0)}
	}

	var health, taste, varietySum, carbon float64
	for _, d := range days {
		health += d.Scores.HealthMatch
		taste += d.Scores.TasteMatch
		varietySum += d.Scores.Variety
		carbon += d.Stats.CarbonFootprintKg
	}
	n := float64(len(days))

	return OverallStats{
		AvgHealthMatch:       round2(health / n),
		AvgTasteMatch:        round2(taste / n),
		AvgVariety:           round2(varietySum / n),
		TotalCarbonKg:        round2(carbon),
		SustainabilityRating: sustainability.Rating(carbon),
	}
}

// healthMatch is the ratio of actual to target calories, clipped to 1.0
// in either direction of deviation.
func healthMatch(actual, target int) float64 {
	if target <= 0 || actual <= 0 {
		return 0.5
	}
	a, t := float64(actual), float64(target)
	return math.Min(1.0, math.Min(a/t, t/a))
}

func filterDisliked(recipes []recipe.Recipe, disliked []string) []recipe.Recipe {
	if len(disliked) == 0 {
		return recipes
	}

	var out []recipe.Recipe
	for _, rec := range recipes {
		if !containsDisliked(rec, disliked) {
			out = append(out, rec)
		}
	}
	return out
}

func containsDisliked(rec recipe.Recipe, disliked []string) bool {
	for _, ing := range rec.Ingredients {
		lower := strings.ToLower(ing)
		for _, d := range disliked {
			if d == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(d)) {
				return true
			}
		}
	}
	return false
}

func isSnackSlot(slot string) bool {
	return strings.Contains(slot, "Snack")
}

func sumCalories(recipes []recipe.Recipe) int {
	total := 0
	for _, rec := range recipes {
		total += rec.Calories
	}
	return total
}

// dayCuisine picks the day's representative cuisine: the first meal
// with a non-empty tag.
func dayCuisine(dayRecipes []recipe.Recipe) string {
	for _, rec := range dayRecipes {
		if rec.Cuisine != "" {
			return rec.Cuisine
		}
	}
	return "unknown"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
