package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"nutriplan/internal/config"
	"nutriplan/internal/flavor"
	"nutriplan/internal/intake"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/planstore"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/sustainability"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	mealPlanner  *planner.Planner
	flavors      *flavor.Model
	parser       *intake.Parser // nil when no LLM key is configured
	importer     *recipe.Importer
	planStore    *planstore.Store
	metricsStore *metrics.Store
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	mealPlanner *planner.Planner,
	flavors *flavor.Model,
	parser *intake.Parser,
	importer *recipe.Importer,
	planStore *planstore.Store,
	metricsStore *metrics.Store,
) *App {
	return &App{
		cfg:          cfg,
		mealPlanner:  mealPlanner,
		flavors:      flavors,
		parser:       parser,
		importer:     importer,
		planStore:    planStore,
		metricsStore: metricsStore,
	}
}

// defaultProfile builds the planning profile from configuration.
func (a *App) defaultProfile() profile.UserProfile {
	return profile.UserProfile{
		Name:          a.cfg.UserName,
		Age:           a.cfg.UserAge,
		WeightKg:      a.cfg.UserWeightKg,
		HeightCm:      a.cfg.UserHeightCm,
		Gender:        profile.Gender(a.cfg.UserGender),
		ActivityLevel: a.cfg.UserActivityLevel,
		Goal:          profile.Goal(a.cfg.UserGoal),
	}
}

// GeneratePlan creates a meal plan for the user, persists it, and
// prints it. A free-text request is parsed for ingredient preferences
// and duration when an intake parser is available.
func (a *App) GeneratePlan(ctx context.Context, userID, request string, days int) error {
	user := a.defaultProfile()

	if request != "" && a.parser != nil {
		fmt.Printf("Parsing request: %q...\n", request)
		prefs, err := a.parser.Parse(ctx, request)
		if err != nil {
			log.Printf("Warning: could not parse request, planning with defaults: %v", err)
		} else {
			user.LikedIngredients = append(user.LikedIngredients, prefs.Liked...)
			user.DislikedIngredients = append(user.DislikedIngredients, prefs.Disliked...)
			if prefs.Days > 0 {
				days = prefs.Days
			}
		}
	}
	if days < 1 {
		days = 7
	}

	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user profile: %w", err)
	}

	start := time.Now()
	plan, err := a.mealPlanner.CreatePlan(ctx, user, days)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}
	duration := time.Since(start)

	ttl := time.Duration(a.cfg.PlanTTLDays) * 24 * time.Hour
	if err := a.planStore.Put(ctx, userID, plan, ttl); err != nil {
		log.Printf("Warning: failed to save meal plan: %v", err)
	}
	if err := a.metricsStore.RecordPlan(ctx, userID, plan, duration); err != nil {
		log.Printf("Warning: failed to record plan run: %v", err)
	}

	printPlan(plan)
	return nil
}

// ShowPlan prints the user's current stored plan.
func (a *App) ShowPlan(ctx context.Context, userID string) error {
	plan, err := a.planStore.Get(ctx, userID)
	if errors.Is(err, planstore.ErrNotFound) {
		fmt.Println("No current meal plan. Generate one with the 'plan' command.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}

	printPlan(plan)
	return nil
}

// ImportRecipe fetches a recipe page and adds it to the corpus.
func (a *App) ImportRecipe(ctx context.Context, url string) error {
	if a.importer == nil {
		return fmt.Errorf("recipe import requires GEMINI_API_KEY to be configured")
	}

	fmt.Printf("Importing recipe from %s...\n", url)
	rec, err := a.importer.ImportURL(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to import recipe: %w", err)
	}

	fmt.Printf("Imported %q (%d kcal, %d ingredients).\n", rec.Name, rec.Calories, len(rec.Ingredients))
	return nil
}

// AnalyzePairing prints the molecular compatibility of two ingredients.
func (a *App) AnalyzePairing(ctx context.Context, ing1, ing2 string) error {
	p := a.flavors.AnalyzePairing(ctx, ing1, ing2)
	fmt.Printf("%s + %s: %s (similarity %.2f)\n", ing1, ing2, p.Recommendation, p.Similarity)
	if p.Compatible {
		fmt.Println("These ingredients share flavor compounds and should pair well.")
	}
	return nil
}

// Cleanup removes expired plans and old run records.
func (a *App) Cleanup(ctx context.Context) error {
	if err := a.planStore.CleanupExpired(ctx); err != nil {
		return err
	}
	if err := a.metricsStore.Cleanup(ctx, 30); err != nil {
		return err
	}
	fmt.Println("Cleanup complete.")
	return nil
}

// ShowMetrics prints plan-run stats for the last N days.
func (a *App) ShowMetrics(ctx context.Context, days int) error {
	daily, err := a.metricsStore.GetDailyRuns(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to load run metrics: %w", err)
	}
	if len(daily) == 0 {
		fmt.Println("No plan runs recorded.")
		return nil
	}

	fmt.Println("Date        Runs  Days  Avg ms")
	for _, d := range daily {
		fmt.Printf("%-11s %-5d %-5d %d\n", d.Date, d.Runs, d.DaysGenerated, d.AvgDurationMS)
	}
	return nil
}

func printPlan(plan *planner.PlanResponse) {
	fmt.Printf("\n=== MEAL PLAN (%d days) ===\n", len(plan.Days))
	for _, day := range plan.Days {
		fmt.Printf("\nDay %d  (%d / %d kcal, health %.2f, taste %.2f, variety %.2f)\n",
			day.Day, day.Stats.Calories, day.Stats.TargetCalories,
			day.Scores.HealthMatch, day.Scores.TasteMatch, day.Scores.Variety)
		for _, task := range plan.PrepTimeline[day.Day] {
			rec := day.Meals[task.Slot]
			fmt.Printf("  %-8s %-16s %s (%d kcal)\n", task.Time, task.Slot, rec.Name, rec.Calories)
		}
	}

	fmt.Println("\n=== SHOPPING LIST ===")
	var categories []string
	for cat, items := range plan.ShoppingList {
		if len(items) > 0 {
			categories = append(categories, cat)
		}
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Printf("%s:\n", cat)
		items := plan.ShoppingList[cat]
		var names []string
		for name := range items {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  - %s (%s)\n", name, items[name].Quantity)
		}
	}

	stats := plan.OverallStats
	fmt.Printf("\nOverall: health %.2f, taste %.2f, variety %.2f\n",
		stats.AvgHealthMatch, stats.AvgTasteMatch, stats.AvgVariety)
	fmt.Printf("Carbon footprint: %s\n", sustainability.Describe(stats.TotalCarbonKg))
}
