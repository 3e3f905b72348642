package planner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"testing"

	"nutriplan/internal/flavor"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/sustainability"
)

func testUser() profile.UserProfile {
	return profile.UserProfile{
		Name:          "Test User",
		Age:           30,
		WeightKg:      70,
		HeightCm:      175,
		Gender:        profile.GenderMale,
		ActivityLevel: 1.5,
		Goal:          profile.GoalMaintenance,
	}
}

func fixtureCorpus() recipe.StaticCorpus {
	var recipes recipe.StaticCorpus
	cuisines := []string{"italian", "japanese", "mexican", "indian", "greek"}
	bases := [][]string{
		{"chicken", "rice", "spinach"},
		{"tofu", "noodles", "ginger"},
		{"beans", "corn", "avocado"},
		{"lentils", "potato", "cumin"},
		{"feta cheese", "tomato", "olive oil"},
	}
	for i := 0; i < 20; i++ {
		recipes = append(recipes, recipe.Recipe{
			ID:          fmt.Sprintf("r%d", i),
			Name:        fmt.Sprintf("Recipe %d", i),
			Ingredients: append([]string{fmt.Sprintf("special-%d", i)}, bases[i%5]...),
			Calories:    500 + (i%5)*50,
			Cuisine:     cuisines[i%5],
		})
	}
	return recipes
}

func newTestPlanner(t *testing.T, corpus recipe.Corpus, cfg Config, seed int64) *Planner {
	t.Helper()
	p, err := NewPlanner(
		context.Background(),
		corpus,
		flavor.NewModel(flavor.NewStaticLookup()),
		sustainability.NewEstimator(sustainability.NewStaticLookup()),
		cfg,
		rand.New(rand.NewSource(seed)),
	)
	if err != nil {
		t.Fatalf("NewPlanner failed: %v", err)
	}
	return p
}

func TestCreatePlanShape(t *testing.T) {
	for _, variant := range []string{"standard", "extended"} {
		t.Run(variant, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SlotVariant = variant
			p := newTestPlanner(t, fixtureCorpus(), cfg, 1)

			plan, err := p.CreatePlan(context.Background(), testUser(), 5)
			if err != nil {
				t.Fatalf("CreatePlan failed: %v", err)
			}

			if len(plan.Days) != 5 {
				t.Fatalf("plan has %d days, want 5", len(plan.Days))
			}
			wantSlots := 3
			if variant == "extended" {
				wantSlots = 5
			}
			for _, day := range plan.Days {
				if len(day.Meals) != wantSlots {
					t.Errorf("day %d has %d meals, want %d", day.Day, len(day.Meals), wantSlots)
				}
				for _, s := range []float64{day.Scores.HealthMatch, day.Scores.TasteMatch, day.Scores.Variety} {
					if s < 0 || s > 1 {
						t.Errorf("day %d score %v outside [0,1]", day.Day, s)
					}
				}
				if day.Stats.TargetCalories < 1200 {
					t.Errorf("day %d target = %d, below floor", day.Day, day.Stats.TargetCalories)
				}
			}
			if plan.ID == "" {
				t.Error("plan has no id")
			}
			if len(plan.PrepTimeline) != 5 {
				t.Errorf("timeline covers %d days, want 5", len(plan.PrepTimeline))
			}
			for day, tasks := range plan.PrepTimeline {
				if len(tasks) != wantSlots {
					t.Errorf("day %d timeline has %d tasks, want %d", day, len(tasks), wantSlots)
				}
			}
		})
	}
}

func TestCreatePlanExcludesDisliked(t *testing.T) {
	corpus := fixtureCorpus()
	// Add salmon recipes that must never be selected.
	for i := 0; i < 5; i++ {
		corpus = append(corpus, recipe.Recipe{
			ID:          fmt.Sprintf("salmon-%d", i),
			Name:        fmt.Sprintf("Salmon Dish %d", i),
			Ingredients: []string{"Smoked Salmon", "dill", "lemon"},
			Calories:    550,
			Cuisine:     "nordic",
		})
	}

	user := testUser()
	user.DislikedIngredients = []string{"salmon"}

	p := newTestPlanner(t, corpus, DefaultConfig(), 2)
	plan, err := p.CreatePlan(context.Background(), user, 5)
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	for _, day := range plan.Days {
		for slot, rec := range day.Meals {
			for _, ing := range rec.Ingredients {
				if strings.Contains(strings.ToLower(ing), "salmon") {
					t.Errorf("day %d %s selected %q containing salmon", day.Day, slot, rec.Name)
				}
			}
		}
	}
}

func TestCreatePlanFallsBackWhenFilterEmpties(t *testing.T) {
	corpus := recipe.StaticCorpus{
		{ID: "s1", Name: "Grilled Salmon", Ingredients: []string{"salmon", "lemon"}, Calories: 500},
		{ID: "s2", Name: "Salmon Bowl", Ingredients: []string{"salmon", "rice"}, Calories: 550},
	}

	user := testUser()
	user.DislikedIngredients = []string{"salmon"}

	p := newTestPlanner(t, corpus, DefaultConfig(), 3)
	plan, err := p.CreatePlan(context.Background(), user, 2)
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	// Availability wins: every slot is still filled from the corpus.
	for _, day := range plan.Days {
		if len(day.Meals) != 3 {
			t.Errorf("day %d has %d meals, want 3", day.Day, len(day.Meals))
		}
	}
}

func TestCreatePlanEmptyCorpus(t *testing.T) {
	p := newTestPlanner(t, recipe.StaticCorpus{}, DefaultConfig(), 4)

	_, err := p.CreatePlan(context.Background(), testUser(), 3)
	if !errors.Is(err, ErrNoRecipesAvailable) {
		t.Fatalf("err = %v, want ErrNoRecipesAvailable", err)
	}
}

func TestNewPlannerRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HealthWeight = 0.5 // 0.5 + 0.4 + 0.2 != 1.0

	_, err := NewPlanner(
		context.Background(),
		fixtureCorpus(),
		flavor.NewModel(flavor.NewStaticLookup()),
		sustainability.NewEstimator(sustainability.NewStaticLookup()),
		cfg,
		rand.New(rand.NewSource(1)),
	)
	if err == nil {
		t.Fatal("NewPlanner accepted weights not summing to 1.0")
	}
}

func TestCreatePlanDeterministicWithFixedSeed(t *testing.T) {
	ctx := context.Background()
	user := testUser()

	mealNames := func(seed int64) []string {
		p := newTestPlanner(t, fixtureCorpus(), DefaultConfig(), seed)
		plan, err := p.CreatePlan(ctx, user, 3)
		if err != nil {
			t.Fatalf("CreatePlan failed: %v", err)
		}
		var names []string
		for _, day := range plan.Days {
			for _, slot := range standardSlots {
				names = append(names, day.Meals[slot].Name)
			}
		}
		return names
	}

	first := mealNames(42)
	second := mealNames(42)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different plans:\n%v\n%v", first, second)
	}
}

func TestCreatePlanConcurrent(t *testing.T) {
	p := newTestPlanner(t, fixtureCorpus(), DefaultConfig(), 5)
	user := testUser()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				plan, err := p.CreatePlan(context.Background(), user, 3)
				if err != nil {
					errs <- err
					continue
				}
				if len(plan.Days) != 3 {
					errs <- fmt.Errorf("plan has %d days, want 3", len(plan.Days))
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent CreatePlan: %v", err)
	}
}

func TestDayCuisine(t *testing.T) {
	recipes := []recipe.Recipe{
		{Name: "Toast"},
		{Name: "Ramen", Cuisine: "japanese"},
		{Name: "Tacos", Cuisine: "mexican"},
	}
	if got := dayCuisine(recipes); got != "japanese" {
		t.Errorf("dayCuisine = %q, want the first tagged meal's cuisine", got)
	}
	if got := dayCuisine([]recipe.Recipe{{Name: "Toast"}}); got != "unknown" {
		t.Errorf("dayCuisine with no tags = %q, want unknown", got)
	}
}

func TestShoppingListCategoriesAndQuantities(t *testing.T) {
	days := []DailyPlan{
		{
			Day: 1,
			Meals: map[string]recipe.Recipe{
				"Breakfast": {Ingredients: []string{"greek yogurt", "oats"}},
				"Lunch":     {Ingredients: []string{"chicken breast", "tomato"}},
				"Dinner":    {Ingredients: []string{"chicken breast", "olive oil", "saffron threads"}},
			},
		},
	}

	list := buildShoppingList(days)

	item, ok := list["Proteins"]["chicken breast"]
	if !ok {
		t.Fatal("chicken breast not categorized under Proteins")
	}
	if item.Count != 2 || item.Quantity != "400g" {
		t.Errorf("chicken breast = %+v, want count 2 quantity 400g", item)
	}

	if item := list["Produce"]["tomato"]; item.Quantity != "1 units" {
		t.Errorf("tomato quantity = %q, want \"1 units\"", item.Quantity)
	}
	if item := list["Dairy"]["greek yogurt"]; item.Quantity != "100g" {
		t.Errorf("yogurt quantity = %q, want \"100g\"", item.Quantity)
	}
	if item := list["Grains"]["oats"]; item.Quantity != "1 servings" {
		t.Errorf("oats quantity = %q, want \"1 servings\"", item.Quantity)
	}
	if item := list["Other"]["saffron threads"]; item.Quantity != "1 servings" {
		t.Errorf("saffron quantity = %q, want \"1 servings\"", item.Quantity)
	}
}

func TestHealthMatch(t *testing.T) {
	if got := healthMatch(2000, 2000); got != 1.0 {
		t.Errorf("exact match = %v, want 1.0", got)
	}
	if got := healthMatch(1000, 2000); got != 0.5 {
		t.Errorf("under-eating = %v, want 0.5", got)
	}
	if got := healthMatch(4000, 2000); got != 0.5 {
		t.Errorf("over-eating = %v, want 0.5", got)
	}
	if got := healthMatch(0, 2000); got != 0.5 {
		t.Errorf("zero actual = %v, want neutral 0.5", got)
	}
}
