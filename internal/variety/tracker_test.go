package variety

import (
	"fmt"
	"math"
	"testing"

	"nutriplan/internal/recipe"
)

func testRecipe(id string, cuisine string, ingredients ...string) recipe.Recipe {
	return recipe.Recipe{ID: id, Name: id, Cuisine: cuisine, Ingredients: ingredients}
}

func TestUpdateHistoryWindowBound(t *testing.T) {
	tracker := NewTracker(7)

	for day := 0; day < 10; day++ {
		rec := testRecipe(fmt.Sprintf("r%d", day), "italian", fmt.Sprintf("ingredient-%d", day))
		tracker.UpdateHistory([]recipe.Recipe{rec}, rec.Cuisine)
	}

	if got := tracker.HistoryLen(); got != 7 {
		t.Errorf("history length = %d, want capped at 7", got)
	}

	// Evicted days must disappear from the frequency report.
	freq := tracker.FrequencyReport()
	if _, ok := freq["ingredient-0"]; ok {
		t.Error("evicted day's ingredient still present in frequency report")
	}
	if freq["ingredient-9"] != 1 {
		t.Errorf("latest ingredient count = %d, want 1", freq["ingredient-9"])
	}
}

func TestCheckRepetition(t *testing.T) {
	tracker := NewTracker(7)

	pastaA := testRecipe("a", "italian", "pasta", "tomato", "garlic", "basil")
	recent := []recipe.Recipe{pastaA}

	t.Run("identical id", func(t *testing.T) {
		if !tracker.CheckRepetition(pastaA, recent) {
			t.Error("same recipe id not flagged as repetition")
		}
	})

	t.Run("high ingredient overlap", func(t *testing.T) {
		// 3 of 4 ingredients shared: 75% > 70% threshold.
		near := testRecipe("b", "italian", "pasta", "tomato", "garlic", "parmesan")
		if !tracker.CheckRepetition(near, recent) {
			t.Error("75%% ingredient overlap not flagged as repetition")
		}
	})

	t.Run("moderate overlap allowed", func(t *testing.T) {
		// 2 of 4 shared: 50% under the threshold.
		distinct := testRecipe("c", "italian", "pasta", "tomato", "cream", "mushroom")
		if tracker.CheckRepetition(distinct, recent) {
			t.Error("50%% overlap wrongly flagged as repetition")
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if tracker.CheckRepetition(pastaA, nil) {
			t.Error("repetition flagged with no recent recipes")
		}
	})
}

func TestScoreVarietyBounds(t *testing.T) {
	tracker := NewTracker(7)
	candidate := testRecipe("x", "thai", "tofu", "lime", "ginger")

	// Fresh tracker, no history: maximum variety.
	if got := tracker.ScoreVariety(candidate, nil); got != 1.0 {
		t.Errorf("score with empty history = %v, want 1.0", got)
	}

	// Saturate history with the exact same recipe.
	same := testRecipe("x", "thai", "tofu", "lime", "ginger")
	var recent []recipe.Recipe
	for day := 0; day < 7; day++ {
		tracker.UpdateHistory([]recipe.Recipe{same}, same.Cuisine)
		recent = append(recent, same)
	}

	got := tracker.ScoreVariety(candidate, recent)
	if got < 0 || got > 1 {
		t.Fatalf("score = %v outside [0,1]", got)
	}

	// Heavy repetition must score strictly below a novel candidate.
	novel := testRecipe("y", "mexican", "beans", "corn", "avocado")
	if novelScore := tracker.ScoreVariety(novel, recent); novelScore <= got {
		t.Errorf("novel candidate scored %v, repeated candidate %v; want novel higher", novelScore, got)
	}
}

func TestScoreVarietyPrefersNewCuisine(t *testing.T) {
	tracker := NewTracker(7)
	italian := testRecipe("a", "italian", "pasta")
	for day := 0; day < 3; day++ {
		tracker.UpdateHistory([]recipe.Recipe{italian}, "italian")
	}

	sameCuisine := testRecipe("b", "italian", "risotto")
	newCuisine := testRecipe("c", "japanese", "miso")

	if tracker.ScoreVariety(newCuisine, nil) <= tracker.ScoreVariety(sameCuisine, nil) {
		t.Error("candidate from a fresh cuisine did not outscore a repeated cuisine")
	}
}

func TestPlanVarietyScore(t *testing.T) {
	t.Run("empty plan", func(t *testing.T) {
		if got := PlanVarietyScore(nil); got != 1.0 {
			t.Errorf("empty plan score = %v, want 1.0", got)
		}
	})

	t.Run("all unique", func(t *testing.T) {
		plan := []recipe.Recipe{
			testRecipe("a", "", "oats", "banana"),
			testRecipe("b", "", "chicken", "rice"),
		}
		if got := PlanVarietyScore(plan); got != 1.0 {
			t.Errorf("all-unique score = %v, want 1.0", got)
		}
	})

	t.Run("fully repeated", func(t *testing.T) {
		// Same 2 ingredients across 3 meals: 2 unique / 6 total.
		rec := testRecipe("a", "", "chicken", "rice")
		plan := []recipe.Recipe{rec, rec, rec}
		want := 2.0 / 6.0
		if got := PlanVarietyScore(plan); math.Abs(got-want) > 1e-9 {
			t.Errorf("repeated-plan score = %v, want %v", got, want)
		}
	})
}

func TestTextureAndFamilyClassification(t *testing.T) {
	rec := testRecipe("a", "", "greek yogurt", "toasted nuts", "lemon juice", "soy sauce glaze")

	textures := recipeTextures(rec)
	if _, ok := textures["creamy"]; !ok {
		t.Error("yogurt not classified as creamy")
	}
	if _, ok := textures["crunchy"]; !ok {
		t.Error("nuts not classified as crunchy")
	}

	families := recipeFlavorFamilies(rec)
	if _, ok := families["citrus"]; !ok {
		t.Error("lemon not classified as citrus")
	}
	if _, ok := families["savory"]; !ok {
		t.Error("soy sauce not classified as savory")
	}
}

func TestFlavorRotationNeutralWhenUnclassifiable(t *testing.T) {
	tracker := NewTracker(7)
	tracker.UpdateHistory([]recipe.Recipe{testRecipe("a", "italian", "garlic")}, "italian")

	// No keyword in any flavor family table.
	plain := testRecipe("b", "", "water", "salt")
	if got := tracker.scoreFlavorRotation(plain); got != 0.5 {
		t.Errorf("rotation score for unclassifiable recipe = %v, want 0.5", got)
	}
}
