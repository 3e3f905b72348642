package sustainability

import (
	"context"
	"errors"
	"math"
	"testing"

	"nutriplan/internal/recipe"
)

type failingLookup struct{}

func (failingLookup) CarbonFootprintPerKg(context.Context, string) (float64, error) {
	return 0, errors.New("service unavailable")
}

func TestStaticLookupSubstring(t *testing.T) {
	lookup := NewStaticLookup()
	ctx := context.Background()

	got, err := lookup.CarbonFootprintPerKg(ctx, "200g Ground Beef")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != 27.0 {
		t.Errorf("beef footprint = %v, want 27.0", got)
	}

	got, err = lookup.CarbonFootprintPerKg(ctx, "dragonfruit nectar powder")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != 0.4 {
		t.Errorf("fruit match = %v, want 0.4", got)
	}

	got, err = lookup.CarbonFootprintPerKg(ctx, "unobtainium")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != 0.0 {
		t.Errorf("unknown ingredient footprint = %v, want 0.0", got)
	}
}

func TestMealFootprint(t *testing.T) {
	est := NewEstimator(NewStaticLookup())
	rec := recipe.Recipe{Ingredients: []string{"beef", "rice", "mystery herb"}}

	got := est.MealFootprint(context.Background(), rec)
	want := (27.0 + 4.0) * assumedPortionKg
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("meal footprint = %v, want %v", got, want)
	}
}

func TestMealFootprintToleratesLookupFailure(t *testing.T) {
	est := NewEstimator(failingLookup{})
	rec := recipe.Recipe{Ingredients: []string{"beef", "rice"}}

	if got := est.MealFootprint(context.Background(), rec); got != 0.0 {
		t.Errorf("footprint with failing lookup = %v, want 0.0", got)
	}
}

func TestRating(t *testing.T) {
	cases := []struct {
		kg   float64
		want string
	}{
		{10, "Excellent"},
		{19.99, "Excellent"},
		{20, "Good"},
		{34.99, "Good"},
		{35, "Fair"},
		{100, "Fair"},
	}
	for _, tc := range cases {
		if got := Rating(tc.kg); got != tc.want {
			t.Errorf("Rating(%v) = %q, want %q", tc.kg, got, tc.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(12.5); got != "12.50 kg CO2e (Excellent)" {
		t.Errorf("Describe(12.5) = %q, want \"12.50 kg CO2e (Excellent)\"", got)
	}
	if got := Describe(40); got != "40.00 kg CO2e (Fair)" {
		t.Errorf("Describe(40) = %q, want \"40.00 kg CO2e (Fair)\"", got)
	}
}

func TestScore(t *testing.T) {
	value, label := Score(0)
	if value != 100 || label != "Excellent" {
		t.Errorf("Score(0) = %v %q, want 100 Excellent", value, label)
	}

	value, label = Score(1.0)
	if value != 80 || label != "Excellent" {
		t.Errorf("Score(1.0) = %v %q, want 80 Excellent", value, label)
	}

	value, label = Score(2.5)
	if value != 50 || label != "Fair" {
		t.Errorf("Score(2.5) = %v %q, want 50 Fair", value, label)
	}

	value, label = Score(10)
	if value != 0 || label != "Poor" {
		t.Errorf("Score(10) = %v %q, want 0 Poor", value, label)
	}
}
