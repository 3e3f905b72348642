package nutrition

import (
	"fmt"
	"math"

	"nutriplan/internal/profile"
)

// Target holds the daily calorie, macro and micronutrient targets for a user.
// Created once per planning run and never mutated afterwards.
type Target struct {
	Calories       int                `json:"calories"`
	ProteinG       int                `json:"protein_g"`
	CarbsG         int                `json:"carbs_g"`
	FatG           int                `json:"fat_g"`
	MicroNutrients map[string]float64 `json:"micro_nutrients"`
}

// MacroRatios are the protein/carb/fat fractions of total calories for a goal.
type MacroRatios struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// Calories per gram of each macronutrient.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// MinimumCalories is the hard floor applied after goal adjustment.
const MinimumCalories = 1200

var macroRatiosByGoal = map[profile.Goal]MacroRatios{
	profile.GoalMuscleGain:  {Protein: 0.35, Carbs: 0.40, Fat: 0.25},
	profile.GoalWeightLoss:  {Protein: 0.40, Carbs: 0.30, Fat: 0.30},
	profile.GoalMaintenance: {Protein: 0.30, Carbs: 0.35, Fat: 0.35},
}

type rdaEntry struct {
	Male   float64
	Female float64
	Unit   string
}

// Recommended dietary allowances per day, keyed by nutrient name.
var microNutrientRDA = map[string]rdaEntry{
	// Vitamins
	"Vitamin A":               {Male: 900, Female: 700, Unit: "mcg"},
	"Vitamin C":               {Male: 90, Female: 75, Unit: "mg"},
	"Vitamin D":               {Male: 15, Female: 15, Unit: "mcg"},
	"Vitamin E":               {Male: 15, Female: 15, Unit: "mg"},
	"Vitamin K":               {Male: 120, Female: 90, Unit: "mcg"},
	"Vitamin B1 (Thiamin)":    {Male: 1.2, Female: 1.1, Unit: "mg"},
	"Vitamin B2 (Riboflavin)": {Male: 1.3, Female: 1.1, Unit: "mg"},
	"Vitamin B3 (Niacin)":     {Male: 16, Female: 14, Unit: "mg"},
	"Vitamin B6":              {Male: 1.3, Female: 1.3, Unit: "mg"},
	"Vitamin B12":             {Male: 2.4, Female: 2.4, Unit: "mcg"},
	"Folate":                  {Male: 400, Female: 400, Unit: "mcg"},

	// Minerals
	"Calcium":    {Male: 1000, Female: 1000, Unit: "mg"},
	"Iron":       {Male: 8, Female: 18, Unit: "mg"},
	"Magnesium":  {Male: 400, Female: 310, Unit: "mg"},
	"Phosphorus": {Male: 700, Female: 700, Unit: "mg"},
	"Potassium":  {Male: 3400, Female: 2600, Unit: "mg"},
	"Sodium":     {Male: 1500, Female: 1500, Unit: "mg"},
	"Zinc":       {Male: 11, Female: 8, Unit: "mg"},
	"Copper":     {Male: 900, Female: 900, Unit: "mcg"},
	"Selenium":   {Male: 55, Female: 55, Unit: "mcg"},
	"Manganese":  {Male: 2.3, Female: 1.8, Unit: "mg"},
}

// BMR calculates the Basal Metabolic Rate using the Mifflin-St Jeor equation.
func BMR(u profile.UserProfile) float64 {
	base := 10*u.WeightKg + 6.25*u.HeightCm - 5*float64(u.Age)
	if u.Gender == profile.GenderMale {
		return base + 5
	}
	return base - 161
}

// CalculateTargets derives the daily calorie, macro and micronutrient
// targets for a user. Deterministic and side-effect free.
func CalculateTargets(u profile.UserProfile) Target {
	tdee := BMR(u) * u.ActivityLevel

	calories := tdee
	switch u.Goal {
	case profile.GoalWeightLoss:
		calories -= 500
	case profile.GoalMuscleGain:
		calories += 400
	}
	if calories < MinimumCalories {
		calories = MinimumCalories
	}

	ratios := macroRatiosByGoal[u.Goal]

	micro := make(map[string]float64, len(microNutrientRDA))
	for nutrient, rda := range microNutrientRDA {
		if u.Gender == profile.GenderMale {
			micro[nutrient] = rda.Male
		} else {
			micro[nutrient] = rda.Female
		}
	}

	return Target{
		Calories:       int(calories),
		ProteinG:       int(calories * ratios.Protein / kcalPerGramProtein),
		CarbsG:         int(calories * ratios.Carbs / kcalPerGramCarbs),
		FatG:           int(calories * ratios.Fat / kcalPerGramFat),
		MicroNutrients: micro,
	}
}

// RatiosForGoal returns the macro split used for a goal.
func RatiosForGoal(goal profile.Goal) MacroRatios {
	return macroRatiosByGoal[goal]
}

// ValidateRatios checks that every goal's macro ratios sum to exactly 1.0.
// A failure here is a programming error and is surfaced at startup, never
// per request.
func ValidateRatios() error {
	for goal, r := range macroRatiosByGoal {
		sum := r.Protein + r.Carbs + r.Fat
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf("macro ratios for goal %q sum to %g, want 1.0", goal, sum)
		}
	}
	return nil
}
