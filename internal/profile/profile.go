package profile

import "fmt"

// Gender is used to pick the BMR formula and the micronutrient RDA column.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Goal represents the user's dietary goal.
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMaintenance Goal = "maintenance"
	GoalMuscleGain  Goal = "muscle_gain"
)

// UserProfile holds the biometrics and preferences for a planning run.
// It is an immutable input: the engine never mutates it.
type UserProfile struct {
	Name string `json:"name,omitempty"`

	// Biometrics
	Age           int     `json:"age"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Gender        Gender  `json:"gender"`
	ActivityLevel float64 `json:"activity_level"` // 1.2 to 1.9 multiplier
	Goal          Goal    `json:"goal"`

	// Preferences
	LikedIngredients    []string `json:"liked_ingredients,omitempty"`
	DislikedIngredients []string `json:"disliked_ingredients,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	HealthConditions    []string `json:"health_conditions,omitempty"`
}

// Validate checks that the biometrics are usable for target calculation.
// Surfaces call this before handing the profile to the engine.
func (u *UserProfile) Validate() error {
	if u.Age <= 0 {
		return fmt.Errorf("age must be positive, got %d", u.Age)
	}
	if u.WeightKg <= 0 {
		return fmt.Errorf("weight_kg must be positive, got %g", u.WeightKg)
	}
	if u.HeightCm <= 0 {
		return fmt.Errorf("height_cm must be positive, got %g", u.HeightCm)
	}
	if u.ActivityLevel < 1.0 || u.ActivityLevel > 2.5 {
		return fmt.Errorf("activity_level %g outside plausible range [1.0, 2.5]", u.ActivityLevel)
	}
	switch u.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("unknown gender %q", u.Gender)
	}
	switch u.Goal {
	case GoalWeightLoss, GoalMaintenance, GoalMuscleGain:
	default:
		return fmt.Errorf("unknown goal %q", u.Goal)
	}
	return nil
}
