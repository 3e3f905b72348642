package planner

import (
	"time"

	"nutriplan/internal/recipe"
)

// Slot names for the two supported deployment variants.
var (
	standardSlots = []string{"Breakfast", "Lunch", "Dinner"}
	extendedSlots = []string{"Breakfast", "Morning Snack", "Lunch", "Afternoon Snack", "Dinner"}
)

// Fixed prep times per slot name.
var slotPrepTimes = map[string]string{
	"Breakfast":       "8:00 AM",
	"Morning Snack":   "10:00 AM",
	"Lunch":           "12:00 PM",
	"Afternoon Snack": "3:00 PM",
	"Dinner":          "6:00 PM",
}

// DayStats are the summed nutritional and environmental totals for one day.
type DayStats struct {
	Calories          int     `json:"calories"`
	TargetCalories    int     `json:"target_calories"`
	CarbonFootprintKg float64 `json:"carbon_footprint_kg"`
}

// DayScores grade one generated day, each dimension in [0,1].
type DayScores struct {
	HealthMatch float64 `json:"health_match"`
	TasteMatch  float64 `json:"taste_match"`
	Variety     float64 `json:"variety"`
}

// DailyPlan is one generated day: a recipe per slot plus aggregates.
type DailyPlan struct {
	Day    int                      `json:"day"`
	Meals  map[string]recipe.Recipe `json:"meals"`
	Stats  DayStats                 `json:"total_stats"`
	Scores DayScores                `json:"scores"`
}

// ShoppingItem is one aggregated shopping-list line.
type ShoppingItem struct {
	Quantity string `json:"quantity"`
	Count    int    `json:"count"`
}

// PrepTask is a single time-labeled preparation step within a day.
type PrepTask struct {
	Time   string `json:"time"`
	Slot   string `json:"slot"`
	Recipe string `json:"recipe"`
}

// OverallStats aggregates score averages and footprint across the plan.
type OverallStats struct {
	AvgHealthMatch       float64 `json:"avg_health_match"`
	AvgTasteMatch        float64 `json:"avg_taste_match"`
	AvgVariety           float64 `json:"avg_variety"`
	TotalCarbonKg        float64 `json:"total_carbon_kg"`
	SustainabilityRating string  `json:"sustainability_rating"`
}

// PlanResponse is the full output of one planning run.
type PlanResponse struct {
	ID           string                             `json:"id"`
	UserName     string                             `json:"user_name"`
	GeneratedAt  time.Time                          `json:"generated_at"`
	Days         []DailyPlan                        `json:"days"`
	ShoppingList map[string]map[string]ShoppingItem `json:"shopping_list"`
	PrepTimeline map[int][]PrepTask                 `json:"prep_timeline"`
	OverallStats OverallStats                       `json:"overall_stats"`
}
