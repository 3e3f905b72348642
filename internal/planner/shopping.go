package planner

import (
	"fmt"
	"strings"
)

// Shopping-list categories in display order. Ingredients that match no
// category keyword land in Other.
var shoppingCategories = []string{"Produce", "Proteins", "Dairy", "Grains", "Pantry", "Other"}

var categoryKeywords = map[string][]string{
	"Produce":  {"tomato", "lettuce", "onion", "garlic", "pepper", "carrot", "spinach", "kale"},
	"Proteins": {"chicken", "beef", "pork", "fish", "salmon", "tofu", "eggs"},
	"Dairy":    {"milk", "cheese", "yogurt", "butter", "cream"},
	"Grains":   {"rice", "pasta", "bread", "quinoa", "oats"},
	"Pantry":   {"oil", "salt", "pepper", "spices", "sauce", "vinegar"},
}

// buildShoppingList counts ingredient occurrences across the plan and
// groups them into categories with a per-category quantity heuristic.
func buildShoppingList(days []DailyPlan) map[string]map[string]ShoppingItem {
	counts := make(map[string]int)
	for _, day := range days {
		for _, rec := range day.Meals {
			for _, ing := range rec.Ingredients {
				counts[ing]++
			}
		}
	}

	list := make(map[string]map[string]ShoppingItem, len(shoppingCategories))
	for _, cat := range shoppingCategories {
		list[cat] = make(map[string]ShoppingItem)
	}

	for ing, count := range counts {
		cat := categorize(ing)
		list[cat][ing] = ShoppingItem{
			Quantity: estimateQuantity(cat, count),
			Count:    count,
		}
	}
	return list
}

// categorize returns the first matching category in display order so
// results are stable for ingredients matching multiple keyword tables.
func categorize(ingredient string) string {
	lower := strings.ToLower(ingredient)
	for _, cat := range shoppingCategories {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return "Other"
}

func estimateQuantity(category string, count int) string {
	switch category {
	case "Produce":
		return fmt.Sprintf("%d units", count)
	case "Proteins":
		return fmt.Sprintf("%dg", count*200)
	case "Dairy":
		return fmt.Sprintf("%dg", count*100)
	default:
		return fmt.Sprintf("%d servings", count)
	}
}

// buildPrepTimeline emits fixed time-labeled prep entries per slot per
// day, in slot order.
func buildPrepTimeline(days []DailyPlan, slots []string) map[int][]PrepTask {
	timeline := make(map[int][]PrepTask, len(days))
	for _, day := range days {
		tasks := make([]PrepTask, 0, len(slots))
		for _, slot := range slots {
			rec, ok := day.Meals[slot]
			if !ok {
				continue
			}
			tasks = append(tasks, PrepTask{
				Time:   slotPrepTimes[slot],
				Slot:   slot,
				Recipe: rec.Name,
			})
		}
		timeline[day.Day] = tasks
	}
	return timeline
}
