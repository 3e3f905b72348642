package variety

import (
	"strings"

	"nutriplan/internal/recipe"
)

// DefaultNoRepeatWindow is the number of days repetition is tracked over.
const DefaultNoRepeatWindow = 7

// Ingredient overlap above this ratio marks a candidate as a repeat.
const repetitionOverlapThreshold = 0.7

// Keyword tables classifying ingredients into texture categories and
// flavor families. Matching is case-insensitive substring.
var textureKeywords = map[string][]string{
	"crunchy": {"nuts", "crackers", "chips", "raw vegetables", "toast"},
	"creamy":  {"yogurt", "cheese", "avocado", "hummus", "sauce"},
	"soft":    {"banana", "tofu", "pasta", "rice", "bread"},
	"chewy":   {"meat", "dried fruit", "caramel", "jerky"},
	"liquid":  {"soup", "smoothie", "juice", "broth"},
}

var flavorFamilyKeywords = map[string][]string{
	"aromatic": {"garlic", "onion", "ginger", "herbs"},
	"citrus":   {"lemon", "lime", "orange", "grapefruit"},
	"earthy":   {"mushroom", "beet", "potato", "carrot"},
	"sweet":    {"honey", "maple", "sugar", "fruit"},
	"savory":   {"soy sauce", "miso", "cheese", "meat"},
}

// Tracker maintains a bounded rolling history of recent days and scores
// candidate recipes for dietary variety. One Tracker serves exactly one
// plan build; it is not shared across runs.
//
// The four queues always have equal length, at most the window size;
// insertion past the cap evicts the oldest day from all four together.
type Tracker struct {
	window int

	ingredientHistory []map[string]struct{}
	cuisineHistory    []string
	textureHistory    []map[string]int
	familyHistory     []map[string]struct{}
}

// NewTracker creates a Tracker with the given no-repeat window.
// Non-positive windows fall back to the default of 7 days.
func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = DefaultNoRepeatWindow
	}
	return &Tracker{window: window}
}

// Window returns the configured no-repeat window in days.
func (t *Tracker) Window() int {
	return t.window
}

// HistoryLen returns the number of tracked days, for bound checks.
func (t *Tracker) HistoryLen() int {
	return len(t.ingredientHistory)
}

// UpdateHistory records one completed day of meals.
func (t *Tracker) UpdateHistory(dayRecipes []recipe.Recipe, cuisine string) {
	dayIngredients := make(map[string]struct{})
	for _, rec := range dayRecipes {
		for _, ing := range rec.Ingredients {
			dayIngredients[ing] = struct{}{}
		}
	}
	t.ingredientHistory = append(t.ingredientHistory, dayIngredients)
	t.cuisineHistory = append(t.cuisineHistory, cuisine)

	dayTextures := make(map[string]int)
	for _, rec := range dayRecipes {
		for texture := range recipeTextures(rec) {
			dayTextures[texture]++
		}
	}
	t.textureHistory = append(t.textureHistory, dayTextures)

	dayFamilies := make(map[string]struct{})
	for _, rec := range dayRecipes {
		for family := range recipeFlavorFamilies(rec) {
			dayFamilies[family] = struct{}{}
		}
	}
	t.familyHistory = append(t.familyHistory, dayFamilies)

	// Evict the oldest day from all four queues together so they stay
	// synchronized in length.
	if len(t.ingredientHistory) > t.window {
		t.ingredientHistory = t.ingredientHistory[1:]
		t.cuisineHistory = t.cuisineHistory[1:]
		t.textureHistory = t.textureHistory[1:]
		t.familyHistory = t.familyHistory[1:]
	}
}

// ScoreVariety returns a [0,1] variety score for a candidate: the
// weighted sum of ingredient uniqueness (30%), cuisine diversity (25%),
// texture balance (20%), flavor-family rotation (15%) and no-repeat
// compliance (10%).
func (t *Tracker) ScoreVariety(candidate recipe.Recipe, recentRecipes []recipe.Recipe) float64 {
	return 0.30*t.scoreIngredientUniqueness(candidate, recentRecipes) +
		0.25*t.scoreCuisineDiversity(candidate) +
		0.20*t.scoreTextureBalance(candidate) +
		0.15*t.scoreFlavorRotation(candidate) +
		0.10*t.scoreNoRepeatCompliance(candidate)
}

func (t *Tracker) scoreIngredientUniqueness(candidate recipe.Recipe, recentRecipes []recipe.Recipe) float64 {
	if len(recentRecipes) == 0 {
		return 1.0
	}
	if len(candidate.Ingredients) == 0 {
		return 0.5
	}

	recent := make(map[string]struct{})
	for _, rec := range recentRecipes {
		for _, ing := range rec.Ingredients {
			recent[ing] = struct{}{}
		}
	}

	overlap := 0
	seen := make(map[string]struct{})
	for _, ing := range candidate.Ingredients {
		if _, dup := seen[ing]; dup {
			continue
		}
		seen[ing] = struct{}{}
		if _, ok := recent[ing]; ok {
			overlap++
		}
	}

	return 1.0 - float64(overlap)/float64(len(seen))
}

func (t *Tracker) scoreCuisineDiversity(candidate recipe.Recipe) float64 {
	if len(t.cuisineHistory) == 0 {
		return 1.0
	}

	cuisine := candidate.Cuisine
	if cuisine == "" {
		cuisine = "unknown"
	}

	occurrences := 0
	for _, c := range t.cuisineHistory {
		if c == cuisine {
			occurrences++
		}
	}
	if occurrences == 0 {
		return 1.0
	}
	return 1.0 - float64(occurrences)/float64(len(t.cuisineHistory))
}

func (t *Tracker) scoreTextureBalance(candidate recipe.Recipe) float64 {
	if len(t.textureHistory) == 0 {
		return 1.0
	}

	recent := t.textureHistory
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	recentCounts := make(map[string]int)
	for _, day := range recent {
		for texture, n := range day {
			recentCounts[texture] += n
		}
	}

	score := 1.0
	for texture := range recipeTextures(candidate) {
		if n, ok := recentCounts[texture]; ok {
			usage := float64(n) / float64(3*len(textureKeywords))
			score -= 0.2 * usage
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (t *Tracker) scoreFlavorRotation(candidate recipe.Recipe) float64 {
	if len(t.familyHistory) == 0 {
		return 1.0
	}

	families := recipeFlavorFamilies(candidate)
	if len(families) == 0 {
		return 0.5
	}

	recent := t.familyHistory
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	recentFamilies := make(map[string]struct{})
	for _, day := range recent {
		for family := range day {
			recentFamilies[family] = struct{}{}
		}
	}

	overlap := 0
	for family := range families {
		if _, ok := recentFamilies[family]; ok {
			overlap++
		}
	}
	return 1.0 - float64(overlap)/float64(len(families))
}

func (t *Tracker) scoreNoRepeatCompliance(candidate recipe.Recipe) float64 {
	if len(t.ingredientHistory) == 0 {
		return 1.0
	}

	candidateIngredients := ingredientSet(candidate)
	maxViolations := len(candidateIngredients) * len(t.ingredientHistory)
	if maxViolations == 0 {
		return 1.0
	}

	violations := 0
	for _, day := range t.ingredientHistory {
		for ing := range candidateIngredients {
			if _, ok := day[ing]; ok {
				violations++
			}
		}
	}

	return 1.0 - float64(violations)/float64(maxViolations)
}

// CheckRepetition reports whether a candidate is too repetitive against
// recent selections: an identity match, or ingredient overlap above 70%
// of the candidate's own ingredient count with any single recent recipe.
// This is a hard filter, distinct from the soft ScoreVariety signal.
func (t *Tracker) CheckRepetition(candidate recipe.Recipe, recentRecipes []recipe.Recipe) bool {
	if len(recentRecipes) == 0 {
		return false
	}

	for _, old := range recentRecipes {
		if candidate.ID == old.ID {
			return true
		}
	}

	candidateIngredients := ingredientSet(candidate)
	if len(candidateIngredients) == 0 {
		return false
	}

	for _, old := range recentRecipes {
		oldIngredients := ingredientSet(old)
		if len(oldIngredients) == 0 {
			continue
		}

		overlap := 0
		for ing := range candidateIngredients {
			if _, ok := oldIngredients[ing]; ok {
				overlap++
			}
		}
		if float64(overlap)/float64(len(candidateIngredients)) > repetitionOverlapThreshold {
			return true
		}
	}

	return false
}

// PlanVarietyScore is the ratio of unique ingredients to total ingredient
// mentions across a completed set of meals. An empty plan scores 1.0,
// not 0.0: with no meals there are no repeats.
func PlanVarietyScore(plan []recipe.Recipe) float64 {
	total := 0
	unique := make(map[string]struct{})
	for _, rec := range plan {
		for _, ing := range rec.Ingredients {
			total++
			unique[ing] = struct{}{}
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(len(unique)) / float64(total)
}

// FrequencyReport returns how often each ingredient appeared across the
// tracked window, one count per day of appearance.
func (t *Tracker) FrequencyReport() map[string]int {
	freq := make(map[string]int)
	for _, day := range t.ingredientHistory {
		for ing := range day {
			freq[ing]++
		}
	}
	return freq
}

func ingredientSet(rec recipe.Recipe) map[string]struct{} {
	set := make(map[string]struct{}, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		set[ing] = struct{}{}
	}
	return set
}

func recipeTextures(rec recipe.Recipe) map[string]struct{} {
	return classify(rec.Ingredients, textureKeywords)
}

func recipeFlavorFamilies(rec recipe.Recipe) map[string]struct{} {
	return classify(rec.Ingredients, flavorFamilyKeywords)
}

func classify(ingredients []string, table map[string][]string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, ing := range ingredients {
		lower := strings.ToLower(ing)
		for category, keywords := range table {
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					out[category] = struct{}{}
					break
				}
			}
		}
	}
	return out
}
