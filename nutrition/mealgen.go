package nutrition

import (
	"fmt"
	"sort"
	"strings"

	"backend/models"
)

// Meal plan generation: greedy, deterministic assembly of a week of meals
// from a fully-resident food catalog, under hard exclusions (fatal allergies,
// pathology bans) and soft preferences (likes/dislikes). Shortfalls produce
// safety warnings, never errors; the clinician always gets an editable plan.

// Nutrients is the aggregate tracked at item, meal and day level.
type Nutrients struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	Sugar       float64 `json:"sugar"`
	SodiumMg    float64 `json:"sodium_mg"`
	PotassiumMg float64 `json:"potassium_mg"`
	CalciumMg   float64 `json:"calcium_mg"`
	IronMg      float64 `json:"iron_mg"`
	ZincMg      float64 `json:"zinc_mg"`
	VitaminAMcg float64 `json:"vitamin_a_mcg"`
	VitaminCMg  float64 `json:"vitamin_c_mg"`
}

func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories:    n.Calories + o.Calories,
		Protein:     n.Protein + o.Protein,
		Carbs:       n.Carbs + o.Carbs,
		Fat:         n.Fat + o.Fat,
		Fiber:       n.Fiber + o.Fiber,
		Sugar:       n.Sugar + o.Sugar,
		SodiumMg:    n.SodiumMg + o.SodiumMg,
		PotassiumMg: n.PotassiumMg + o.PotassiumMg,
		CalciumMg:   n.CalciumMg + o.CalciumMg,
		IronMg:      n.IronMg + o.IronMg,
		ZincMg:      n.ZincMg + o.ZincMg,
		VitaminAMcg: n.VitaminAMcg + o.VitaminAMcg,
		VitaminCMg:  n.VitaminCMg + o.VitaminCMg,
	}
}

func (n Nutrients) Scale(f float64) Nutrients {
	return Nutrients{
		Calories:    n.Calories * f,
		Protein:     n.Protein * f,
		Carbs:       n.Carbs * f,
		Fat:         n.Fat * f,
		Fiber:       n.Fiber * f,
		Sugar:       n.Sugar * f,
		SodiumMg:    n.SodiumMg * f,
		PotassiumMg: n.PotassiumMg * f,
		CalciumMg:   n.CalciumMg * f,
		IronMg:      n.IronMg * f,
		ZincMg:      n.ZincMg * f,
		VitaminAMcg: n.VitaminAMcg * f,
		VitaminCMg:  n.VitaminCMg * f,
	}
}

// PerHundred extracts the per-100g profile from a catalog row.
func PerHundred(f models.Food) Nutrients {
	return Nutrients{
		Calories:    f.Calories,
		Protein:     f.Protein,
		Carbs:       f.Carbs,
		Fat:         f.Fat,
		Fiber:       f.Fiber,
		Sugar:       f.Sugar,
		SodiumMg:    f.SodiumMg,
		PotassiumMg: f.PotassiumMg,
		CalciumMg:   f.CalciumMg,
		IronMg:      f.IronMg,
		ZincMg:      f.ZincMg,
		VitaminAMcg: f.VitaminAMcg,
		VitaminCMg:  f.VitaminCMg,
	}
}

// PlanItem snapshots the food's per-100g profile so stats stay recomputable
// after the catalog changes.
type PlanItem struct {
	FoodID      uint      `json:"food_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Grams       float64   `json:"grams"`
	WasteFactor float64   `json:"waste_factor,omitempty"`
	PerHundred  Nutrients `json:"per_hundred"`
}

func (it PlanItem) Nutrients() Nutrients {
	return it.PerHundred.Scale(it.Grams / 100.0)
}

type Meal struct {
	Name  string     `json:"name"`
	Ratio float64    `json:"ratio"`
	Items []PlanItem `json:"items"`
	Stats Nutrients  `json:"stats"`
}

type DailyPlan struct {
	Day            string    `json:"day"`
	Meals          []Meal    `json:"meals"`
	Stats          Nutrients `json:"stats"`
	SafetyWarnings []Warning `json:"safety_warnings"`
}

type WeeklyPlan struct {
	Days  []DailyPlan `json:"days"`
	Goals Goals       `json:"goals"`
}

// Moment is one configured feeding slot; ratios are 0-1 and sum to 1.0
// across enabled moments.
type Moment struct {
	Name    string  `json:"name"`
	Enabled bool    `json:"enabled"`
	Ratio   float64 `json:"ratio"`
}

// AllergyPref mirrors the stored allergy with its severity.
type AllergyPref struct {
	Name     string `json:"name"`
	Severity string `json:"severity"` // fatal | intolerance | preference
}

// Preferences aggregates everything the generator honors beyond the numeric
// goals.
type Preferences struct {
	Liked       []string
	Disliked    []string
	Allergies   []AllergyPref
	Pathologies []string
	AgeYears    int
	Moments     []Moment
}

// DefaultMoments is the layout used when a patient has none configured.
func DefaultMoments() []Moment {
	return []Moment{
		{Name: "breakfast", Enabled: true, Ratio: 0.25},
		{Name: "lunch", Enabled: true, Ratio: 0.35},
		{Name: "snack", Enabled: true, Ratio: 0.10},
		{Name: "dinner", Enabled: true, Ratio: 0.30},
	}
}

// Fatal allergies expand to known derivative ingredient names; lower
// severities match the allergen name only.
var allergenDerivatives = map[string][]string{
	"milk":      {"milk", "cheese", "yogurt", "butter", "cream", "whey", "casein", "dairy"},
	"egg":       {"egg", "mayonnaise", "albumin", "meringue"},
	"peanut":    {"peanut"},
	"gluten":    {"wheat", "bread", "pasta", "flour", "barley", "rye", "semolina", "couscous", "oats"},
	"wheat":     {"wheat", "bread", "pasta", "flour", "semolina", "couscous"},
	"fish":      {"fish", "tuna", "salmon", "anchovy", "cod", "hake", "trout", "sardine"},
	"shellfish": {"shrimp", "prawn", "crab", "lobster", "clam", "mussel", "squid", "octopus"},
	"soy":       {"soy", "soybean", "tofu", "tempeh", "edamame"},
	"nuts":      {"almond", "walnut", "hazelnut", "cashew", "pecan", "pistachio", "nut"},
}

func excludedByAllergy(foodName string, a AllergyPref) bool {
	name := strings.ToLower(foodName)
	allergen := strings.ToLower(strings.TrimSpace(a.Name))
	if allergen == "" {
		return false
	}
	if a.Severity == "fatal" {
		if terms, ok := allergenDerivatives[allergen]; ok {
			for _, t := range terms {
				if strings.Contains(name, t) {
					return true
				}
			}
		}
	}
	return strings.Contains(name, allergen)
}

// Pathology-linked exclusions are hard constraints, enforced exactly like
// fatal allergies.
func excludedByPathology(f models.Food, pathologies []string) bool {
	name := strings.ToLower(f.Name)
	for _, p := range pathologies {
		p = strings.ToLower(p)
		switch {
		case strings.Contains(p, "renal") || strings.Contains(p, "kidney"):
			if f.PotassiumMg > 300 || f.SodiumMg > 400 {
				return true
			}
		case strings.Contains(p, "diabet"):
			if f.Sugar > 15 {
				return true
			}
		case strings.Contains(p, "hypertens") || strings.Contains(p, "hipertens"):
			if f.SodiumMg > 400 {
				return true
			}
		case strings.Contains(p, "celiac") || strings.Contains(p, "coeliac"):
			for _, t := range allergenDerivatives["gluten"] {
				if strings.Contains(name, t) {
					return true
				}
			}
		}
	}
	return false
}

// Foods unsafe for very young children regardless of preference.
func excludedForAge(f models.Food, ageYears int) bool {
	name := strings.ToLower(f.Name)
	if ageYears < 1 && strings.Contains(name, "honey") {
		return true
	}
	if ageYears < 4 {
		for _, t := range []string{"whole almond", "whole peanut", "popcorn"} {
			if strings.Contains(name, t) {
				return true
			}
		}
	}
	return false
}

// Realistic per-serving portion bounds in grams by category.
func portionBounds(category string) (min, max float64) {
	switch category {
	case "fats", "sugars":
		return 5, 30
	case "meats", "fish", "eggs":
		return 30, 250
	case "dairy":
		return 30, 300
	default:
		return 20, 300
	}
}

const maxItemsPerMeal = 5

type candidate struct {
	food  models.Food
	liked bool
}

// GenerateDailyPlan assembles one day of meals against the daily goals.
// Selection is greedy and fully deterministic: candidates are scored by how
// far a default portion moves the running meal toward its calorie and
// protein sub-targets, liked foods get a bonus, and ties break on food name.
func GenerateDailyPlan(goals Goals, catalog []models.Food, dayLabel string, prefs Preferences) DailyPlan {
	plan := DailyPlan{Day: dayLabel}

	moments := prefs.Moments
	if len(moments) == 0 {
		moments = DefaultMoments()
	}

	pool := buildCandidatePool(catalog, prefs)
	if len(pool) == 0 {
		plan.SafetyWarnings = append(plan.SafetyWarnings, Warning{
			Code:     "empty_candidate_pool",
			Severity: High,
			Message:  "No catalog foods remain after applying allergies and pathology exclusions; the plan is empty and needs manual construction.",
		})
	}

	proteinTargetG := goals.Calories * goals.ProteinPct / 100.0 / 4.0

	for _, moment := range moments {
		if !moment.Enabled {
			continue
		}
		meal := Meal{Name: moment.Name, Ratio: moment.Ratio}
		kcalTarget := goals.Calories * moment.Ratio
		proteinTarget := proteinTargetG * moment.Ratio

		used := map[uint]bool{}
		for len(meal.Items) < maxItemsPerMeal {
			kcalGap := kcalTarget - meal.Stats.Calories
			if kcalGap <= 0.05*kcalTarget {
				break
			}
			best, ok := pickCandidate(pool, used, kcalGap, proteinTarget-meal.Stats.Protein)
			if !ok {
				break
			}
			used[best.food.ID] = true
			grams := portionFor(best.food, kcalGap)
			item := PlanItem{
				FoodID:      best.food.ID,
				Name:        best.food.Name,
				Category:    best.food.Category,
				Grams:       grams,
				WasteFactor: best.food.WasteFactor,
				PerHundred:  PerHundred(best.food),
			}
			meal.Items = append(meal.Items, item)
			meal.Stats = meal.Stats.Add(item.Nutrients())
		}

		if kcalTarget > 0 && meal.Stats.Calories < 0.85*kcalTarget {
			plan.SafetyWarnings = append(plan.SafetyWarnings, Warning{
				Code:     "moment_target_unmet",
				Severity: Caution,
				Message:  fmt.Sprintf("%s reaches %.0f of %.0f kcal; the catalog could not cover the remainder within portion limits.", moment.Name, meal.Stats.Calories, kcalTarget),
				Metric:   "calories",
				Value:    meal.Stats.Calories,
				Limit:    kcalTarget,
			})
		}
		plan.Meals = append(plan.Meals, meal)
	}

	plan.Recompute()

	if goals.Calories > 0 {
		dev := plan.Stats.Calories - goals.Calories
		if dev < -0.10*goals.Calories || dev > 0.10*goals.Calories {
			plan.SafetyWarnings = append(plan.SafetyWarnings, Warning{
				Code:     "daily_target_unmet",
				Severity: Caution,
				Message:  fmt.Sprintf("Day totals %.0f kcal against a %.0f kcal goal; review and hand-edit before prescribing.", plan.Stats.Calories, goals.Calories),
				Metric:   "calories",
				Value:    plan.Stats.Calories,
				Limit:    goals.Calories,
			})
		}
	}
	return plan
}

var weekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// GenerateWeeklyPlan runs the daily generator once per weekday.
func GenerateWeeklyPlan(goals Goals, catalog []models.Food, prefs Preferences) WeeklyPlan {
	week := WeeklyPlan{Goals: goals}
	for _, day := range weekDays {
		week.Days = append(week.Days, GenerateDailyPlan(goals, catalog, day, prefs))
	}
	return week
}

func buildCandidatePool(catalog []models.Food, prefs Preferences) []candidate {
	liked := map[string]bool{}
	for _, l := range prefs.Liked {
		liked[strings.ToLower(strings.TrimSpace(l))] = true
	}
	disliked := map[string]bool{}
	for _, d := range prefs.Disliked {
		disliked[strings.ToLower(strings.TrimSpace(d))] = true
	}

	var pool []candidate
	for _, f := range catalog {
		name := strings.ToLower(f.Name)
		if f.Calories <= 0 {
			continue
		}
		excluded := false
		for _, a := range prefs.Allergies {
			if excludedByAllergy(f.Name, a) {
				excluded = true
				break
			}
		}
		if excluded || excludedByPathology(f, prefs.Pathologies) || excludedForAge(f, prefs.AgeYears) {
			continue
		}
		if disliked[name] {
			continue
		}
		pool = append(pool, candidate{food: f, liked: liked[name]})
	}
	// Stable base order keeps generation reproducible.
	sort.Slice(pool, func(i, j int) bool { return pool[i].food.Name < pool[j].food.Name })
	return pool
}

func pickCandidate(pool []candidate, used map[uint]bool, kcalGap, proteinGap float64) (candidate, bool) {
	var best candidate
	bestScore := 0.0
	found := false
	for _, c := range pool {
		if used[c.food.ID] {
			continue
		}
		grams := portionFor(c.food, kcalGap)
		kcal := c.food.Calories * grams / 100.0
		protein := c.food.Protein * grams / 100.0

		// Closure of the calorie gap, penalizing overshoot twice as hard.
		closure := kcal
		if kcal > kcalGap {
			closure = kcalGap - 2.0*(kcal-kcalGap)
		}
		score := closure
		if proteinGap > 0 {
			pClosure := protein
			if protein > proteinGap {
				pClosure = proteinGap
			}
			score += 0.5 * pClosure * 4.0
		}
		if c.liked {
			score += 50.0
		}

		if !found || score > bestScore || (score == bestScore && c.food.Name < best.food.Name) {
			best = c
			bestScore = score
			found = true
		}
	}
	return best, found
}

// portionFor sizes a serving toward the remaining calorie gap, clamped to
// the category's realistic bounds.
func portionFor(f models.Food, kcalGap float64) float64 {
	min, max := portionBounds(f.Category)
	if f.Calories <= 0 {
		return min
	}
	grams := kcalGap / f.Calories * 100.0
	// Round to 5 g steps, as served.
	grams = float64(int(grams/5.0)) * 5.0
	return clamp(grams, min, max)
}

// Recompute rebuilds meal and day stats from item level. Must run after any
// mutation before the plan is considered valid.
func (p *DailyPlan) Recompute() {
	p.Stats = Nutrients{}
	for i := range p.Meals {
		p.Meals[i].Stats = Nutrients{}
		for _, it := range p.Meals[i].Items {
			p.Meals[i].Stats = p.Meals[i].Stats.Add(it.Nutrients())
		}
		p.Stats = p.Stats.Add(p.Meals[i].Stats)
	}
}

// AddFood appends a food to a meal (100 g when grams is not positive) and
// recomputes stats synchronously.
func (p *DailyPlan) AddFood(mealIdx int, f models.Food, grams float64) error {
	if mealIdx < 0 || mealIdx >= len(p.Meals) {
		return fmt.Errorf("meal index %d out of range", mealIdx)
	}
	if grams <= 0 {
		grams = 100
	}
	p.Meals[mealIdx].Items = append(p.Meals[mealIdx].Items, PlanItem{
		FoodID:      f.ID,
		Name:        f.Name,
		Category:    f.Category,
		Grams:       grams,
		WasteFactor: f.WasteFactor,
		PerHundred:  PerHundred(f),
	})
	p.Recompute()
	return nil
}

// RemoveItem deletes one item and recomputes stats.
func (p *DailyPlan) RemoveItem(mealIdx, itemIdx int) error {
	if mealIdx < 0 || mealIdx >= len(p.Meals) {
		return fmt.Errorf("meal index %d out of range", mealIdx)
	}
	items := p.Meals[mealIdx].Items
	if itemIdx < 0 || itemIdx >= len(items) {
		return fmt.Errorf("item index %d out of range", itemIdx)
	}
	p.Meals[mealIdx].Items = append(items[:itemIdx], items[itemIdx+1:]...)
	p.Recompute()
	return nil
}

// SetQuantity changes one item's grams and recomputes stats.
func (p *DailyPlan) SetQuantity(mealIdx, itemIdx int, grams float64) error {
	if mealIdx < 0 || mealIdx >= len(p.Meals) {
		return fmt.Errorf("meal index %d out of range", mealIdx)
	}
	items := p.Meals[mealIdx].Items
	if itemIdx < 0 || itemIdx >= len(items) {
		return fmt.Errorf("item index %d out of range", itemIdx)
	}
	if grams <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	p.Meals[mealIdx].Items[itemIdx].Grams = grams
	p.Recompute()
	return nil
}

// Cooking yield factors by category; fruits, dairy and fats pass through.
// These conversions are informational only and never feed the macro math,
// which always uses the raw/as-eaten grams stored on the item.
var cookedYield = map[string]float64{
	"cereals":    2.5,
	"legumes":    2.2,
	"meats":      0.75,
	"fish":       0.8,
	"vegetables": 0.9,
	"tubers":     0.95,
}

// CookedWeight converts raw grams to the expected cooked serving weight.
func CookedWeight(category string, rawGrams float64) float64 {
	if factor, ok := cookedYield[category]; ok {
		return rawGrams * factor
	}
	return rawGrams
}

// GrossWeight converts raw grams to as-purchased grams using the food's
// waste factor (raw→edible yield).
func GrossWeight(rawGrams, wasteFactor float64) float64 {
	if wasteFactor <= 0 || wasteFactor > 1 {
		return rawGrams
	}
	return rawGrams / wasteFactor
}
