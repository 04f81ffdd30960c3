package nutrition

import (
	"fmt"
	"math"
)

// Nutritional goal resolution. Every policy override substitutes a value and
// emits a warning; the caller gets the final numbers, the flags and the
// warnings together so a complete safety audit trail can be rendered.

// Calorie presets as a fraction of TDEE.
const (
	PresetMaintenance       = "maintenance"
	PresetLightDeficit      = "light_deficit"
	PresetModerateDeficit   = "moderate_deficit"
	PresetAggressiveDeficit = "aggressive_deficit"
	PresetLightSurplus      = "light_surplus"
	PresetModerateSurplus   = "moderate_surplus"
)

var caloriePresets = map[string]float64{
	PresetMaintenance:       0.0,
	PresetLightDeficit:      -0.10,
	PresetModerateDeficit:   -0.20,
	PresetAggressiveDeficit: -0.30,
	PresetLightSurplus:      0.10,
	PresetModerateSurplus:   0.20,
}

// Protein basis choices.
const (
	BasisTotal    = "total"
	BasisIdeal    = "ideal"
	BasisAdjusted = "adjusted"
	BasisLean     = "lean"
)

const (
	defaultCarbsPct      = 50.0
	defaultProteinGPerKg = 1.6

	minProteinPct = 10.0
	maxProteinPct = 45.0
	minFatPct     = 15.0
	maxFatPct     = 40.0

	adultFemaleCalorieFloor = 1200.0
	adultMaleCalorieFloor   = 1500.0
	pediatricCalorieFloor   = 400.0

	sarcopeniaProteinGPerKg = 1.2
	geriatricAgeYears       = 60
	obesityBMIThreshold     = 30.0
)

type GoalInput struct {
	TDEE TDEEResult

	Sex      string
	AgeYears int
	WeightKg float64
	HeightCm float64

	LeanMassKg float64 // 0 = unavailable

	CarbsPct        float64 // 0 = default 50
	ProteinGPerKg   float64 // 0 = default 1.6
	ProteinBasis    string  // "" = not explicitly set
	CaloriePreset   string  // "" = none
	ManualKcalDelta float64 // used only when no preset is set
	ActivityLevel   string
	Pregnant        bool
}

// ProteinBasisResult reports which weight figure scales the g/kg target.
type ProteinBasisResult struct {
	Basis    string  `json:"basis"`
	Label    string  `json:"label"`
	WeightKg float64 `json:"weight_kg"`
}

// MicroTargets are daily micronutrient targets.
type MicroTargets struct {
	CalciumMg   float64 `json:"calcium_mg"`
	IronMg      float64 `json:"iron_mg"`
	ZincMg      float64 `json:"zinc_mg"`
	VitaminAMcg float64 `json:"vitamin_a_mcg"`
	VitaminCMg  float64 `json:"vitamin_c_mg"`
	SodiumMg    float64 `json:"sodium_mg"`
	PotassiumMg float64 `json:"potassium_mg"`
	FiberG      float64 `json:"fiber_g"`
}

// Goals is the fully resolved, safety-clamped target set.
type Goals struct {
	Calories       float64 `json:"calories"`
	KcalAdjustment float64 `json:"kcal_adjustment"`

	ProteinG   float64 `json:"protein_g"`
	ProteinPct float64 `json:"protein_pct"`
	CarbsPct   float64 `json:"carbs_pct"`
	FatPct     float64 `json:"fat_pct"`

	Basis  ProteinBasisResult `json:"protein_basis"`
	Micros MicroTargets       `json:"micros"`

	AutoAdjustedForObesity  bool `json:"auto_adjusted_for_obesity"`
	PediatricDeficitBlocked bool `json:"pediatric_deficit_blocked"`
	CalorieFloorApplied     bool `json:"calorie_floor_applied"`
	GeriatricFloorApplied   bool `json:"geriatric_floor_applied"`

	Warnings []Warning `json:"warnings"`
}

// ResolveGoals runs the rule engine. Rules apply in a fixed order: protein
// basis, obesity auto-protection, protein grams, geriatric floor, calorie
// adjustment with the pediatric deficit block, the calorie floor, and
// finally the macro percentage split and micro targets.
func ResolveGoals(in GoalInput) Goals {
	g := Goals{}

	// 1-2. Protein basis, with the silent obesity substitution when the
	// clinician left the basis unset.
	basis := in.ProteinBasis
	bmi, bmiErr := CalculateBMI(in.HeightCm, in.WeightKg)
	if basis == "" {
		basis = BasisTotal
		if bmiErr == nil && bmi >= obesityBMIThreshold {
			basis = BasisAdjusted
			g.AutoAdjustedForObesity = true
			g.Warnings = append(g.Warnings, Warning{
				Code:     "obesity_adjusted_basis",
				Severity: Caution,
				Message:  fmt.Sprintf("BMI %.1f ≥ 30: protein target switched to adjusted body weight to avoid overfeeding protein against total mass.", bmi),
				Metric:   "bmi",
				Value:    round1(bmi),
				Limit:    obesityBMIThreshold,
			})
		}
	}
	g.Basis = resolveBasisWeight(basis, in, &g.Warnings)

	// 3. Protein grams from the g/kg ratio.
	ratio := in.ProteinGPerKg
	if ratio <= 0 {
		ratio = defaultProteinGPerKg
	}
	g.ProteinG = ratio * g.Basis.WeightKg

	// 4. Geriatric sarcopenia floor against actual body weight.
	if in.AgeYears >= geriatricAgeYears {
		floor := sarcopeniaProteinGPerKg * in.WeightKg * geriatricActivityAdjust(in.ActivityLevel)
		if g.ProteinG < floor {
			g.ProteinG = floor
			g.GeriatricFloorApplied = true
			g.Warnings = append(g.Warnings, Warning{
				Code:     "geriatric_protein_floor",
				Severity: Caution,
				Message:  fmt.Sprintf("Protein raised to the sarcopenia-safe minimum of %.0f g/day for patients 60 and older.", floor),
				Metric:   "protein_g",
				Value:    round1(floor),
			})
		}
	}

	// 8. Calorie adjustment: preset first, manual delta otherwise, and the
	// pediatric deficit block over both.
	delta := in.ManualKcalDelta
	if in.CaloriePreset != "" {
		if pct, ok := caloriePresets[in.CaloriePreset]; ok {
			delta = in.TDEE.TDEE * pct
		}
	}
	if in.AgeYears < 18 && delta < 0 {
		g.PediatricDeficitBlocked = true
		g.Warnings = append(g.Warnings, Warning{
			Code:     "pediatric_deficit_blocked",
			Severity: High,
			Message:  "Calorie deficit blocked: growth must never be deliberately restricted in patients under 18. The selected adjustment was set to zero.",
			Metric:   "kcal_adjustment",
			Value:    round1(delta),
		})
		delta = 0
	}
	g.KcalAdjustment = delta

	// 9. Total calories with the population floor.
	calories := in.TDEE.TDEE + delta
	floor := calorieFloor(in.Sex, in.AgeYears)
	if calories < floor {
		g.CalorieFloorApplied = true
		g.Warnings = append(g.Warnings, Warning{
			Code:     "calorie_floor_applied",
			Severity: High,
			Message:  fmt.Sprintf("Computed target of %.0f kcal is below the safe minimum; raised to %.0f kcal.", calories, floor),
			Metric:   "calories",
			Value:    round1(calories),
			Limit:    floor,
		})
		calories = floor
	}
	g.Calories = calories

	// 5-7. Macro percentages against the final calorie target. Carbs come
	// from config, protein from the resolved grams, fat takes the rest with
	// its own clamp. The three are deliberately not re-normalized after
	// clamping; drift beyond a point is surfaced instead.
	g.ProteinPct = clamp(g.ProteinG*4.0/calories*100.0, minProteinPct, maxProteinPct)
	g.CarbsPct = in.CarbsPct
	if g.CarbsPct <= 0 {
		g.CarbsPct = defaultCarbsPct
	}
	g.FatPct = clamp(100.0-g.ProteinPct-g.CarbsPct, minFatPct, maxFatPct)
	if drift := math.Abs(g.ProteinPct + g.CarbsPct + g.FatPct - 100.0); drift > 1.0 {
		g.Warnings = append(g.Warnings, Warning{
			Code:     "macro_sum_drift",
			Severity: Info,
			Message:  fmt.Sprintf("Macro percentages sum to %.1f%% after clamping; shown as-is rather than re-normalized.", g.ProteinPct+g.CarbsPct+g.FatPct),
			Metric:   "macro_pct_sum",
			Value:    round1(g.ProteinPct + g.CarbsPct + g.FatPct),
			Limit:    100,
		})
	}

	g.Micros = microTargets(in.Sex, in.AgeYears, in.Pregnant)
	return g
}

func resolveBasisWeight(basis string, in GoalInput, warnings *[]Warning) ProteinBasisResult {
	switch basis {
	case BasisIdeal:
		return ProteinBasisResult{Basis: BasisIdeal, Label: "ideal body weight (Devine)", WeightKg: devineIdealWeight(in.Sex, in.HeightCm)}
	case BasisAdjusted:
		ideal := devineIdealWeight(in.Sex, in.HeightCm)
		adjusted := ideal + 0.25*(in.WeightKg-ideal)
		return ProteinBasisResult{Basis: BasisAdjusted, Label: "adjusted body weight", WeightKg: adjusted}
	case BasisLean:
		if in.LeanMassKg > 0 {
			return ProteinBasisResult{Basis: BasisLean, Label: "lean body mass", WeightKg: in.LeanMassKg}
		}
		*warnings = append(*warnings, Warning{
			Code:     "lean_mass_unavailable",
			Severity: Caution,
			Message:  "Lean mass basis selected but no body-composition estimate is available; using total body weight instead.",
		})
		return ProteinBasisResult{Basis: BasisTotal, Label: "total body weight", WeightKg: in.WeightKg}
	default:
		return ProteinBasisResult{Basis: BasisTotal, Label: "total body weight", WeightKg: in.WeightKg}
	}
}

// Devine formula; below 152.4 cm the base weight is used unmodified.
func devineIdealWeight(sex string, heightCm float64) float64 {
	inches := heightCm / 2.54
	over := inches - 60.0
	if over < 0 {
		over = 0
	}
	if sex == "female" {
		return 45.5 + 2.3*over
	}
	return 50.0 + 2.3*over
}

func geriatricActivityAdjust(level string) float64 {
	switch level {
	case ActivityModerate:
		return 1.1
	case ActivityActive, ActivityVeryActive, ActivityUltra:
		return 1.2
	default:
		return 1.0
	}
}

func calorieFloor(sex string, ageYears int) float64 {
	if ageYears < 18 {
		return pediatricCalorieFloor
	}
	if sex == "female" {
		return adultFemaleCalorieFloor
	}
	return adultMaleCalorieFloor
}

// Daily micronutrient targets by population bracket.
func microTargets(sex string, ageYears int, pregnant bool) MicroTargets {
	switch {
	case ageYears < 9:
		return MicroTargets{CalciumMg: 1000, IronMg: 10, ZincMg: 5, VitaminAMcg: 400, VitaminCMg: 25, SodiumMg: 1500, PotassiumMg: 2300, FiberG: 19}
	case ageYears < 19:
		return MicroTargets{CalciumMg: 1300, IronMg: 11, ZincMg: 9, VitaminAMcg: 700, VitaminCMg: 65, SodiumMg: 2300, PotassiumMg: 3000, FiberG: 26}
	case sex == "female" && pregnant:
		return MicroTargets{CalciumMg: 1000, IronMg: 27, ZincMg: 11, VitaminAMcg: 770, VitaminCMg: 85, SodiumMg: 2300, PotassiumMg: 2900, FiberG: 28}
	case sex == "female" && ageYears < 51:
		return MicroTargets{CalciumMg: 1000, IronMg: 18, ZincMg: 8, VitaminAMcg: 700, VitaminCMg: 75, SodiumMg: 2300, PotassiumMg: 2600, FiberG: 25}
	case sex == "female":
		return MicroTargets{CalciumMg: 1200, IronMg: 8, ZincMg: 8, VitaminAMcg: 700, VitaminCMg: 75, SodiumMg: 2300, PotassiumMg: 2600, FiberG: 22}
	case ageYears < 51:
		return MicroTargets{CalciumMg: 1000, IronMg: 8, ZincMg: 11, VitaminAMcg: 900, VitaminCMg: 90, SodiumMg: 2300, PotassiumMg: 3400, FiberG: 38}
	default:
		return MicroTargets{CalciumMg: 1200, IronMg: 8, ZincMg: 11, VitaminAMcg: 900, VitaminCMg: 90, SodiumMg: 2300, PotassiumMg: 3400, FiberG: 30}
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
