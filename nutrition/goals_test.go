package nutrition

import (
	"math"
	"testing"
)

func hasWarning(warnings []Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestResolveGoalsDefaults(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:     TDEEResult{TDEE: 2400},
		Sex:      "male",
		AgeYears: 30,
		WeightKg: 75,
		HeightCm: 178,
	})

	if g.Basis.Basis != BasisTotal {
		t.Errorf("basis = %q, want total", g.Basis.Basis)
	}
	if math.Abs(g.ProteinG-1.6*75) > 1e-9 {
		t.Errorf("ProteinG = %v, want %v", g.ProteinG, 1.6*75)
	}
	if g.Calories != 2400 {
		t.Errorf("Calories = %v, want 2400", g.Calories)
	}
	if g.CarbsPct != 50 {
		t.Errorf("CarbsPct = %v, want default 50", g.CarbsPct)
	}
	sum := g.ProteinPct + g.CarbsPct + g.FatPct
	if math.Abs(sum-100) > 1.0 {
		t.Errorf("macro percentages sum to %v, want within 1 of 100", sum)
	}
}

func TestResolveGoalsPediatricDeficitBlocked(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:          TDEEResult{TDEE: 1800},
		Sex:           "male",
		AgeYears:      10,
		WeightKg:      33,
		HeightCm:      140,
		CaloriePreset: PresetModerateDeficit,
	})

	if !g.PediatricDeficitBlocked {
		t.Error("PediatricDeficitBlocked = false, want true")
	}
	if g.KcalAdjustment != 0 {
		t.Errorf("KcalAdjustment = %v, want 0 after block", g.KcalAdjustment)
	}
	if g.Calories != 1800 {
		t.Errorf("Calories = %v, want unreduced 1800", g.Calories)
	}
	if !hasWarning(g.Warnings, "pediatric_deficit_blocked") {
		t.Error("missing pediatric_deficit_blocked warning")
	}
}

func TestResolveGoalsPediatricManualDeficitBlocked(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:            TDEEResult{TDEE: 1800},
		Sex:             "female",
		AgeYears:        15,
		WeightKg:        50,
		HeightCm:        158,
		ManualKcalDelta: -300,
	})
	if !g.PediatricDeficitBlocked || g.KcalAdjustment != 0 {
		t.Errorf("manual pediatric deficit not blocked: blocked=%v delta=%v", g.PediatricDeficitBlocked, g.KcalAdjustment)
	}
}

func TestResolveGoalsPediatricSurplusAllowed(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:          TDEEResult{TDEE: 1800},
		Sex:           "male",
		AgeYears:      10,
		WeightKg:      30,
		HeightCm:      138,
		CaloriePreset: PresetLightSurplus,
	})
	if g.PediatricDeficitBlocked {
		t.Error("surplus wrongly blocked for a pediatric patient")
	}
	if math.Abs(g.KcalAdjustment-180) > 1e-9 {
		t.Errorf("KcalAdjustment = %v, want +180", g.KcalAdjustment)
	}
}

func TestResolveGoalsObesityAutoAdjust(t *testing.T) {
	// BMI 100/(1.70^2) = 34.6, basis left unset.
	g := ResolveGoals(GoalInput{
		TDEE:     TDEEResult{TDEE: 2600},
		Sex:      "male",
		AgeYears: 45,
		WeightKg: 100,
		HeightCm: 170,
	})

	if !g.AutoAdjustedForObesity {
		t.Error("AutoAdjustedForObesity = false, want true")
	}
	if g.Basis.Basis != BasisAdjusted {
		t.Errorf("basis = %q, want adjusted", g.Basis.Basis)
	}
	if !hasWarning(g.Warnings, "obesity_adjusted_basis") {
		t.Error("missing obesity_adjusted_basis warning")
	}

	ideal := devineIdealWeight("male", 170)
	wantWeight := ideal + 0.25*(100-ideal)
	if math.Abs(g.Basis.WeightKg-wantWeight) > 0.01 {
		t.Errorf("basis weight = %v, want %v", g.Basis.WeightKg, wantWeight)
	}
}

func TestResolveGoalsExplicitBasisWinsOverObesity(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:         TDEEResult{TDEE: 2600},
		Sex:          "male",
		AgeYears:     45,
		WeightKg:     100,
		HeightCm:     170,
		ProteinBasis: BasisTotal,
	})
	if g.AutoAdjustedForObesity {
		t.Error("explicit basis overridden by obesity rule")
	}
	if g.Basis.WeightKg != 100 {
		t.Errorf("basis weight = %v, want total 100", g.Basis.WeightKg)
	}
}

func TestResolveGoalsLeanBasisUnavailable(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:         TDEEResult{TDEE: 2200},
		Sex:          "female",
		AgeYears:     28,
		WeightKg:     62,
		HeightCm:     165,
		ProteinBasis: BasisLean,
	})
	if g.Basis.Basis != BasisTotal {
		t.Errorf("basis = %q, want fallback to total", g.Basis.Basis)
	}
	if !hasWarning(g.Warnings, "lean_mass_unavailable") {
		t.Error("missing lean_mass_unavailable warning")
	}
}

func TestResolveGoalsGeriatricFloor(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:          TDEEResult{TDEE: 2000},
		Sex:           "male",
		AgeYears:      65,
		WeightKg:      70,
		HeightCm:      172,
		ProteinGPerKg: 0.8,
		ActivityLevel: ActivitySedentary,
	})

	want := 1.2 * 70.0
	if !g.GeriatricFloorApplied {
		t.Error("GeriatricFloorApplied = false, want true")
	}
	if math.Abs(g.ProteinG-want) > 1e-9 {
		t.Errorf("ProteinG = %v, want floor %v", g.ProteinG, want)
	}
	if !hasWarning(g.Warnings, "geriatric_protein_floor") {
		t.Error("missing geriatric_protein_floor warning")
	}
}

func TestResolveGoalsGeriatricFloorActivityAdjusted(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:          TDEEResult{TDEE: 2400},
		Sex:           "male",
		AgeYears:      68,
		WeightKg:      70,
		HeightCm:      172,
		ProteinGPerKg: 0.8,
		ActivityLevel: ActivityActive,
	})
	want := 1.2 * 70.0 * 1.2
	if math.Abs(g.ProteinG-want) > 1e-9 {
		t.Errorf("ProteinG = %v, want activity-adjusted floor %v", g.ProteinG, want)
	}
}

func TestResolveGoalsGeriatricFloorNotLowering(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:          TDEEResult{TDEE: 2200},
		Sex:           "male",
		AgeYears:      65,
		WeightKg:      70,
		HeightCm:      172,
		ProteinGPerKg: 2.0,
	})
	if g.GeriatricFloorApplied {
		t.Error("floor applied although the configured target already exceeds it")
	}
	if math.Abs(g.ProteinG-140) > 1e-9 {
		t.Errorf("ProteinG = %v, want 140", g.ProteinG)
	}
}

func TestResolveGoalsCalorieFloor(t *testing.T) {
	g := ResolveGoals(GoalInput{
		TDEE:          TDEEResult{TDEE: 1400},
		Sex:           "female",
		AgeYears:      35,
		WeightKg:      55,
		HeightCm:      160,
		CaloriePreset: PresetAggressiveDeficit,
	})

	if !g.CalorieFloorApplied {
		t.Error("CalorieFloorApplied = false, want true")
	}
	if g.Calories != 1200 {
		t.Errorf("Calories = %v, want floor 1200", g.Calories)
	}
	if !hasWarning(g.Warnings, "calorie_floor_applied") {
		t.Error("missing calorie_floor_applied warning")
	}

	male := ResolveGoals(GoalInput{
		TDEE:            TDEEResult{TDEE: 1600},
		Sex:             "male",
		AgeYears:        35,
		WeightKg:        60,
		HeightCm:        170,
		ManualKcalDelta: -400,
	})
	if male.Calories != 1500 {
		t.Errorf("male Calories = %v, want floor 1500", male.Calories)
	}
}

func TestResolveGoalsMacroDriftWarning(t *testing.T) {
	// 3 g/kg on 100 kg against 2000 kcal forces the protein clamp to 45%,
	// leaving carbs 50 and fat clamped up to 15: sum 110.
	g := ResolveGoals(GoalInput{
		TDEE:          TDEEResult{TDEE: 2000},
		Sex:           "male",
		AgeYears:      30,
		WeightKg:      100,
		HeightCm:      190,
		ProteinBasis:  BasisTotal,
		ProteinGPerKg: 3.0,
	})
	if g.ProteinPct != maxProteinPct {
		t.Errorf("ProteinPct = %v, want clamp %v", g.ProteinPct, maxProteinPct)
	}
	if g.FatPct != minFatPct {
		t.Errorf("FatPct = %v, want clamp %v", g.FatPct, minFatPct)
	}
	if !hasWarning(g.Warnings, "macro_sum_drift") {
		t.Error("missing macro_sum_drift warning for a clamped split")
	}
}

func TestResolveGoalsMicroTargets(t *testing.T) {
	pregnant := ResolveGoals(GoalInput{
		TDEE:     TDEEResult{TDEE: 2300},
		Sex:      "female",
		AgeYears: 28,
		WeightKg: 65,
		HeightCm: 162,
		Pregnant: true,
	})
	if pregnant.Micros.IronMg != 27 {
		t.Errorf("pregnant iron target = %v, want 27", pregnant.Micros.IronMg)
	}

	adultMale := ResolveGoals(GoalInput{
		TDEE:     TDEEResult{TDEE: 2500},
		Sex:      "male",
		AgeYears: 30,
		WeightKg: 78,
		HeightCm: 180,
	})
	if adultMale.Micros.IronMg != 8 || adultMale.Micros.ZincMg != 11 {
		t.Errorf("adult male micros = %+v", adultMale.Micros)
	}
}

func TestDevineIdealWeight(t *testing.T) {
	tests := []struct {
		sex      string
		heightCm float64
		want     float64
	}{
		{"male", 177.8, 50.0 + 2.3*10},   // 70 inches
		{"female", 162.56, 45.5 + 2.3*4}, // 64 inches
		{"male", 150, 50.0},              // below 60 inches, base only
		{"female", 150, 45.5},
	}
	for _, tt := range tests {
		if got := devineIdealWeight(tt.sex, tt.heightCm); math.Abs(got-tt.want) > 0.01 {
			t.Errorf("devineIdealWeight(%q, %v) = %v, want %v", tt.sex, tt.heightCm, got, tt.want)
		}
	}
}
