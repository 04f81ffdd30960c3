package nutrition

import (
	"math"
	"testing"
)

func TestActivityFactor(t *testing.T) {
	tests := []struct {
		level string
		want  float64
	}{
		{ActivitySedentary, 1.2},
		{ActivityLight, 1.375},
		{ActivityModerate, 1.55},
		{ActivityActive, 1.725},
		{ActivityVeryActive, 1.9},
		{ActivityUltra, 2.5},
		{"unknown", 1.2},
		{"", 1.2},
	}
	for _, tt := range tests {
		if got := ActivityFactor(tt.level); got != tt.want {
			t.Errorf("ActivityFactor(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestEstimateTDEEMifflin(t *testing.T) {
	res := EstimateTDEE(TDEEInput{
		Sex: "male", AgeYears: 30, WeightKg: 80, HeightCm: 180,
		Formula: FormulaMifflin, ActivityLevel: ActivitySedentary,
	})
	if math.Abs(res.BMR-1780) > 0.01 {
		t.Errorf("BMR = %v, want 1780", res.BMR)
	}
	if math.Abs(res.TDEE-2136) > 0.01 {
		t.Errorf("TDEE = %v, want 2136", res.TDEE)
	}
	if res.FormulaUsed != FormulaMifflin {
		t.Errorf("FormulaUsed = %q, want %q", res.FormulaUsed, FormulaMifflin)
	}

	female := EstimateTDEE(TDEEInput{
		Sex: "female", AgeYears: 30, WeightKg: 80, HeightCm: 180,
		Formula: FormulaMifflin, ActivityLevel: ActivitySedentary,
	})
	if math.Abs(female.BMR-1614) > 0.01 {
		t.Errorf("female BMR = %v, want 1614", female.BMR)
	}
}

func TestEstimateTDEEDefaultsByAge(t *testing.T) {
	adult := EstimateTDEE(TDEEInput{Sex: "male", AgeYears: 40, WeightKg: 80, HeightCm: 180, ActivityLevel: ActivityLight})
	if adult.FormulaUsed != FormulaMifflin {
		t.Errorf("adult default formula = %q, want %q", adult.FormulaUsed, FormulaMifflin)
	}

	child := EstimateTDEE(TDEEInput{Sex: "female", AgeYears: 10, WeightKg: 33, HeightCm: 140, ActivityLevel: ActivityModerate})
	if child.FormulaUsed != FormulaIOM {
		t.Errorf("pediatric default formula = %q, want %q", child.FormulaUsed, FormulaIOM)
	}
	if child.ActivityFactor != 1.0 {
		t.Errorf("pediatric EER activity factor = %v, want 1.0 (EER is already a total)", child.ActivityFactor)
	}
	if child.BMR != child.TDEE {
		t.Errorf("pediatric EER BMR %v != TDEE %v", child.BMR, child.TDEE)
	}
}

func TestEstimateTDEEHarrisBenedict(t *testing.T) {
	res := EstimateTDEE(TDEEInput{
		Sex: "male", AgeYears: 30, WeightKg: 80, HeightCm: 180,
		Formula: FormulaHarris, ActivityLevel: ActivitySedentary,
	})
	want := 66.473 + 13.7516*80 + 5.0033*180 - 6.755*30
	if math.Abs(res.BMR-want) > 0.01 {
		t.Errorf("BMR = %v, want %v", res.BMR, want)
	}
}

func TestEstimateTDEEHenry(t *testing.T) {
	res := EstimateTDEE(TDEEInput{
		Sex: "male", AgeYears: 30, WeightKg: 80, HeightCm: 180,
		Formula: FormulaHenry, ActivityLevel: ActivitySedentary,
	})
	if math.Abs(res.BMR-(14.2*80+593)) > 0.01 {
		t.Errorf("BMR = %v, want %v", res.BMR, 14.2*80+593)
	}
}

func TestEstimateTDEEFAOWHO(t *testing.T) {
	res := EstimateTDEE(TDEEInput{
		Sex: "male", AgeYears: 30, WeightKg: 80, HeightCm: 180,
		Formula: FormulaFAOWHO, ActivityLevel: ActivitySedentary,
	})
	if math.Abs(res.BMR-(11.6*80+879)) > 0.01 {
		t.Errorf("BMR = %v, want %v", res.BMR, 11.6*80+879)
	}
}

func TestEstimateTDEEKatch(t *testing.T) {
	withBF := EstimateTDEE(TDEEInput{
		Sex: "male", AgeYears: 30, WeightKg: 80, HeightCm: 180, BodyFatPct: 20,
		Formula: FormulaKatch, ActivityLevel: ActivitySedentary,
	})
	want := 370.0 + 21.6*64.0
	if math.Abs(withBF.BMR-want) > 0.01 {
		t.Errorf("Katch BMR = %v, want %v", withBF.BMR, want)
	}
	if withBF.FormulaUsed != FormulaKatch {
		t.Errorf("FormulaUsed = %q, want %q", withBF.FormulaUsed, FormulaKatch)
	}
}

func TestEstimateTDEEKatchFallback(t *testing.T) {
	res := EstimateTDEE(TDEEInput{
		Sex: "male", AgeYears: 30, WeightKg: 80, HeightCm: 180,
		Formula: FormulaKatch, ActivityLevel: ActivitySedentary,
	})
	if res.FormulaUsed != "fallback:"+FormulaMifflin {
		t.Errorf("FormulaUsed = %q, want disclosed fallback", res.FormulaUsed)
	}
	if math.Abs(res.BMR-1780) > 0.01 {
		t.Errorf("fallback BMR = %v, want Mifflin 1780", res.BMR)
	}
}

func TestIOMEERInfantBrackets(t *testing.T) {
	tests := []struct {
		name   string
		months int
		weight float64
		want   float64
	}{
		{"0-3 months", 2, 5, 89*5 - 100 + 175},
		{"4-6 months", 5, 7, 89*7 - 100 + 56},
		{"7-12 months", 9, 8.5, 89*8.5 - 100 + 22},
		{"13-35 months", 20, 11, 89*11 - 100 + 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EstimateTDEE(TDEEInput{
				Sex: "male", AgeMonths: tt.months, WeightKg: tt.weight, HeightCm: 75,
				Formula: FormulaIOM,
			})
			if math.Abs(res.TDEE-tt.want) > 0.01 {
				t.Errorf("TDEE = %v, want %v", res.TDEE, tt.want)
			}
		})
	}
}

func TestIOMEERChild(t *testing.T) {
	// Girl, 10 years, moderate activity (PA 1.31).
	res := EstimateTDEE(TDEEInput{
		Sex: "female", AgeYears: 10, AgeMonths: 120, WeightKg: 33, HeightCm: 140,
		Formula: FormulaIOM, ActivityLevel: ActivityModerate,
	})
	want := 135.3 - 30.8*10 + 1.31*(10*33+934*1.4) + 25
	if math.Abs(res.TDEE-want) > 0.01 {
		t.Errorf("TDEE = %v, want %v", res.TDEE, want)
	}
}
