package nutrition

import (
	"math"
	"strings"
	"testing"
)

func TestPediatricNutritionPlanBrackets(t *testing.T) {
	tests := []struct {
		months  int
		bracket string
	}{
		{0, "0-6 months"},
		{5, "0-6 months"},
		{7, "6-9 months"},
		{10, "9-12 months"},
		{18, "12-24 months"},
		{30, "24-36 months"},
		{36, "24-36 months"},
	}
	for _, tt := range tests {
		plan, err := PediatricNutritionPlan(tt.months, "exclusive")
		if err != nil {
			t.Fatalf("PediatricNutritionPlan(%d) error: %v", tt.months, err)
		}
		if plan.AgeBracket != tt.bracket {
			t.Errorf("months %d bracket = %q, want %q", tt.months, plan.AgeBracket, tt.bracket)
		}
	}
}

func TestPediatricNutritionPlanOutOfRange(t *testing.T) {
	if _, err := PediatricNutritionPlan(40, "exclusive"); err == nil {
		t.Error("40 months accepted, want error")
	}
	if _, err := PediatricNutritionPlan(-1, "exclusive"); err == nil {
		t.Error("negative age accepted, want error")
	}
}

func TestPediatricNutritionPlanForbiddenFoods(t *testing.T) {
	infant, _ := PediatricNutritionPlan(3, "exclusive")
	foundHoney := false
	for _, f := range infant.ForbiddenFoods {
		if strings.Contains(f, "honey") {
			foundHoney = true
		}
	}
	if !foundHoney {
		t.Error("honey missing from forbidden foods under 6 months")
	}
	if len(infant.IronRichFoods) != 0 {
		t.Error("complementary iron foods listed before 6 months")
	}

	older, _ := PediatricNutritionPlan(10, "exclusive")
	if len(older.IronRichFoods) == 0 {
		t.Error("no iron-rich foods listed at 10 months")
	}
}

func TestPediatricNutritionPlanLactationText(t *testing.T) {
	excl, _ := PediatricNutritionPlan(3, "exclusive")
	if !strings.Contains(excl.Breastfeeding, "exclusive") {
		t.Errorf("exclusive text = %q", excl.Breastfeeding)
	}
	formula, _ := PediatricNutritionPlan(3, "formula")
	if !strings.Contains(formula.Breastfeeding, "formula") {
		t.Errorf("formula text = %q", formula.Breastfeeding)
	}
}

func TestAltitudeHbCorrection(t *testing.T) {
	tests := []struct {
		altitude float64
		want     float64
	}{
		{0, 0},
		{999, 0},
		{1000, 0.2},
		{1499, 0.2},
		{1500, 0.5},
		{2000, 0.8},
		{2500, 1.3},
		{3000, 1.9},
		{3500, 2.7},
		{4000, 3.5},
		{4500, 4.5},
		{5100, 4.5},
	}
	for _, tt := range tests {
		if got := altitudeHbCorrection(tt.altitude); got != tt.want {
			t.Errorf("altitudeHbCorrection(%v) = %v, want %v", tt.altitude, got, tt.want)
		}
	}
}

func TestResolveIronProtocolSeverity(t *testing.T) {
	tests := []struct {
		name     string
		hb       float64
		altitude float64
		want     string
	}{
		{"normal at sea level", 12.5, 0, "none"},
		{"mild", 10.5, 0, "mild"},
		{"moderate", 8.0, 0, "moderate"},
		{"severe", 6.5, 0, "severe"},
		{"altitude unmasks anemia", 11.5, 3200, "moderate"}, // corrected 11.5-1.9 = 9.6
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: tt.hb, AltitudeM: tt.altitude, AgeMonths: 24, WeightKg: 12})
			if out.Severity != tt.want {
				t.Errorf("Severity = %q (corrected %v), want %q", out.Severity, out.CorrectedHb, tt.want)
			}
		})
	}
}

func TestResolveIronProtocolWithoutLabValue(t *testing.T) {
	// No hemoglobin: the recorded status picks the scheme, severity stays
	// unknown and the altitude correction must not manufacture a reading.
	anemic := ResolveIronProtocol(AnemiaInput{Anemia: true, AltitudeM: 3800, AgeMonths: 18, WeightKg: 11})
	if anemic.Severity != "unknown" {
		t.Errorf("Severity = %q, want unknown", anemic.Severity)
	}
	if anemic.ProtocolType != "curative treatment" {
		t.Errorf("ProtocolType = %q, want curative treatment", anemic.ProtocolType)
	}
	if anemic.CorrectedHb != 0 || anemic.HbCorrection != 0 {
		t.Errorf("corrected Hb %v (correction %v) reported with no lab value", anemic.CorrectedHb, anemic.HbCorrection)
	}
	if hasWarning(anemic.Warnings, "severe_anemia_referral") {
		t.Error("severe_anemia_referral raised without a hemoglobin value")
	}
	if hasWarning(anemic.Warnings, "altitude_hb_correction") {
		t.Error("altitude_hb_correction raised without a hemoglobin value")
	}
	if !hasWarning(anemic.Warnings, "anemia_status_only") {
		t.Error("missing anemia_status_only info warning")
	}

	healthy := ResolveIronProtocol(AnemiaInput{Anemia: false, AgeMonths: 18, WeightKg: 11})
	if healthy.ProtocolType != "preventive supplementation" {
		t.Errorf("ProtocolType = %q, want preventive supplementation", healthy.ProtocolType)
	}
	if math.Abs(healthy.DoseMgPerDay-11) > 1e-9 {
		t.Errorf("preventive dose = %v mg, want 1 mg/kg = 11", healthy.DoseMgPerDay)
	}
}

func TestResolveIronProtocolAdultCutoffs(t *testing.T) {
	male := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 12.5, Sex: "male", AgeMonths: 360, WeightKg: 70})
	if male.Severity != "mild" {
		t.Errorf("adult male at 12.5 g/dL: Severity = %q, want mild", male.Severity)
	}
	female := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 12.5, Sex: "female", AgeMonths: 360, WeightKg: 60})
	if female.Severity != "none" {
		t.Errorf("adult female at 12.5 g/dL: Severity = %q, want none", female.Severity)
	}
}

func TestResolveIronProtocolCurativeDose(t *testing.T) {
	out := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 9.5, AgeMonths: 24, WeightKg: 12})
	if out.ProtocolType != "curative treatment" {
		t.Fatalf("ProtocolType = %q, want curative treatment", out.ProtocolType)
	}
	if math.Abs(out.DoseMgPerDay-36) > 1e-9 {
		t.Errorf("dose = %v mg, want 3 mg/kg = 36", out.DoseMgPerDay)
	}
	// 36 mg at 25 mg/mL and 20 drops/mL.
	if math.Abs(out.DropsPerDay-28.8) > 0.05 {
		t.Errorf("drops = %v, want 28.8", out.DropsPerDay)
	}
	// 36 mg at 15 mg per 5 mL.
	if math.Abs(out.SyrupMLPerDay-12) > 0.05 {
		t.Errorf("syrup = %v mL, want 12", out.SyrupMLPerDay)
	}
}

func TestResolveIronProtocolCurativeDoseCap(t *testing.T) {
	out := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 9.5, AgeMonths: 30, WeightKg: 25})
	if out.DoseMgPerDay != 60 {
		t.Errorf("dose = %v mg, want cap at 60", out.DoseMgPerDay)
	}
}

func TestResolveIronProtocolPreventive(t *testing.T) {
	term := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 12, AgeMonths: 6, WeightKg: 8})
	if term.ProtocolType != "preventive supplementation" {
		t.Fatalf("ProtocolType = %q", term.ProtocolType)
	}
	if math.Abs(term.DoseMgPerDay-8) > 1e-9 {
		t.Errorf("term dose = %v mg, want 1 mg/kg = 8", term.DoseMgPerDay)
	}

	premature := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 12, AgeMonths: 6, WeightKg: 4, Premature: true})
	if math.Abs(premature.DoseMgPerDay-8) > 1e-9 {
		t.Errorf("premature dose = %v mg, want 2 mg/kg = 8", premature.DoseMgPerDay)
	}
}

func TestResolveIronProtocolPregnancy(t *testing.T) {
	anemic := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 9.8, WeightKg: 60, Pregnant: true})
	if anemic.DoseMgPerDay != 120 {
		t.Errorf("anemic gestational dose = %v, want 120", anemic.DoseMgPerDay)
	}
	normal := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 12.5, WeightKg: 60, Pregnant: true})
	if normal.DoseMgPerDay != 60 {
		t.Errorf("preventive gestational dose = %v, want 60", normal.DoseMgPerDay)
	}
}

func TestResolveIronProtocolWarnings(t *testing.T) {
	severe := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 6.0, AgeMonths: 18, WeightKg: 10})
	if !hasWarning(severe.Warnings, "severe_anemia_referral") {
		t.Error("missing severe_anemia_referral warning")
	}

	altitude := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 13, AltitudeM: 3800, AgeMonths: 18, WeightKg: 10})
	if !hasWarning(altitude.Warnings, "altitude_hb_correction") {
		t.Error("missing altitude_hb_correction info warning")
	}
	if altitude.HbCorrection != 2.7 {
		t.Errorf("HbCorrection = %v, want 2.7", altitude.HbCorrection)
	}
}

func TestIronMenuGuidanceByAge(t *testing.T) {
	infant := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 12, AgeMonths: 3, WeightKg: 6})
	if len(infant.MenuGuidance) == 0 || !strings.Contains(infant.MenuGuidance[0], "breastfeeding") {
		t.Errorf("infant guidance = %v", infant.MenuGuidance)
	}

	toddler := ResolveIronProtocol(AnemiaInput{HemoglobinGdl: 10.5, AgeMonths: 18, WeightKg: 11})
	if len(toddler.MenuGuidance) < 2 {
		t.Errorf("toddler guidance too short: %v", toddler.MenuGuidance)
	}
}
