package nutrition

import (
	"math"
	"testing"

	"backend/models"
)

func sfReading(site string, mm float64) models.SkinfoldReading {
	return models.SkinfoldReading{Site: site, Val1: mm, Val2: mm, FinalMM: mm}
}

// fullProfile is a complete adult ISAK measurement used across tests.
func fullProfile() *models.Measurement {
	return &models.Measurement{
		WeightKg: 75,
		HeightCm: 178,
		Skinfolds: []models.SkinfoldReading{
			sfReading(SkinfoldTriceps, 10),
			sfReading(SkinfoldSubscapular, 12),
			sfReading(SkinfoldBiceps, 6),
			sfReading(SkinfoldIliacCrest, 14),
			sfReading(SkinfoldSupraspinale, 8),
			sfReading(SkinfoldAbdominal, 16),
			sfReading(SkinfoldFrontThigh, 13),
			sfReading(SkinfoldMedialCalf, 9),
		},
		Girths: []models.GirthReading{
			{Site: GirthRelaxedArm, ValueCm: 30},
			{Site: GirthFlexedArm, ValueCm: 32},
			{Site: GirthMidThigh, ValueCm: 55},
			{Site: GirthCalf, ValueCm: 37},
		},
		Breadths: []models.BreadthReading{
			{Site: BreadthHumerus, ValueCm: 7},
			{Site: BreadthFemur, ValueCm: 9.5},
		},
	}
}

func TestCalculateBMI(t *testing.T) {
	got, err := CalculateBMI(180, 81)
	if err != nil {
		t.Fatalf("CalculateBMI returned error: %v", err)
	}
	if math.Abs(got-25.0) > 1e-9 {
		t.Errorf("CalculateBMI(180, 81) = %v, want 25.0", got)
	}

	for _, tt := range []struct {
		name   string
		height float64
		weight float64
	}{
		{"zero height", 0, 80},
		{"zero weight", 180, 0},
		{"implausible height", 30, 80},
		{"implausible weight", 180, 600},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CalculateBMI(tt.height, tt.weight); err == nil {
				t.Errorf("CalculateBMI(%v, %v) expected error", tt.height, tt.weight)
			}
		})
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{17, "Underweight"},
		{22, "Normal weight"},
		{27, "Overweight"},
		{32, "Obesity class I"},
		{37, "Obesity class II"},
		{42, "Obesity class III"},
	}
	for _, tt := range tests {
		if got := BMICategory(tt.bmi); got != tt.want {
			t.Errorf("BMICategory(%v) = %q, want %q", tt.bmi, got, tt.want)
		}
	}
}

func TestBodyFatByProfile(t *testing.T) {
	m := fullProfile()

	tests := []struct {
		name    string
		profile ProfileType
		sex     string
		age     int
		method  string
		want    float64
	}{
		// Yuhasz sum of six = 10+12+8+16+13+9 = 68.
		{"athlete male yuhasz", ProfileAthlete, "male", 30, "yuhasz", 0.1051*68 + 2.585},
		{"athlete female yuhasz", ProfileAthlete, "female", 30, "yuhasz", 0.1548*68 + 3.580},
		// Faulkner sum of four = 10+12+8+16 = 46.
		{"control faulkner", ProfileControl, "male", 30, "faulkner", 0.153*46 + 5.783},
		// Deurenberg from BMI 23.67 at age 40.
		{"rapid deurenberg", ProfileRapid, "male", 40, "deurenberg", 1.2*(75/(1.78*1.78)) + 0.23*40 - 10.8 - 5.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BodyFat(m, tt.sex, tt.profile, tt.age)
			if !ok {
				t.Fatal("BodyFat returned ok=false")
			}
			if got.Method != tt.method {
				t.Errorf("Method = %q, want %q", got.Method, tt.method)
			}
			if math.Abs(got.Percent-tt.want) > 0.01 {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.want)
			}
		})
	}
}

func TestBodyFatDurninWomersley(t *testing.T) {
	m := fullProfile()
	// Sum of four (biceps, triceps, subscapular, iliac crest) = 42.
	got, ok := BodyFat(m, "male", ProfileGeneral, 35)
	if !ok {
		t.Fatal("BodyFat returned ok=false")
	}
	if got.Method != "durnin_womersley" {
		t.Fatalf("Method = %q, want durnin_womersley", got.Method)
	}
	density := 1.1422 - 0.0544*math.Log10(42)
	want := 495.0/density - 450.0
	if math.Abs(got.Percent-want) > 0.01 {
		t.Errorf("Percent = %v, want %v", got.Percent, want)
	}
}

func TestBodyFatFallsBackToYuhasz(t *testing.T) {
	// Six Yuhasz sites present but no biceps or iliac crest, so the general
	// profile's Durnin-Womersley cannot run.
	m := fullProfile()
	var kept []models.SkinfoldReading
	for _, s := range m.Skinfolds {
		if s.Site == SkinfoldBiceps || s.Site == SkinfoldIliacCrest {
			continue
		}
		kept = append(kept, s)
	}
	m.Skinfolds = kept

	got, ok := BodyFat(m, "male", ProfileGeneral, 35)
	if !ok {
		t.Fatal("BodyFat returned ok=false, want fallback result")
	}
	if got.Method != "fallback:yuhasz" {
		t.Errorf("Method = %q, want fallback:yuhasz", got.Method)
	}
}

func TestBodyFatNoData(t *testing.T) {
	m := &models.Measurement{WeightKg: 75}
	if _, ok := BodyFat(m, "male", ProfileAthlete, 30); ok {
		t.Error("BodyFat with no skinfolds returned ok=true")
	}
}

func TestBodyFatClampedToMinimum(t *testing.T) {
	m := fullProfile()
	for i := range m.Skinfolds {
		m.Skinfolds[i].FinalMM = 0.5
	}
	got, ok := BodyFat(m, "male", ProfileAthlete, 25)
	if !ok {
		t.Fatal("BodyFat returned ok=false")
	}
	if got.Percent != minBodyFatPct {
		t.Errorf("Percent = %v, want clamp at %v", got.Percent, minBodyFatPct)
	}
}

func TestFiveComponentFractionationSumsToWeight(t *testing.T) {
	m := fullProfile()
	f := FiveComponentFractionation(m, "male")
	if f == nil {
		t.Fatal("FiveComponentFractionation returned nil for a complete profile")
	}
	sum := f.AdiposeKg + f.MuscleKg + f.BoneKg + f.ResidualKg + f.SkinKg
	if math.Abs(sum-m.WeightKg) > 1e-6 {
		t.Errorf("components sum to %v, want body weight %v", sum, m.WeightKg)
	}
	for name, v := range map[string]float64{
		"adipose": f.AdiposeKg, "muscle": f.MuscleKg, "bone": f.BoneKg,
		"residual": f.ResidualKg, "skin": f.SkinKg,
	} {
		if v <= 0 {
			t.Errorf("%s component = %v, want positive", name, v)
		}
	}
}

func TestFiveComponentFractionationMissingInput(t *testing.T) {
	m := fullProfile()
	var kept []models.BreadthReading
	for _, b := range m.Breadths {
		if b.Site == BreadthHumerus {
			continue
		}
		kept = append(kept, b)
	}
	m.Breadths = kept

	if f := FiveComponentFractionation(m, "male"); f != nil {
		t.Errorf("FiveComponentFractionation without humerus breadth = %+v, want nil", f)
	}
}

func TestFiveComponentFractionationSexResidual(t *testing.T) {
	m := fullProfile()
	male := FiveComponentFractionation(m, "male")
	female := FiveComponentFractionation(m, "female")
	if male == nil || female == nil {
		t.Fatal("fractionation returned nil")
	}
	if math.Abs(male.ResidualKg-0.241*m.WeightKg) > 1e-9 {
		t.Errorf("male residual = %v, want %v", male.ResidualKg, 0.241*m.WeightKg)
	}
	if math.Abs(female.ResidualKg-0.209*m.WeightKg) > 1e-9 {
		t.Errorf("female residual = %v, want %v", female.ResidualKg, 0.209*m.WeightKg)
	}
}

func TestHeathCarterSomatotype(t *testing.T) {
	m := &models.Measurement{
		WeightKg: 70,
		HeightCm: 175,
		Skinfolds: []models.SkinfoldReading{
			sfReading(SkinfoldTriceps, 10),
			sfReading(SkinfoldSubscapular, 12),
			sfReading(SkinfoldSupraspinale, 8),
			sfReading(SkinfoldMedialCalf, 9),
		},
		Girths: []models.GirthReading{
			{Site: GirthFlexedArm, ValueCm: 32},
			{Site: GirthCalf, ValueCm: 36},
		},
		Breadths: []models.BreadthReading{
			{Site: BreadthHumerus, ValueCm: 7},
			{Site: BreadthFemur, ValueCm: 9.5},
		},
	}

	s := HeathCarterSomatotype(m)
	if s == nil {
		t.Fatal("HeathCarterSomatotype returned nil")
	}

	x := 30.0 * (170.18 / 175.0)
	wantEndo := -0.7182 + 0.1451*x - 0.00068*x*x + 0.0000014*x*x*x
	wantMeso := 0.858*7 + 0.601*9.5 + 0.188*(32-1.0) + 0.161*(36-0.9) - 0.131*175 + 4.5
	hwr := 175.0 / math.Cbrt(70.0)
	wantEcto := 0.732*hwr - 28.58

	if math.Abs(s.Endomorphy-wantEndo) > 0.01 {
		t.Errorf("Endomorphy = %v, want %v", s.Endomorphy, wantEndo)
	}
	if math.Abs(s.Mesomorphy-wantMeso) > 0.01 {
		t.Errorf("Mesomorphy = %v, want %v", s.Mesomorphy, wantMeso)
	}
	if math.Abs(s.Ectomorphy-wantEcto) > 0.01 {
		t.Errorf("Ectomorphy = %v, want %v", s.Ectomorphy, wantEcto)
	}
}

func TestHeathCarterSomatotypeFloor(t *testing.T) {
	m := &models.Measurement{
		WeightKg: 60,
		HeightCm: 170.18,
		Skinfolds: []models.SkinfoldReading{
			sfReading(SkinfoldTriceps, 1),
			sfReading(SkinfoldSubscapular, 1),
			sfReading(SkinfoldSupraspinale, 1),
			sfReading(SkinfoldMedialCalf, 1),
		},
		Girths: []models.GirthReading{
			{Site: GirthFlexedArm, ValueCm: 25},
			{Site: GirthCalf, ValueCm: 30},
		},
		Breadths: []models.BreadthReading{
			{Site: BreadthHumerus, ValueCm: 6},
			{Site: BreadthFemur, ValueCm: 8},
		},
	}

	s := HeathCarterSomatotype(m)
	if s == nil {
		t.Fatal("HeathCarterSomatotype returned nil")
	}
	// Sum of folds 3 mm at reference height drives the cubic negative.
	if s.Endomorphy != somatotypeFloor {
		t.Errorf("Endomorphy = %v, want floor %v", s.Endomorphy, somatotypeFloor)
	}
	if s.Mesomorphy < somatotypeFloor || s.Ectomorphy < somatotypeFloor {
		t.Errorf("components below floor: meso=%v ecto=%v", s.Mesomorphy, s.Ectomorphy)
	}
}

func TestHeathCarterSomatotypeMissingInput(t *testing.T) {
	m := fullProfile()
	m.Girths = nil
	if s := HeathCarterSomatotype(m); s != nil {
		t.Errorf("HeathCarterSomatotype without girths = %+v, want nil", s)
	}
}

func TestMeasurementQuality(t *testing.T) {
	full := fullProfile()
	if got := MeasurementQuality(full); got != "isak" {
		t.Errorf("full profile quality = %q, want isak", got)
	}

	partial := &models.Measurement{
		Skinfolds: []models.SkinfoldReading{
			sfReading(SkinfoldTriceps, 10),
			sfReading(SkinfoldSubscapular, 12),
			sfReading(SkinfoldAbdominal, 16),
		},
	}
	if got := MeasurementQuality(partial); got != "partial" {
		t.Errorf("three-site quality = %q, want partial", got)
	}

	basic := &models.Measurement{WeightKg: 70, HeightCm: 175}
	if got := MeasurementQuality(basic); got != "basic" {
		t.Errorf("weight-only quality = %q, want basic", got)
	}
}
