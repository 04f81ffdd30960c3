package nutrition

import (
	"errors"
	"math"

	"backend/models"
)

// Measurement site names used across skinfold/girth/breadth readings.
const (
	SkinfoldTriceps      = "triceps"
	SkinfoldSubscapular  = "subscapular"
	SkinfoldBiceps       = "biceps"
	SkinfoldIliacCrest   = "iliac_crest"
	SkinfoldSupraspinale = "supraspinale"
	SkinfoldAbdominal    = "abdominal"
	SkinfoldFrontThigh   = "front_thigh"
	SkinfoldMedialCalf   = "medial_calf"

	GirthRelaxedArm = "relaxed_arm"
	GirthFlexedArm  = "flexed_arm"
	GirthWaist      = "waist"
	GirthHip        = "hip"
	GirthMidThigh   = "mid_thigh"
	GirthCalf       = "calf"

	BreadthHumerus = "humerus"
	BreadthFemur   = "femur"
)

// ProfileType selects the primary body-composition routine.
type ProfileType string

const (
	ProfileGeneral ProfileType = "general"
	ProfileAthlete ProfileType = "athlete"
	ProfileControl ProfileType = "control"
	ProfileRapid   ProfileType = "rapid"
)

const (
	minBodyFatPct = 3.0
	maxBodyFatPct = 50.0
)

// BodyFatResult tags the value with the routine that produced it so a
// fallback substitution is inspectable, not a side channel.
type BodyFatResult struct {
	Method  string  `json:"method"`
	Percent float64 `json:"percent"`
}

// BodyFat estimates body fat percentage. The primary routine is selected by
// profile; when it is unavailable or returns zero the modified Yuhasz
// regression takes over and the result is tagged "fallback:yuhasz". The
// second return is false only when no routine has enough data.
func BodyFat(m *models.Measurement, sex string, profile ProfileType, ageYears int) (BodyFatResult, bool) {
	var pct float64
	var method string

	switch profile {
	case ProfileAthlete:
		pct = yuhasz(m, sex)
		method = "yuhasz"
	case ProfileControl:
		pct = faulkner(m)
		method = "faulkner"
	case ProfileRapid:
		pct = deurenberg(m, sex, ageYears)
		method = "deurenberg"
	default:
		pct = durninWomersley(m, sex, ageYears)
		method = "durnin_womersley"
	}

	if pct <= 0 && method != "yuhasz" {
		pct = yuhasz(m, sex)
		method = "fallback:yuhasz"
	}
	if pct <= 0 {
		return BodyFatResult{}, false
	}
	return BodyFatResult{Method: method, Percent: clamp(pct, minBodyFatPct, maxBodyFatPct)}, true
}

// Modified Yuhasz sum-of-six regression, sex-specific coefficients.
func yuhasz(m *models.Measurement, sex string) float64 {
	sites := []string{
		SkinfoldTriceps, SkinfoldSubscapular, SkinfoldSupraspinale,
		SkinfoldAbdominal, SkinfoldFrontThigh, SkinfoldMedialCalf,
	}
	var sum float64
	for _, s := range sites {
		v := m.Skinfold(s)
		if v <= 0 {
			return 0
		}
		sum += v
	}
	if sex == "female" {
		return 0.1548*sum + 3.580
	}
	return 0.1051*sum + 2.585
}

// Faulkner four-fold estimate, used for the control profile.
func faulkner(m *models.Measurement) float64 {
	sites := []string{SkinfoldTriceps, SkinfoldSubscapular, SkinfoldSupraspinale, SkinfoldAbdominal}
	var sum float64
	for _, s := range sites {
		v := m.Skinfold(s)
		if v <= 0 {
			return 0
		}
		sum += v
	}
	return 0.153*sum + 5.783
}

// Durnin & Womersley four-fold density plus Siri conversion.
func durninWomersley(m *models.Measurement, sex string, ageYears int) float64 {
	sites := []string{SkinfoldBiceps, SkinfoldTriceps, SkinfoldSubscapular, SkinfoldIliacCrest}
	var sum float64
	for _, s := range sites {
		v := m.Skinfold(s)
		if v <= 0 {
			return 0
		}
		sum += v
	}
	logSum := math.Log10(sum)

	var c, k float64
	switch {
	case sex == "female" && ageYears < 30:
		c, k = 1.1599, 0.0717
	case sex == "female" && ageYears < 50:
		c, k = 1.1423, 0.0632
	case sex == "female":
		c, k = 1.1333, 0.0612
	case ageYears < 30:
		c, k = 1.1631, 0.0632
	case ageYears < 50:
		c, k = 1.1422, 0.0544
	default:
		c, k = 1.1715, 0.0779
	}
	density := c - k*logSum
	if density <= 0 {
		return 0
	}
	return 495.0/density - 450.0
}

// Deurenberg BMI-based estimate for rapid assessment.
func deurenberg(m *models.Measurement, sex string, ageYears int) float64 {
	bmi, err := CalculateBMI(m.HeightCm, m.WeightKg)
	if err != nil {
		return 0
	}
	sexFactor := 1.0
	if sex == "female" {
		sexFactor = 0.0
	}
	return 1.2*bmi + 0.23*float64(ageYears) - 10.8*sexFactor - 5.4
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > MaxHeightCM || weightKg < 2 || weightKg > MaxWeightKG {
		return 0, errors.New("height/weight out of plausible range")
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// Fractionation is the five-component mass partition. Components always sum
// to body weight.
type Fractionation struct {
	AdiposeKg  float64 `json:"adipose_kg"`
	MuscleKg   float64 `json:"muscle_kg"`
	BoneKg     float64 `json:"bone_kg"`
	ResidualKg float64 `json:"residual_kg"`
	SkinKg     float64 `json:"skin_kg"`
}

// Calibration weights balancing the three indicator scores against each
// other before the remaining mass is partitioned.
const (
	fracAdiposeWeight = 1.0
	fracMuscleWeight  = 0.35
	fracBoneWeight    = 0.9
)

// FiveComponentFractionation partitions body mass into adipose, muscle,
// bone, residual and skin. It returns nil when any required measurement is
// missing: substituting zero for a missing anthropometric input would
// systematically bias the partition.
func FiveComponentFractionation(m *models.Measurement, sex string) *Fractionation {
	triceps := m.Skinfold(SkinfoldTriceps)
	subscap := m.Skinfold(SkinfoldSubscapular)
	humerus := m.Breadth(BreadthHumerus)
	femur := m.Breadth(BreadthFemur)
	arm := m.Girth(GirthRelaxedArm)
	thigh := m.Girth(GirthMidThigh)
	calf := m.Girth(GirthCalf)

	required := []float64{triceps, subscap, humerus, femur, arm, thigh, calf, m.WeightKg, m.HeightCm}
	for _, v := range required {
		if v <= 0 {
			return nil
		}
	}

	// Du Bois body surface area drives skin mass; residual (organs, fluids)
	// is a sex-specific share of body weight.
	bsa := 0.007184 * math.Pow(m.WeightKg, 0.425) * math.Pow(m.HeightCm, 0.725)
	skin := bsa * 1.9
	residualShare := 0.241
	if sex == "female" {
		residualShare = 0.209
	}
	residual := m.WeightKg * residualShare

	remaining := m.WeightKg - skin - residual
	if remaining <= 0 {
		return nil
	}

	// Girths corrected for the overlying fat layer where the matching
	// skinfold is available.
	armCorr := arm - math.Pi*triceps/10.0
	adiposeScore := fracAdiposeWeight * (triceps + subscap)
	muscleScore := fracMuscleWeight * (armCorr + thigh + calf)
	boneScore := fracBoneWeight * (humerus + femur)
	total := adiposeScore + muscleScore + boneScore
	if total <= 0 {
		return nil
	}

	return &Fractionation{
		AdiposeKg:  remaining * adiposeScore / total,
		MuscleKg:   remaining * muscleScore / total,
		BoneKg:     remaining * boneScore / total,
		ResidualKg: residual,
		SkinKg:     skin,
	}
}

// Somatotype is the Heath-Carter three-number classification.
type Somatotype struct {
	Endomorphy float64 `json:"endomorphy"`
	Mesomorphy float64 `json:"mesomorphy"`
	Ectomorphy float64 `json:"ectomorphy"`
}

// Components below 0.5 are physiologically impossible for a living subject
// and treated as measurement noise.
const somatotypeFloor = 0.5

// HeathCarterSomatotype computes the somatotype from skinfolds, girths and
// breadths. Returns nil when required inputs are missing.
func HeathCarterSomatotype(m *models.Measurement) *Somatotype {
	triceps := m.Skinfold(SkinfoldTriceps)
	subscap := m.Skinfold(SkinfoldSubscapular)
	supra := m.Skinfold(SkinfoldSupraspinale)
	calfSF := m.Skinfold(SkinfoldMedialCalf)
	flexedArm := m.Girth(GirthFlexedArm)
	calfGirth := m.Girth(GirthCalf)
	humerus := m.Breadth(BreadthHumerus)
	femur := m.Breadth(BreadthFemur)

	required := []float64{triceps, subscap, supra, calfSF, flexedArm, calfGirth, humerus, femur, m.HeightCm, m.WeightKg}
	for _, v := range required {
		if v <= 0 {
			return nil
		}
	}

	// Endomorphy: height-corrected sum of three folds through the cubic.
	x := (triceps + subscap + supra) * (170.18 / m.HeightCm)
	endo := -0.7182 + 0.1451*x - 0.00068*x*x + 0.0000014*x*x*x

	// Mesomorphy: fat-corrected arm and calf girths plus the two breadths.
	armCorr := flexedArm - triceps/10.0
	calfCorr := calfGirth - calfSF/10.0
	meso := 0.858*humerus + 0.601*femur + 0.188*armCorr + 0.161*calfCorr - 0.131*m.HeightCm + 4.5

	// Ectomorphy: three-branch piecewise on the height-weight ratio.
	hwr := m.HeightCm / math.Cbrt(m.WeightKg)
	var ecto float64
	switch {
	case hwr >= 40.75:
		ecto = 0.732*hwr - 28.58
	case hwr > 38.25:
		ecto = 0.463*hwr - 17.63
	default:
		ecto = 0.1
	}

	return &Somatotype{
		Endomorphy: math.Max(endo, somatotypeFloor),
		Mesomorphy: math.Max(meso, somatotypeFloor),
		Ectomorphy: math.Max(ecto, somatotypeFloor),
	}
}

// MeasurementQuality rates how complete a visit's anthropometry is. "isak"
// means the full skinfold profile was taken with repeated readings.
func MeasurementQuality(m *models.Measurement) string {
	triples := 0
	for _, s := range m.Skinfolds {
		if s.Val1 > 0 && s.Val2 > 0 {
			triples++
		}
	}
	switch {
	case triples >= 6 && len(m.Girths) >= 3 && len(m.Breadths) >= 2:
		return "isak"
	case len(m.Skinfolds) >= 3:
		return "partial"
	default:
		return "basic"
	}
}
