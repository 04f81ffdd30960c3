package nutrition

// Pediatric growth z-scores (0-36 months) against sex- and age-specific
// reference distributions, with the categorical diagnoses clinicians expect.

type growthRef struct {
	ageMonths int
	mean      float64
	sd        float64
}

// Reference medians and standard deviations, interpolated between points.
var weightForAgeBoys = []growthRef{
	{0, 3.3, 0.45}, {3, 6.4, 0.75}, {6, 7.9, 0.85}, {9, 8.9, 0.95},
	{12, 9.6, 1.00}, {18, 10.9, 1.15}, {24, 12.2, 1.30}, {30, 13.3, 1.45}, {36, 14.3, 1.60},
}

var weightForAgeGirls = []growthRef{
	{0, 3.2, 0.45}, {3, 5.8, 0.70}, {6, 7.3, 0.80}, {9, 8.2, 0.90},
	{12, 8.9, 1.00}, {18, 10.2, 1.15}, {24, 11.5, 1.30}, {30, 12.7, 1.45}, {36, 13.9, 1.60},
}

var lengthForAgeBoys = []growthRef{
	{0, 49.9, 1.9}, {3, 61.4, 2.1}, {6, 67.6, 2.2}, {9, 72.0, 2.3},
	{12, 75.7, 2.4}, {18, 82.3, 2.7}, {24, 87.1, 3.0}, {30, 91.9, 3.2}, {36, 96.1, 3.4},
}

var lengthForAgeGirls = []growthRef{
	{0, 49.1, 1.9}, {3, 59.8, 2.1}, {6, 65.7, 2.2}, {9, 70.1, 2.3},
	{12, 74.0, 2.5}, {18, 80.7, 2.8}, {24, 85.7, 3.1}, {30, 90.7, 3.3}, {36, 95.1, 3.5},
}

func lookupGrowthRef(table []growthRef, ageMonths int) (mean, sd float64, ok bool) {
	if ageMonths < table[0].ageMonths || ageMonths > table[len(table)-1].ageMonths {
		return 0, 0, false
	}
	for i := 1; i < len(table); i++ {
		lo, hi := table[i-1], table[i]
		if ageMonths > hi.ageMonths {
			continue
		}
		span := float64(hi.ageMonths - lo.ageMonths)
		t := float64(ageMonths-lo.ageMonths) / span
		return lo.mean + t*(hi.mean-lo.mean), lo.sd + t*(hi.sd-lo.sd), true
	}
	return 0, 0, false
}

// ZScoreResult pairs the numeric score with its categorical diagnosis.
type ZScoreResult struct {
	Z         float64 `json:"z"`
	Diagnosis string  `json:"diagnosis"`
}

// WeightForAgeZ compares a measured weight against the reference
// distribution for the child's sex and age. ok is false outside 0-36 months
// or for non-positive weight.
func WeightForAgeZ(weightKg float64, sex string, ageMonths int) (ZScoreResult, bool) {
	if weightKg <= 0 {
		return ZScoreResult{}, false
	}
	table := weightForAgeBoys
	if sex == "female" {
		table = weightForAgeGirls
	}
	mean, sd, ok := lookupGrowthRef(table, ageMonths)
	if !ok {
		return ZScoreResult{}, false
	}
	z := (weightKg - mean) / sd
	var diag string
	switch {
	case z < -3:
		diag = "severely underweight"
	case z < -2:
		diag = "underweight"
	case z <= 2:
		diag = "normal"
	default:
		diag = "above range, check weight-for-length"
	}
	return ZScoreResult{Z: z, Diagnosis: diag}, true
}

// LengthForAgeZ is the stunting indicator for 0-36 months.
func LengthForAgeZ(lengthCm float64, sex string, ageMonths int) (ZScoreResult, bool) {
	if lengthCm <= 0 {
		return ZScoreResult{}, false
	}
	table := lengthForAgeBoys
	if sex == "female" {
		table = lengthForAgeGirls
	}
	mean, sd, ok := lookupGrowthRef(table, ageMonths)
	if !ok {
		return ZScoreResult{}, false
	}
	z := (lengthCm - mean) / sd
	var diag string
	switch {
	case z < -3:
		diag = "severely stunted"
	case z < -2:
		diag = "stunted"
	case z <= 3:
		diag = "normal"
	default:
		diag = "unusually tall, not a nutritional concern"
	}
	return ZScoreResult{Z: z, Diagnosis: diag}, true
}
