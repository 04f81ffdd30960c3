package nutrition

// Energy expenditure estimation. One entry point, several interchangeable
// formulas; any silent substitution is surfaced through FormulaUsed.

const (
	FormulaMifflin = "mifflin_st_jeor"
	FormulaHarris  = "harris_benedict"
	FormulaKatch   = "katch_mcardle"
	FormulaFAOWHO  = "fao_who"
	FormulaIOM     = "iom_eer"
	FormulaHenry   = "henry"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
	ActivityUltra      = "ultra"
)

var activityFactors = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
	ActivityUltra:      2.5,
}

// ActivityFactor returns the multiplier for an activity level, defaulting to
// sedentary for unknown levels.
func ActivityFactor(level string) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return activityFactors[ActivitySedentary]
}

type TDEEInput struct {
	Sex           string
	AgeYears      int
	AgeMonths     int
	WeightKg      float64
	HeightCm      float64
	BodyFatPct    float64 // 0 = unavailable
	Formula       string  // "" = population default
	ActivityLevel string
}

type TDEEResult struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	ActivityFactor float64 `json:"activity_factor"`
	FormulaUsed    string  `json:"formula_used"`
}

// EstimateTDEE selects a formula (explicit config choice first, then the
// population default) and returns BMR, TDEE and the factor applied. The
// pediatric EER path already represents the total daily target, so no
// activity multiplication happens there.
func EstimateTDEE(in TDEEInput) TDEEResult {
	formula := in.Formula
	if formula == "" {
		if in.AgeYears < 18 {
			formula = FormulaIOM
		} else {
			formula = FormulaMifflin
		}
	}

	switch formula {
	case FormulaIOM:
		eer := iomEER(in)
		return TDEEResult{BMR: eer, TDEE: eer, ActivityFactor: 1.0, FormulaUsed: FormulaIOM}
	case FormulaFAOWHO:
		if in.AgeYears < 18 {
			eer := faoWHOBMR(in) * ActivityFactor(in.ActivityLevel)
			return TDEEResult{BMR: faoWHOBMR(in), TDEE: eer, ActivityFactor: ActivityFactor(in.ActivityLevel), FormulaUsed: FormulaFAOWHO}
		}
		return adultResult(faoWHOBMR(in), FormulaFAOWHO, in)
	case FormulaHarris:
		return adultResult(harrisBenedict(in), FormulaHarris, in)
	case FormulaHenry:
		return adultResult(henry(in), FormulaHenry, in)
	case FormulaKatch:
		if in.BodyFatPct > 0 {
			lbm := in.WeightKg * (1.0 - in.BodyFatPct/100.0)
			return adultResult(370.0+21.6*lbm, FormulaKatch, in)
		}
		// No usable body fat: substitute Mifflin and disclose it.
		res := adultResult(mifflin(in), "fallback:"+FormulaMifflin, in)
		return res
	default:
		return adultResult(mifflin(in), FormulaMifflin, in)
	}
}

func adultResult(bmr float64, formula string, in TDEEInput) TDEEResult {
	factor := ActivityFactor(in.ActivityLevel)
	return TDEEResult{
		BMR:            bmr,
		TDEE:           bmr * factor,
		ActivityFactor: factor,
		FormulaUsed:    formula,
	}
}

func mifflin(in TDEEInput) float64 {
	base := 10.0*in.WeightKg + 6.25*in.HeightCm - 5.0*float64(in.AgeYears)
	if in.Sex == "female" {
		return base - 161.0
	}
	return base + 5.0
}

func harrisBenedict(in TDEEInput) float64 {
	if in.Sex == "female" {
		return 655.0955 + 9.5634*in.WeightKg + 1.8496*in.HeightCm - 4.6756*float64(in.AgeYears)
	}
	return 66.473 + 13.7516*in.WeightKg + 5.0033*in.HeightCm - 6.755*float64(in.AgeYears)
}

func faoWHOBMR(in TDEEInput) float64 {
	w := in.WeightKg
	age := in.AgeYears
	if in.Sex == "female" {
		switch {
		case age < 3:
			return 61.0*w - 51.0
		case age < 10:
			return 22.5*w + 499.0
		case age < 18:
			return 12.2*w + 746.0
		case age < 30:
			return 14.7*w + 496.0
		case age < 60:
			return 8.7*w + 829.0
		default:
			return 10.5*w + 596.0
		}
	}
	switch {
	case age < 3:
		return 60.9*w - 54.0
	case age < 10:
		return 22.7*w + 495.0
	case age < 18:
		return 17.5*w + 651.0
	case age < 30:
		return 15.3*w + 679.0
	case age < 60:
		return 11.6*w + 879.0
	default:
		return 13.5*w + 487.0
	}
}

func henry(in TDEEInput) float64 {
	w := in.WeightKg
	age := in.AgeYears
	if in.Sex == "female" {
		switch {
		case age < 30:
			return 13.1*w + 558.0
		case age < 60:
			return 9.74*w + 694.0
		default:
			return 10.1*w + 569.0
		}
	}
	switch {
	case age < 30:
		return 16.0*w + 545.0
	case age < 60:
		return 14.2*w + 593.0
	default:
		return 13.5*w + 514.0
	}
}

// Institute of Medicine EER physical-activity coefficients.
func iomPA(sex, level string) float64 {
	boys := map[string]float64{
		ActivitySedentary: 1.00, ActivityLight: 1.13, ActivityModerate: 1.26,
		ActivityActive: 1.42, ActivityVeryActive: 1.42, ActivityUltra: 1.42,
	}
	girls := map[string]float64{
		ActivitySedentary: 1.00, ActivityLight: 1.16, ActivityModerate: 1.31,
		ActivityActive: 1.56, ActivityVeryActive: 1.56, ActivityUltra: 1.56,
	}
	table := boys
	if sex == "female" {
		table = girls
	}
	if pa, ok := table[level]; ok {
		return pa
	}
	return 1.0
}

// iomEER returns the pediatric Estimated Energy Requirement; the result is
// already a total daily target.
func iomEER(in TDEEInput) float64 {
	w := in.WeightKg
	hM := in.HeightCm / 100.0
	months := in.AgeMonths
	if months == 0 && in.AgeYears > 0 {
		months = in.AgeYears * 12
	}

	// Infants and toddlers: weight-driven with an age-specific growth term.
	if months <= 35 {
		base := 89.0*w - 100.0
		switch {
		case months < 4:
			return base + 175.0
		case months < 7:
			return base + 56.0
		case months < 13:
			return base + 22.0
		default:
			return base + 20.0
		}
	}

	pa := iomPA(in.Sex, in.ActivityLevel)
	age := float64(in.AgeYears)
	if in.Sex == "female" {
		if in.AgeYears <= 8 {
			return 135.3 - 30.8*age + pa*(10.0*w+934.0*hM) + 20.0
		}
		return 135.3 - 30.8*age + pa*(10.0*w+934.0*hM) + 25.0
	}
	if in.AgeYears <= 8 {
		return 88.5 - 61.9*age + pa*(26.7*w+903.0*hM) + 20.0
	}
	return 88.5 - 61.9*age + pa*(26.7*w+903.0*hM) + 25.0
}
