package nutrition

import "fmt"

// Special-population protocols: infant feeding guidance by age bracket and
// the iron supplementation scheme for anemia, including the altitude
// hemoglobin correction used at high-altitude clinics.

// PediatricPlan is the feeding guidance sheet for a child under 3.
type PediatricPlan struct {
	AgeBracket     string   `json:"age_bracket"`
	Breastfeeding  string   `json:"breastfeeding"`
	MealsPerDay    string   `json:"meals_per_day"`
	Texture        string   `json:"texture"`
	PortionGuide   string   `json:"portion_guide"`
	IronRichFoods  []string `json:"iron_rich_foods"`
	ForbiddenFoods []string `json:"forbidden_foods"`
	Alerts         []string `json:"alerts"`
}

// PediatricNutritionPlan returns feeding guidance by age in months.
// lactationType is "exclusive", "mixed" or "formula"; it only changes the
// breastfeeding text, never the complementary-feeding schedule.
func PediatricNutritionPlan(ageMonths int, lactationType string) (PediatricPlan, error) {
	if ageMonths < 0 || ageMonths > 36 {
		return PediatricPlan{}, fmt.Errorf("pediatric plan covers 0-36 months, got %d", ageMonths)
	}

	var plan PediatricPlan
	switch {
	case ageMonths < 6:
		plan = PediatricPlan{
			AgeBracket:     "0-6 months",
			MealsPerDay:    "on demand, at least 8-12 feeds per 24 h",
			Texture:        "liquid only",
			PortionGuide:   "no complementary foods before 6 months",
			ForbiddenFoods: []string{"honey", "cow milk", "added sugar", "added salt", "water or infusions before 6 months"},
			Alerts:         []string{"fewer than 6 wet diapers per day", "weight loss after day 10 of life", "refusal of several consecutive feeds"},
		}
	case ageMonths < 9:
		plan = PediatricPlan{
			AgeBracket:    "6-9 months",
			MealsPerDay:   "2-3 meals plus 1 snack, breastfeeds continue",
			Texture:       "thick purees and mashes, never watered down",
			PortionGuide:  "start at 2-3 tablespoons, build to half a cup (125 mL) per meal",
			IronRichFoods: []string{"liver", "blood sausage", "pureed red meat", "egg yolk", "lentil puree"},
			ForbiddenFoods: []string{
				"honey", "whole nuts", "added sugar", "added salt", "soft drinks and juices",
			},
			Alerts: []string{"no interest in solids by month 7", "flat weight curve across two check-ups"},
		}
	case ageMonths < 12:
		plan = PediatricPlan{
			AgeBracket:    "9-12 months",
			MealsPerDay:   "3 meals plus 2 snacks, breastfeeds continue",
			Texture:       "chopped and minced foods, soft finger foods",
			PortionGuide:  "three quarters of a cup (190 mL) per main meal",
			IronRichFoods: []string{"liver", "red meat", "fish", "chicken", "beans with vitamin C fruit"},
			ForbiddenFoods: []string{
				"honey", "whole nuts", "popcorn", "added sugar", "added salt",
			},
			Alerts: []string{"not picking food up by hand", "pallor or marked fatigue, screen hemoglobin"},
		}
	case ageMonths < 24:
		plan = PediatricPlan{
			AgeBracket:    "12-24 months",
			MealsPerDay:   "3 family meals plus 2 snacks",
			Texture:       "family pot food, cut small",
			PortionGuide:  "one cup (250 mL) per main meal",
			IronRichFoods: []string{"red meat", "liver once a week", "fish", "eggs", "lentils and beans"},
			ForbiddenFoods: []string{
				"whole nuts", "popcorn", "hard candy", "sugary drinks",
			},
			Alerts: []string{"milk displacing solid meals (over 500 mL cow milk daily)", "hemoglobin below 11 g/dL"},
		}
	default:
		plan = PediatricPlan{
			AgeBracket:    "24-36 months",
			MealsPerDay:   "3 family meals plus 2 snacks",
			Texture:       "regular family texture",
			PortionGuide:  "one to one and a quarter cups per main meal",
			IronRichFoods: []string{"red meat", "fish", "eggs", "legumes", "fortified cereals"},
			ForbiddenFoods: []string{
				"whole nuts until chewing is safe", "sugary drinks",
			},
			Alerts: []string{"selective eating narrowing below 15 accepted foods", "BMI-for-age drifting across percentile bands"},
		}
	}

	switch lactationType {
	case "exclusive":
		if ageMonths < 6 {
			plan.Breastfeeding = "exclusive breastfeeding, no other food or drink"
		} else {
			plan.Breastfeeding = "continue breastfeeding on demand alongside meals, target up to 2 years"
		}
	case "formula":
		plan.Breastfeeding = "infant formula per pediatric indication; keep feeds responsive, do not force finishing the bottle"
	default:
		if ageMonths < 6 {
			plan.Breastfeeding = "breastfeed first at every feed, top up with formula only as indicated"
		} else {
			plan.Breastfeeding = "breastfeed or formula alongside meals; milk after solids from 9 months"
		}
	}

	return plan, nil
}

// AnemiaInput drives the iron supplementation protocol. HemoglobinGdl is
// optional (0 = no lab value); without it the recorded Anemia status decides
// between the preventive and curative schemes.
type AnemiaInput struct {
	Anemia         bool
	HemoglobinGdl  float64
	AltitudeM      float64
	Sex            string
	AgeMonths      int
	WeightKg       float64
	Pregnant       bool
	Premature      bool
	LowBirthWeight bool
}

// IronProtocol is the resolved supplementation scheme.
type IronProtocol struct {
	CorrectedHb     float64   `json:"corrected_hb"`
	HbCorrection    float64   `json:"hb_correction"`
	Severity        string    `json:"severity"` // none | mild | moderate | severe | unknown
	ProtocolType    string    `json:"protocol_type"`
	DoseMgPerDay    float64   `json:"dose_mg_per_day"`
	DropsPerDay     float64   `json:"drops_per_day"`
	SyrupMLPerDay   float64   `json:"syrup_ml_per_day"`
	DurationMonths  int       `json:"duration_months"`
	ControlSchedule string    `json:"control_schedule"`
	MenuGuidance    []string  `json:"menu_guidance"`
	Warnings        []Warning `json:"warnings,omitempty"`
}

// altitudeHbCorrection returns the g/dL subtracted from measured hemoglobin
// before classification. Residents at altitude run physiologically higher
// hemoglobin, masking anemia when read against sea-level cutoffs.
func altitudeHbCorrection(altitudeM float64) float64 {
	switch {
	case altitudeM < 1000:
		return 0
	case altitudeM < 1500:
		return 0.2
	case altitudeM < 2000:
		return 0.5
	case altitudeM < 2500:
		return 0.8
	case altitudeM < 3000:
		return 1.3
	case altitudeM < 3500:
		return 1.9
	case altitudeM < 4000:
		return 2.7
	case altitudeM < 4500:
		return 3.5
	default:
		return 4.5
	}
}

// Elemental iron content of the two dosage forms.
const (
	ironDropsMgPerML  = 25.0 // drops: 25 mg Fe per mL, 20 drops per mL
	dropsPerML        = 20.0
	ironSyrupMgPer5ML = 15.0 // syrup: 15 mg Fe per 5 mL
)

// anemiaCutoff is the hemoglobin threshold below which the patient counts as
// anemic: 11 g/dL for children and pregnancy, 12 for adult women, 13 for
// adult men.
func anemiaCutoff(sex string, ageMonths int, pregnant bool) float64 {
	switch {
	case pregnant:
		return 11.0
	case ageMonths >= 15*12 && sex == "male":
		return 13.0
	case ageMonths >= 15*12:
		return 12.0
	default:
		return 11.0
	}
}

// ResolveIronProtocol classifies anemia on altitude-corrected hemoglobin and
// returns the supplementation scheme. Without a lab value the severity stays
// "unknown" and the recorded anemia status picks the scheme.
func ResolveIronProtocol(in AnemiaInput) IronProtocol {
	var out IronProtocol
	anemic := in.Anemia

	hbKnown := in.HemoglobinGdl > 0
	correction := altitudeHbCorrection(in.AltitudeM)

	if hbKnown {
		corrected := in.HemoglobinGdl - correction
		out.CorrectedHb = round1(corrected)
		out.HbCorrection = correction

		cutoff := anemiaCutoff(in.Sex, in.AgeMonths, in.Pregnant)
		switch {
		case corrected >= cutoff:
			out.Severity = "none"
		case corrected >= cutoff-1.0:
			out.Severity = "mild"
		case corrected >= 7.0:
			out.Severity = "moderate"
		default:
			out.Severity = "severe"
		}
		anemic = out.Severity != "none"
	} else {
		out.Severity = "unknown"
	}

	switch {
	case in.Pregnant:
		out.ProtocolType = "gestational supplementation"
		if anemic {
			out.DoseMgPerDay = 120
			out.DurationMonths = 6
			out.ControlSchedule = "hemoglobin control every 4 weeks until corrected, then monthly"
		} else {
			out.DoseMgPerDay = 60
			out.DurationMonths = 6
			out.ControlSchedule = "hemoglobin at each trimester check"
		}
	case anemic:
		out.ProtocolType = "curative treatment"
		dose := 3.0 * in.WeightKg
		if dose > 60 {
			dose = 60
		}
		out.DoseMgPerDay = round1(dose)
		out.DurationMonths = 6
		out.ControlSchedule = "hemoglobin at 1, 3 and 6 months of treatment"
	default:
		out.ProtocolType = "preventive supplementation"
		perKg := 1.0
		if in.Premature || in.LowBirthWeight {
			perKg = 2.0
		}
		dose := perKg * in.WeightKg
		if dose > 60 {
			dose = 60
		}
		out.DoseMgPerDay = round1(dose)
		out.DurationMonths = 6
		out.ControlSchedule = "hemoglobin screen at 6 and 12 months of age, then yearly"
	}

	out.DropsPerDay = round1(out.DoseMgPerDay / ironDropsMgPerML * dropsPerML)
	out.SyrupMLPerDay = round1(out.DoseMgPerDay / ironSyrupMgPer5ML * 5.0)

	out.MenuGuidance = ironMenuGuidance(in.AgeMonths, in.Pregnant)

	if out.Severity == "severe" {
		out.Warnings = append(out.Warnings, Warning{
			Code:     "severe_anemia_referral",
			Severity: High,
			Message:  fmt.Sprintf("Corrected hemoglobin %.1f g/dL is below 7; refer for medical evaluation before starting oral iron.", out.CorrectedHb),
			Metric:   "hemoglobin_gdl",
			Value:    out.CorrectedHb,
			Limit:    7.0,
		})
	}
	if hbKnown && correction > 0 {
		out.Warnings = append(out.Warnings, Warning{
			Code:     "altitude_hb_correction",
			Severity: Info,
			Message:  fmt.Sprintf("Hemoglobin corrected by -%.1f g/dL for residence at %.0f m.", correction, in.AltitudeM),
			Metric:   "hb_correction_gdl",
			Value:    correction,
		})
	}
	if !hbKnown {
		out.Warnings = append(out.Warnings, Warning{
			Code:     "anemia_status_only",
			Severity: Info,
			Message:  "No hemoglobin value available; scheme selected from the recorded anemia status.",
			Metric:   "hemoglobin_gdl",
		})
	}
	return out
}

func ironMenuGuidance(ageMonths int, pregnant bool) []string {
	if pregnant {
		return []string{
			"red meat, liver or blood sausage 3 times per week",
			"pair iron sources with citrus or other vitamin C fruit",
			"separate iron dose from coffee, tea and dairy by 2 hours",
		}
	}
	switch {
	case ageMonths < 6:
		return []string{"exclusive breastfeeding; supplementation per scheme, no dietary changes"}
	case ageMonths < 12:
		return []string{
			"thick purees with liver, blood sausage or pureed red meat daily",
			"vitamin C fruit mash with iron-rich meals",
			"no tea or infusions with meals",
		}
	default:
		return []string{
			"red meat, liver or fish at lunch daily",
			"legumes combined with citrus fruit",
			"give the iron dose away from milk feeds",
		}
	}
}
