package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient holds the full clinical profile used by the diet engine. Updates are
// whole-record replacements; there is no partial patching server-side.
type Patient struct {
	gorm.Model
	OwnerID uint `gorm:"index;not null"` // clinician user id

	FirstName string `gorm:"not null"`
	LastName  string
	BirthDate time.Time
	Sex       string `gorm:"size:10"` // "male" | "female"

	WeightKg float64
	HeightCm float64

	// Clinical record. Pathologies/medications are comma-separated free text,
	// allergies are structured rows because severity drives hard exclusions.
	Pathologies   string
	Medications   string
	HemoglobinGdl float64
	AltitudeM     float64
	Anemia        bool
	Allergies     []Allergy

	// Nutritional configuration. Empty strings mean "not explicitly set" so the
	// resolver can tell a clinician choice from a default.
	ActivityLevel   string  `gorm:"size:20"` // sedentary … ultra
	WeightObjective string  `gorm:"size:20"` // maintain | lose | gain
	Formula         string  `gorm:"size:30"` // "" = population default
	CarbsPct        float64 // percent of calories from carbs, 0 = default 50
	ProteinGPerKg   float64 // 0 = default 1.6
	ProteinBasis    string  `gorm:"size:20"` // "" | total | ideal | adjusted | lean
	CaloriePreset   string  `gorm:"size:30"`
	ManualKcalDelta float64
	MealMoments     []MealMoment

	// Liked/disliked food names, comma-separated.
	LikedFoods    string
	DislikedFoods string

	// Pediatric birth history (ages 0-36 months).
	GestationalWeeks int
	BirthWeightKg    float64
	Premature        bool
	LowBirthWeight   bool
	LactationType    string `gorm:"size:20"` // exclusive | mixed | formula

	// Pregnancy.
	Pregnant      bool
	GestationWeek int

	ProfilePicture string
}

// Allergy severity decides how aggressively the generator excludes foods:
// "fatal" expands to known derivative ingredient names, the rest match the
// allergen name only.
type Allergy struct {
	gorm.Model
	PatientID uint   `gorm:"index;not null"`
	Name      string `gorm:"size:50;not null"`
	Severity  string `gorm:"size:20;not null"` // fatal | intolerance | preference
}

// MealMoment is a named feeding slot with its share of daily calories.
// Ratios are 0-1 and must sum to 1.0 across enabled moments.
type MealMoment struct {
	gorm.Model
	PatientID uint    `gorm:"index;not null"`
	Name      string  `gorm:"size:30;not null"` // breakfast | lunch | dinner | snack | custom
	Position  int     `gorm:"not null"`
	Enabled   bool    `gorm:"default:true"`
	Ratio     float64 `gorm:"not null"`
}

// AgeYearsAt returns the patient's age in whole years at the given time.
func (p *Patient) AgeYearsAt(at time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	years := at.Year() - p.BirthDate.Year()
	if at.YearDay() < p.BirthDate.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// AgeMonthsAt returns the age in whole months, used by the pediatric paths.
func (p *Patient) AgeMonthsAt(at time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	months := (at.Year()-p.BirthDate.Year())*12 + int(at.Month()) - int(p.BirthDate.Month())
	if at.Day() < p.BirthDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
