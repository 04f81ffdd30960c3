package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/models"
	"backend/nutrition"
	"backend/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PlanService orchestrates the full pipeline: energy estimate, goal
// resolution, weekly generation, and saved-plan persistence.
type PlanService struct {
	db       *gorm.DB
	patients *PatientService
	foods    *FoodService
}

func NewPlanService(db *gorm.DB, patients *PatientService, foods *FoodService) *PlanService {
	return &PlanService{db: db, patients: patients, foods: foods}
}

var ErrPlanNotFound = errors.New("plan not found")

// PlanResult bundles everything the clinician reviews after generation.
type PlanResult struct {
	Patient  uint                 `json:"patient_id"`
	TDEE     nutrition.TDEEResult `json:"tdee"`
	Goals    nutrition.Goals      `json:"goals"`
	Week     nutrition.WeeklyPlan `json:"week"`
	Warnings []nutrition.Warning  `json:"warnings"`
}

// ResolveGoals runs the energy and goal pipeline without generating meals,
// for the goal preview screen.
func (s *PlanService) ResolveGoals(ownerID, patientID uint) (*models.Patient, nutrition.TDEEResult, nutrition.Goals, error) {
	patient, err := s.patients.GetPatient(ownerID, patientID)
	if err != nil {
		return nil, nutrition.TDEEResult{}, nutrition.Goals{}, err
	}

	now := time.Now()
	bodyFat := s.latestBodyFat(patient.ID)

	tdee := nutrition.EstimateTDEE(nutrition.TDEEInput{
		Sex:           patient.Sex,
		AgeYears:      patient.AgeYearsAt(now),
		AgeMonths:     patient.AgeMonthsAt(now),
		WeightKg:      patient.WeightKg,
		HeightCm:      patient.HeightCm,
		BodyFatPct:    bodyFat,
		Formula:       patient.Formula,
		ActivityLevel: patient.ActivityLevel,
	})

	goals := nutrition.ResolveGoals(nutrition.GoalInput{
		TDEE:            tdee,
		Sex:             patient.Sex,
		AgeYears:        patient.AgeYearsAt(now),
		WeightKg:        patient.WeightKg,
		HeightCm:        patient.HeightCm,
		LeanMassKg:      s.latestLeanMass(patient.ID),
		CarbsPct:        patient.CarbsPct,
		ProteinGPerKg:   patient.ProteinGPerKg,
		ProteinBasis:    patient.ProteinBasis,
		CaloriePreset:   patient.CaloriePreset,
		ManualKcalDelta: patient.ManualKcalDelta,
		ActivityLevel:   patient.ActivityLevel,
		Pregnant:        patient.Pregnant,
	})

	return patient, tdee, goals, nil
}

// GenerateWeekly produces a full week of meals for the patient and raises
// alerts for every high-severity finding.
func (s *PlanService) GenerateWeekly(ownerID, patientID uint) (*PlanResult, error) {
	patient, tdee, goals, err := s.ResolveGoals(ownerID, patientID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.foods.All()
	if err != nil {
		return nil, err
	}

	week := nutrition.GenerateWeeklyPlan(goals, catalog, s.preferences(patient))

	result := &PlanResult{
		Patient:  patient.ID,
		TDEE:     tdee,
		Goals:    goals,
		Week:     week,
		Warnings: collectWarnings(goals, week),
	}

	var findings []string
	for _, w := range result.Warnings {
		if w.Severity == nutrition.High {
			EmitAlert(ownerID, "safety", fmt.Sprintf("%s %s: %s", patient.FirstName, patient.LastName, w.Message))
			findings = append(findings, w.Message)
		}
	}
	if len(findings) > 0 {
		s.sendSafetyDigest(ownerID, patient, findings)
	}

	return result, nil
}

func (s *PlanService) sendSafetyDigest(ownerID uint, patient *models.Patient, findings []string) {
	var owner models.User
	if err := s.db.First(&owner, ownerID).Error; err != nil {
		return
	}
	name := strings.TrimSpace(patient.FirstName + " " + patient.LastName)
	if err := utils.SendSafetyDigestEmail(owner.Email, name, findings); err != nil {
		log.Warn().Err(err).Uint("user_id", ownerID).Msg("safety digest email failed")
	}
}

func (s *PlanService) preferences(patient *models.Patient) nutrition.Preferences {
	prefs := nutrition.Preferences{
		Liked:       splitCSV(patient.LikedFoods),
		Disliked:    splitCSV(patient.DislikedFoods),
		Pathologies: splitCSV(patient.Pathologies),
		AgeYears:    patient.AgeYearsAt(time.Now()),
	}
	for _, a := range patient.Allergies {
		prefs.Allergies = append(prefs.Allergies, nutrition.AllergyPref{Name: a.Name, Severity: a.Severity})
	}
	for _, m := range patient.MealMoments {
		prefs.Moments = append(prefs.Moments, nutrition.Moment{Name: m.Name, Enabled: m.Enabled, Ratio: m.Ratio})
	}
	return prefs
}

func collectWarnings(goals nutrition.Goals, week nutrition.WeeklyPlan) []nutrition.Warning {
	out := append([]nutrition.Warning{}, goals.Warnings...)
	seen := map[string]bool{}
	for _, w := range out {
		seen[w.Code] = true
	}
	// Day-level warnings repeat across the week; report each code once.
	for _, day := range week.Days {
		for _, w := range day.SafetyWarnings {
			if !seen[w.Code] {
				seen[w.Code] = true
				out = append(out, w)
			}
		}
	}
	return out
}

func (s *PlanService) latestBodyFat(patientID uint) float64 {
	var m models.Measurement
	err := s.db.Where("patient_id = ? AND body_fat_pct > 0", patientID).
		Order("taken_at DESC").
		First(&m).Error
	if err != nil {
		return 0
	}
	return m.BodyFatPct
}

func (s *PlanService) latestLeanMass(patientID uint) float64 {
	var m models.Measurement
	err := s.db.Where("patient_id = ? AND muscle_mass_kg > 0", patientID).
		Order("taken_at DESC").
		First(&m).Error
	if err != nil {
		return 0
	}
	return m.MuscleMassKg
}

// ---------- Plan editing ----------

type PlanEdit struct {
	Op      string  `json:"op" binding:"required"` // add_food | remove_item | set_quantity
	Day     int     `json:"day"`
	Meal    int     `json:"meal"`
	Item    int     `json:"item"`
	FoodID  uint    `json:"food_id"`
	Grams   float64 `json:"grams"`
}

// ApplyEdit mutates one day of a weekly plan and recomputes its stats. The
// edited plan is returned to the client; persistence stays explicit via save.
func (s *PlanService) ApplyEdit(week *nutrition.WeeklyPlan, edit PlanEdit) error {
	if edit.Day < 0 || edit.Day >= len(week.Days) {
		return fmt.Errorf("day index %d out of range", edit.Day)
	}
	day := &week.Days[edit.Day]

	switch edit.Op {
	case "add_food":
		food, err := s.foods.Get(edit.FoodID)
		if err != nil {
			return err
		}
		return day.AddFood(edit.Meal, *food, edit.Grams)
	case "remove_item":
		return day.RemoveItem(edit.Meal, edit.Item)
	case "set_quantity":
		return day.SetQuantity(edit.Meal, edit.Item, edit.Grams)
	default:
		return fmt.Errorf("unknown edit op %q", edit.Op)
	}
}

// ---------- Saved plans ----------

// Save stores an immutable named snapshot of the plan.
func (s *PlanService) Save(ownerID, patientID uint, name string, result *PlanResult) (*models.SavedPlan, error) {
	if _, err := s.patients.GetPatient(ownerID, patientID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("plan name is required")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	plan := &models.SavedPlan{
		PublicID:  uuid.NewString(),
		OwnerID:   ownerID,
		PatientID: patientID,
		Name:      name,
		PlanJSON:  string(raw),
	}
	if err := s.db.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) ListSaved(ownerID, patientID uint) ([]models.SavedPlan, error) {
	q := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC")
	if patientID != 0 {
		q = q.Where("patient_id = ?", patientID)
	}
	var plans []models.SavedPlan
	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *PlanService) GetSaved(ownerID uint, publicID string) (*models.SavedPlan, *PlanResult, error) {
	var plan models.SavedPlan
	err := s.db.Where("public_id = ? AND owner_id = ?", publicID, ownerID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}
	var result PlanResult
	if err := json.Unmarshal([]byte(plan.PlanJSON), &result); err != nil {
		return nil, nil, fmt.Errorf("stored plan is unreadable: %v", err)
	}
	return &plan, &result, nil
}

// Clone copies a saved plan into a fresh row so the original snapshot stays
// untouched while the clinician resumes editing.
func (s *PlanService) Clone(ownerID uint, publicID, newName string) (*models.SavedPlan, error) {
	original, _, err := s.GetSaved(ownerID, publicID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(newName) == "" {
		newName = original.Name + " (copy)"
	}
	clone := &models.SavedPlan{
		PublicID:  uuid.NewString(),
		OwnerID:   ownerID,
		PatientID: original.PatientID,
		Name:      newName,
		PlanJSON:  original.PlanJSON,
	}
	if err := s.db.Create(clone).Error; err != nil {
		return nil, err
	}
	return clone, nil
}

func (s *PlanService) DeleteSaved(ownerID uint, publicID string) error {
	res := s.db.Where("public_id = ? AND owner_id = ?", publicID, ownerID).Delete(&models.SavedPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
