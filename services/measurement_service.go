package services

import (
	"errors"
	"fmt"
	"time"

	"backend/models"
	"backend/nutrition"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type MeasurementService struct {
	db       *gorm.DB
	patients *PatientService
}

func NewMeasurementService(db *gorm.DB, patients *PatientService) *MeasurementService {
	return &MeasurementService{db: db, patients: patients}
}

// SkinfoldInput carries the raw ISAK readings; the final value is always
// resolved server-side, never trusted from the client.
type SkinfoldInput struct {
	Site string   `json:"site" binding:"required"`
	Val1 float64  `json:"val1" binding:"required"`
	Val2 float64  `json:"val2" binding:"required"`
	Val3 *float64 `json:"val3"`
}

type SiteValueInput struct {
	Site    string  `json:"site" binding:"required"`
	ValueCm float64 `json:"value_cm" binding:"required"`
}

type MeasurementInput struct {
	TakenAt             time.Time        `json:"taken_at"`
	WeightKg            float64          `json:"weight_kg"`
	HeightCm            float64          `json:"height_cm"`
	SittingHeightCm     float64          `json:"sitting_height_cm"`
	HeadCircumferenceCm float64          `json:"head_circumference_cm"`
	Skinfolds           []SkinfoldInput  `json:"skinfolds"`
	Girths              []SiteValueInput `json:"girths"`
	Breadths            []SiteValueInput `json:"breadths"`
	Profile             string           `json:"profile"` // general | athlete | control | rapid
}

// Create validates the visit, resolves skinfold finals, computes the derived
// body-composition metrics and stores everything as one row.
func (s *MeasurementService) Create(ownerID, patientID uint, in MeasurementInput) (*models.Measurement, error) {
	patient, err := s.patients.GetPatient(ownerID, patientID)
	if err != nil {
		return nil, err
	}

	if in.WeightKg > 0 && !nutrition.IsValidWeight(in.WeightKg) {
		return nil, fmt.Errorf("weight %.1f kg out of range", in.WeightKg)
	}
	if in.HeightCm > 0 && !nutrition.IsValidHeight(in.HeightCm) {
		return nil, fmt.Errorf("height %.1f cm out of range", in.HeightCm)
	}

	m := &models.Measurement{
		PatientID:           patient.ID,
		TakenAt:             in.TakenAt,
		WeightKg:            in.WeightKg,
		HeightCm:            in.HeightCm,
		SittingHeightCm:     in.SittingHeightCm,
		HeadCircumferenceCm: in.HeadCircumferenceCm,
	}
	if m.TakenAt.IsZero() {
		m.TakenAt = time.Now()
	}
	// Fall back to the profile values so a weight-only visit still works.
	if m.WeightKg <= 0 {
		m.WeightKg = patient.WeightKg
	}
	if m.HeightCm <= 0 {
		m.HeightCm = patient.HeightCm
	}

	for _, sf := range in.Skinfolds {
		if !nutrition.IsValidSkinfold(sf.Val1) || !nutrition.IsValidSkinfold(sf.Val2) {
			return nil, fmt.Errorf("skinfold %q readings out of range", sf.Site)
		}
		if sf.Val3 != nil && !nutrition.IsValidSkinfold(*sf.Val3) {
			return nil, fmt.Errorf("skinfold %q third reading out of range", sf.Site)
		}
		m.Skinfolds = append(m.Skinfolds, models.SkinfoldReading{
			Site:    sf.Site,
			Val1:    sf.Val1,
			Val2:    sf.Val2,
			Val3:    sf.Val3,
			FinalMM: float64(nutrition.ISAKSkinfold(sf.Val1, sf.Val2, sf.Val3).Final()),
		})
	}
	for _, g := range in.Girths {
		m.Girths = append(m.Girths, models.GirthReading{Site: g.Site, ValueCm: g.ValueCm})
	}
	for _, b := range in.Breadths {
		m.Breadths = append(m.Breadths, models.BreadthReading{Site: b.Site, ValueCm: b.ValueCm})
	}

	s.computeDerived(m, patient, nutrition.ProfileType(in.Profile))

	if err := s.db.Create(m).Error; err != nil {
		return nil, err
	}

	// Keep the profile's current weight/height in sync with the latest visit.
	if err := s.db.Model(patient).Updates(map[string]any{
		"weight_kg": m.WeightKg,
		"height_cm": m.HeightCm,
	}).Error; err != nil {
		log.Warn().Err(err).Uint("patient_id", patient.ID).Msg("failed to sync patient weight/height")
	}

	return m, nil
}

func (s *MeasurementService) computeDerived(m *models.Measurement, patient *models.Patient, profile nutrition.ProfileType) {
	age := patient.AgeYearsAt(m.TakenAt)

	if bf, ok := nutrition.BodyFat(m, patient.Sex, profile, age); ok {
		m.BodyFatPct = bf.Percent
		m.BodyFatMethod = bf.Method
	}
	if frac := nutrition.FiveComponentFractionation(m, patient.Sex); frac != nil {
		m.MuscleMassKg = frac.MuscleKg
	}
	if soma := nutrition.HeathCarterSomatotype(m); soma != nil {
		m.Endomorphy = soma.Endomorphy
		m.Mesomorphy = soma.Mesomorphy
		m.Ectomorphy = soma.Ectomorphy
	}
	m.QualityRating = nutrition.MeasurementQuality(m)
}

func (s *MeasurementService) List(ownerID, patientID uint) ([]models.Measurement, error) {
	if _, err := s.patients.GetPatient(ownerID, patientID); err != nil {
		return nil, err
	}
	var rows []models.Measurement
	err := s.db.
		Preload("Skinfolds").
		Preload("Girths").
		Preload("Breadths").
		Where("patient_id = ?", patientID).
		Order("taken_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *MeasurementService) Get(ownerID, patientID, measurementID uint) (*models.Measurement, error) {
	if _, err := s.patients.GetPatient(ownerID, patientID); err != nil {
		return nil, err
	}
	var m models.Measurement
	err := s.db.
		Preload("Skinfolds").
		Preload("Girths").
		Preload("Breadths").
		Where("id = ? AND patient_id = ?", measurementID, patientID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("measurement not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *MeasurementService) Delete(ownerID, patientID, measurementID uint) error {
	if _, err := s.patients.GetPatient(ownerID, patientID); err != nil {
		return err
	}
	res := s.db.Where("id = ? AND patient_id = ?", measurementID, patientID).Delete(&models.Measurement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("measurement not found")
	}
	return nil
}

// GrowthAssessment runs the 0-36 month growth screen against the latest
// visit. Returns an error for patients outside the covered age band.
func (s *MeasurementService) GrowthAssessment(ownerID, patientID uint) (map[string]any, error) {
	patient, err := s.patients.GetPatient(ownerID, patientID)
	if err != nil {
		return nil, err
	}
	months := patient.AgeMonthsAt(time.Now())
	if months > 36 {
		return nil, errors.New("growth assessment covers ages 0-36 months")
	}

	out := map[string]any{"age_months": months}
	if w, ok := nutrition.WeightForAgeZ(patient.WeightKg, patient.Sex, months); ok {
		out["weight_for_age"] = w
	}
	if l, ok := nutrition.LengthForAgeZ(patient.HeightCm, patient.Sex, months); ok {
		out["length_for_age"] = l
	}
	return out, nil
}
