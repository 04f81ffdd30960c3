package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type PatientService struct{ db *gorm.DB }

func NewPatientService(db *gorm.DB) *PatientService { return &PatientService{db: db} }

var ErrPatientNotFound = errors.New("patient not found")

// GetPatient loads a patient with allergies and meal moments, scoped to the
// owning clinician.
func (s *PatientService) GetPatient(ownerID, patientID uint) (*models.Patient, error) {
	var p models.Patient
	err := s.db.
		Preload("Allergies").
		Preload("MealMoments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND owner_id = ?", patientID, ownerID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PatientService) ListPatients(ownerID uint, search string) ([]models.Patient, error) {
	q := s.db.Where("owner_id = ?", ownerID)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
	}
	var patients []models.Patient
	if err := q.Order("last_name ASC, first_name ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// CreatePatient validates and stores a new patient record.
func (s *PatientService) CreatePatient(ownerID uint, p *models.Patient) error {
	p.OwnerID = ownerID
	if err := s.validate(p); err != nil {
		return err
	}
	if len(p.MealMoments) == 0 {
		p.MealMoments = defaultMealMoments()
	}
	return s.db.Create(p).Error
}

// UpdatePatient replaces the record wholesale; allergies and meal moments are
// replaced too so the stored state always matches what the clinician last saw.
func (s *PatientService) UpdatePatient(ownerID uint, patientID uint, updated *models.Patient) (*models.Patient, error) {
	existing, err := s.GetPatient(ownerID, patientID)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.OwnerID = ownerID
	if err := s.validate(updated); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", existing.ID).Delete(&models.Allergy{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", existing.ID).Delete(&models.MealMoment{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(updated).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetPatient(ownerID, patientID)
}

func (s *PatientService) DeletePatient(ownerID, patientID uint) error {
	res := s.db.Where("id = ? AND owner_id = ?", patientID, ownerID).Delete(&models.Patient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// SetProfilePicture uploads the photo and stores its URL.
func (s *PatientService) SetProfilePicture(ownerID, patientID uint, base64Image string) (string, error) {
	p, err := s.GetPatient(ownerID, patientID)
	if err != nil {
		return "", err
	}
	url, err := utils.UploadBase64ImageToS3(base64Image, "patient-photos", fmt.Sprintf("patient-%d", p.ID))
	if err != nil {
		return "", err
	}
	p.ProfilePicture = url
	if err := s.db.Model(p).Update("profile_picture", url).Error; err != nil {
		return "", err
	}
	return url, nil
}

func (s *PatientService) validate(p *models.Patient) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return errors.New("first name is required")
	}
	if p.Sex != "male" && p.Sex != "female" {
		return errors.New("sex must be male or female")
	}
	if p.WeightKg < 0 || p.HeightCm < 0 {
		return errors.New("weight and height must not be negative")
	}
	for _, a := range p.Allergies {
		switch a.Severity {
		case "fatal", "intolerance", "preference":
		default:
			return fmt.Errorf("allergy %q has invalid severity %q", a.Name, a.Severity)
		}
	}
	return validateMealMoments(p.MealMoments)
}

// Enabled moment ratios must cover the whole day.
func validateMealMoments(moments []models.MealMoment) error {
	if len(moments) == 0 {
		return nil
	}
	var sum float64
	enabled := 0
	for _, m := range moments {
		if m.Ratio < 0 {
			return fmt.Errorf("moment %q has negative ratio", m.Name)
		}
		if m.Enabled {
			sum += m.Ratio
			enabled++
		}
	}
	if enabled == 0 {
		return errors.New("at least one meal moment must be enabled")
	}
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("enabled moment ratios sum to %.2f, must sum to 1.0", sum)
	}
	return nil
}

func defaultMealMoments() []models.MealMoment {
	return []models.MealMoment{
		{Name: "breakfast", Position: 1, Enabled: true, Ratio: 0.25},
		{Name: "lunch", Position: 2, Enabled: true, Ratio: 0.35},
		{Name: "snack", Position: 3, Enabled: true, Ratio: 0.10},
		{Name: "dinner", Position: 4, Enabled: true, Ratio: 0.30},
	}
}
