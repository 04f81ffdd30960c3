package services

import (
	"context"
	"errors"
	"math"
	"time"

	"backend/models"
	"backend/nutrition"

	"gorm.io/gorm"
)

// AnalyticsService computes longitudinal trends over a patient's visit
// history for the progress charts.
type AnalyticsService struct {
	db       *gorm.DB
	patients *PatientService
}

func NewAnalyticsService(db *gorm.DB, patients *PatientService) *AnalyticsService {
	return &AnalyticsService{db: db, patients: patients}
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type TrendSeries struct {
	Metric string       `json:"metric"`
	Unit   string       `json:"unit"`
	Points []TrendPoint `json:"points"`
	Delta  float64      `json:"delta"` // last minus first
}

type PatientTrends struct {
	PatientID uint `json:"patient_id"`
	Range     struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Weight     TrendSeries `json:"weight"`
	BMI        TrendSeries `json:"bmi"`
	BodyFat    TrendSeries `json:"body_fat"`
	MuscleMass TrendSeries `json:"muscle_mass"`
	Visits     int         `json:"visits"`
}

// Trends builds per-visit series for weight, BMI, body fat and muscle mass
// between two dates.
func (s *AnalyticsService) Trends(ctx context.Context, ownerID, patientID uint, from, to time.Time) (*PatientTrends, error) {
	if _, err := s.patients.GetPatient(ownerID, patientID); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, errors.New("range end precedes start")
	}

	var rows []models.Measurement
	err := s.db.WithContext(ctx).
		Where("patient_id = ? AND taken_at BETWEEN ? AND ?", patientID, dayStart(from), dayEnd(to)).
		Order("taken_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &PatientTrends{PatientID: patientID, Visits: len(rows)}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")

	out.Weight = TrendSeries{Metric: "weight", Unit: "kg"}
	out.BMI = TrendSeries{Metric: "bmi", Unit: "kg/m2"}
	out.BodyFat = TrendSeries{Metric: "body_fat", Unit: "%"}
	out.MuscleMass = TrendSeries{Metric: "muscle_mass", Unit: "kg"}

	for _, m := range rows {
		date := m.TakenAt.Format("2006-01-02")
		if m.WeightKg > 0 {
			out.Weight.Points = append(out.Weight.Points, TrendPoint{Date: date, Value: round2(m.WeightKg)})
		}
		if bmi, err := nutrition.CalculateBMI(m.HeightCm, m.WeightKg); err == nil {
			out.BMI.Points = append(out.BMI.Points, TrendPoint{Date: date, Value: round2(bmi)})
		}
		if m.BodyFatPct > 0 {
			out.BodyFat.Points = append(out.BodyFat.Points, TrendPoint{Date: date, Value: round2(m.BodyFatPct)})
		}
		if m.MuscleMassKg > 0 {
			out.MuscleMass.Points = append(out.MuscleMass.Points, TrendPoint{Date: date, Value: round2(m.MuscleMassKg)})
		}
	}

	for _, series := range []*TrendSeries{&out.Weight, &out.BMI, &out.BodyFat, &out.MuscleMass} {
		if n := len(series.Points); n >= 2 {
			series.Delta = round2(series.Points[n-1].Value - series.Points[0].Value)
		}
	}

	return out, nil
}

// Summary is the dashboard card: latest visit snapshot plus adherence info.
type PatientSummary struct {
	PatientID     uint    `json:"patient_id"`
	LastVisit     string  `json:"last_visit,omitempty"`
	WeightKg      float64 `json:"weight_kg,omitempty"`
	BMI           float64 `json:"bmi,omitempty"`
	BMICategory   string  `json:"bmi_category,omitempty"`
	BodyFatPct    float64 `json:"body_fat_pct,omitempty"`
	QualityRating string  `json:"quality_rating,omitempty"`
	SavedPlans    int64   `json:"saved_plans"`
}

func (s *AnalyticsService) Summary(ctx context.Context, ownerID, patientID uint) (*PatientSummary, error) {
	if _, err := s.patients.GetPatient(ownerID, patientID); err != nil {
		return nil, err
	}

	out := &PatientSummary{PatientID: patientID}

	var latest models.Measurement
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("taken_at DESC").
		First(&latest).Error
	if err == nil {
		out.LastVisit = latest.TakenAt.Format("2006-01-02")
		out.WeightKg = round2(latest.WeightKg)
		out.BodyFatPct = round2(latest.BodyFatPct)
		out.QualityRating = latest.QualityRating
		if bmi, err := nutrition.CalculateBMI(latest.HeightCm, latest.WeightKg); err == nil {
			out.BMI = round2(bmi)
			out.BMICategory = nutrition.BMICategory(bmi)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.SavedPlan{}).
		Where("owner_id = ? AND patient_id = ?", ownerID, patientID).
		Count(&out.SavedPlans).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
