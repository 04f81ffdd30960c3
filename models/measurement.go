package models

import (
	"time"

	"gorm.io/gorm"
)

// Measurement is one clinical visit's anthropometry. Derived metrics are
// snapshotted on save so reports don't recompute them against a changed engine.
type Measurement struct {
	gorm.Model
	PatientID uint `gorm:"index;not null"`
	TakenAt   time.Time

	WeightKg            float64
	HeightCm            float64
	SittingHeightCm     float64
	HeadCircumferenceCm float64

	Skinfolds []SkinfoldReading
	Girths    []GirthReading
	Breadths  []BreadthReading

	// Computed on save.
	BodyFatPct    float64
	BodyFatMethod string
	MuscleMassKg  float64
	Endomorphy    float64
	Mesomorphy    float64
	Ectomorphy    float64
	QualityRating string `gorm:"size:20"` // isak | partial | basic
}

// SkinfoldReading stores the ISAK triple (third reading optional) plus the
// resolved final value in millimeters. Final must equal the mean of two
// readings or the median of three.
type SkinfoldReading struct {
	gorm.Model
	MeasurementID uint     `gorm:"index;not null"`
	Site          string   `gorm:"size:30;not null"`
	Val1          float64  `gorm:"not null"`
	Val2          float64  `gorm:"not null"`
	Val3          *float64
	FinalMM       float64 `gorm:"not null"`
}

type GirthReading struct {
	gorm.Model
	MeasurementID uint    `gorm:"index;not null"`
	Site          string  `gorm:"size:30;not null"`
	ValueCm       float64 `gorm:"not null"`
}

type BreadthReading struct {
	gorm.Model
	MeasurementID uint    `gorm:"index;not null"`
	Site          string  `gorm:"size:30;not null"`
	ValueCm       float64 `gorm:"not null"`
}

// Skinfold returns the resolved final value for a site, 0 when absent.
// Callers must treat 0 as "not measured", never as a true zero.
func (m *Measurement) Skinfold(site string) float64 {
	for _, s := range m.Skinfolds {
		if s.Site == site {
			return s.FinalMM
		}
	}
	return 0
}

func (m *Measurement) Girth(site string) float64 {
	for _, g := range m.Girths {
		if g.Site == site {
			return g.ValueCm
		}
	}
	return 0
}

func (m *Measurement) Breadth(site string) float64 {
	for _, b := range m.Breadths {
		if b.Site == site {
			return b.ValueCm
		}
	}
	return 0
}
