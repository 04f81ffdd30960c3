package nutrition

import (
	"math"
	"testing"
)

func TestWeightForAgeZ(t *testing.T) {
	tests := []struct {
		name      string
		weight    float64
		sex       string
		ageMonths int
		wantZ     float64
		wantDiag  string
	}{
		{"boy at reference median", 9.6, "male", 12, 0, "normal"},
		{"boy moderately low", 7.0, "male", 12, -2.6, "underweight"},
		{"boy severely low", 6.0, "male", 12, -3.6, "severely underweight"},
		{"girl at reference median", 8.9, "female", 12, 0, "normal"},
		{"interpolated midpoint", 10.25, "male", 15, 0, "normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeightForAgeZ(tt.weight, tt.sex, tt.ageMonths)
			if !ok {
				t.Fatal("WeightForAgeZ returned ok=false")
			}
			if math.Abs(got.Z-tt.wantZ) > 0.01 {
				t.Errorf("Z = %v, want %v", got.Z, tt.wantZ)
			}
			if got.Diagnosis != tt.wantDiag {
				t.Errorf("Diagnosis = %q, want %q", got.Diagnosis, tt.wantDiag)
			}
		})
	}
}

func TestWeightForAgeZOutOfRange(t *testing.T) {
	if _, ok := WeightForAgeZ(15, "male", 48); ok {
		t.Error("age 48 months returned ok=true, tables stop at 36")
	}
	if _, ok := WeightForAgeZ(0, "male", 12); ok {
		t.Error("zero weight returned ok=true")
	}
	if _, ok := WeightForAgeZ(10, "male", -1); ok {
		t.Error("negative age returned ok=true")
	}
}

func TestLengthForAgeZ(t *testing.T) {
	tests := []struct {
		name      string
		length    float64
		sex       string
		ageMonths int
		wantDiag  string
	}{
		{"boy at median", 75.7, "male", 12, "normal"},
		{"girl stunted", 68.5, "female", 12, "stunted"},
		{"girl severely stunted", 66.0, "female", 12, "severely stunted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LengthForAgeZ(tt.length, tt.sex, tt.ageMonths)
			if !ok {
				t.Fatal("LengthForAgeZ returned ok=false")
			}
			if got.Diagnosis != tt.wantDiag {
				t.Errorf("Diagnosis = %q (z=%v), want %q", got.Diagnosis, got.Z, tt.wantDiag)
			}
		})
	}
}
