package nutrition

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Typed, range-clamped wrappers for physical quantities. Constructors reject
// non-finite input (a programming error) but clamp out-of-range values, so a
// single absurd skinfold degrades to a bound instead of aborting a whole
// report. Callers that need strict rejection use the IsValid* guards.

type (
	Millimeters float64
	Centimeters float64
	Kilograms   float64
	Percentage  float64
	Years       float64
)

// Physiological bounds for the clamped constructors.
const (
	MaxSkinfoldMM = 100.0
	MaxHeightCM   = 300.0
	MaxWeightKG   = 500.0
	MaxPercent    = 100.0
	MaxAgeYears   = 150.0
)

var ErrNotFinite = errors.New("value must be a finite number")

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func checkFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrNotFinite, v)
	}
	return nil
}

func NewMillimeters(v float64) (Millimeters, error) {
	if err := checkFinite(v); err != nil {
		return 0, err
	}
	return Millimeters(clamp(v, 0, MaxSkinfoldMM)), nil
}

func NewCentimeters(v float64) (Centimeters, error) {
	if err := checkFinite(v); err != nil {
		return 0, err
	}
	return Centimeters(clamp(v, 0, MaxHeightCM)), nil
}

func NewKilograms(v float64) (Kilograms, error) {
	if err := checkFinite(v); err != nil {
		return 0, err
	}
	return Kilograms(clamp(v, 0, MaxWeightKG)), nil
}

func NewPercentage(v float64) (Percentage, error) {
	if err := checkFinite(v); err != nil {
		return 0, err
	}
	return Percentage(clamp(v, 0, MaxPercent)), nil
}

func NewYears(v float64) (Years, error) {
	if err := checkFinite(v); err != nil {
		return 0, err
	}
	return Years(clamp(v, 0, MaxAgeYears)), nil
}

// Unchecked constructors for internal use once validity is established
// upstream (e.g. values already stored through a checked path).

func MillimetersUnchecked(v float64) Millimeters { return Millimeters(v) }
func CentimetersUnchecked(v float64) Centimeters { return Centimeters(v) }
func KilogramsUnchecked(v float64) Kilograms     { return Kilograms(v) }
func PercentageUnchecked(v float64) Percentage   { return Percentage(v) }

// Conversions are pure and unit-preserving.

func (m Millimeters) Centimeters() Centimeters { return Centimeters(float64(m) / 10.0) }
func (c Centimeters) Millimeters() Millimeters { return Millimeters(float64(c) * 10.0) }
func (c Centimeters) Meters() float64          { return float64(c) / 100.0 }

// Strict type guards for callers that want rejection rather than clamping.

func IsValidSkinfold(v float64) bool {
	return checkFinite(v) == nil && v >= 0 && v <= MaxSkinfoldMM
}

func IsValidHeight(v float64) bool {
	return checkFinite(v) == nil && v >= 0 && v <= MaxHeightCM
}

func IsValidWeight(v float64) bool {
	return checkFinite(v) == nil && v >= 0 && v <= MaxWeightKG
}

func IsValidAge(v float64) bool {
	return checkFinite(v) == nil && v >= 0 && v <= MaxAgeYears
}

// SkinfoldValue is the tagged union for a site value: either a plain reading
// or an ISAK triple whose final value is resolved from the raw readings.
type SkinfoldValue struct {
	isak bool
	raw  float64
	v1   float64
	v2   float64
	v3   *float64
}

func RawSkinfold(mm float64) SkinfoldValue {
	return SkinfoldValue{raw: mm}
}

func ISAKSkinfold(v1, v2 float64, v3 *float64) SkinfoldValue {
	return SkinfoldValue{isak: true, v1: v1, v2: v2, v3: v3}
}

// Final resolves the usable millimeter value: the mean of two readings, the
// median of three, or the raw value for a plain reading. The result is
// clamped like any other skinfold.
func (s SkinfoldValue) Final() Millimeters {
	return Millimeters(clamp(s.finalRaw(), 0, MaxSkinfoldMM))
}

func (s SkinfoldValue) finalRaw() float64 {
	if !s.isak {
		return s.raw
	}
	return ResolveISAKFinal(s.v1, s.v2, s.v3)
}

// ResolveISAKFinal computes the protocol-final value for 2 or 3 site
// readings: mean of two, median of three.
func ResolveISAKFinal(v1, v2 float64, v3 *float64) float64 {
	if v3 == nil {
		return (v1 + v2) / 2.0
	}
	vals := []float64{v1, v2, *v3}
	sort.Float64s(vals)
	return vals[1]
}
