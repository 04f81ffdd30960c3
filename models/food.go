package models

import "gorm.io/gorm"

// Food is a catalog entry. All nutrient values are per 100 g as eaten.
type Food struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null"`
	Category string `gorm:"size:30"` // cereals | fruits | vegetables | dairy | meats | fish | eggs | fats | legumes | tubers | sugars

	Calories float64 // kcal
	Protein  float64 // g
	Carbs    float64 // g
	Fat      float64 // g
	Fiber    float64 // g
	Sugar    float64 // g

	SodiumMg    float64
	PotassiumMg float64
	CalciumMg   float64
	IronMg      float64
	ZincMg      float64
	VitaminAMcg float64
	VitaminCMg  float64

	// Raw→edible yield; 1.0 means no waste. Gross weight = raw / WasteFactor.
	WasteFactor float64 `gorm:"default:1"`
}
