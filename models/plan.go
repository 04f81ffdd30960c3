package models

import "gorm.io/gorm"

// SavedPlan is an immutable named snapshot of a weekly plan plus the goals it
// was generated against. Resuming work on a saved plan clones it into a new
// row; rows are never edited in place.
type SavedPlan struct {
	gorm.Model
	PublicID  string `gorm:"type:varchar(36);uniqueIndex;not null"`
	OwnerID   uint   `gorm:"index;not null"`
	PatientID uint   `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	PlanJSON  string `gorm:"type:text;not null"`
}
