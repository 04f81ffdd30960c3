package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a clinician account (nutritionist or admin). Patients are not users;
// they are records owned by a User.
type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	FullName      string
	Role          string `gorm:"size:20;default:nutritionist"` // "nutritionist" | "admin"
	Disabled      bool
	MFAEnabled    bool
	MFACode       string
	ResetToken    string
	ResetTokenExp time.Time
}
