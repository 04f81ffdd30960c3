package config

import (
	"fmt"
	"os"

	"backend/models"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Allergy{},
		&models.MealMoment{},
		&models.Measurement{},
		&models.SkinfoldReading{},
		&models.GirthReading{},
		&models.BreadthReading{},
		&models.Food{},
		&models.SavedPlan{},
		&models.Alert{},
		&models.UserDevice{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}
}
