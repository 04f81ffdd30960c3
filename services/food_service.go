package services

import (
	"errors"
	"fmt"
	"strings"

	"backend/models"

	"gorm.io/gorm"
)

// FoodService manages the resident food catalog. All nutrient values are per
// 100 g as eaten; plan generation works entirely against this table.
type FoodService struct {
	db  *gorm.DB
	rek *RekognitionService
}

func NewFoodService(db *gorm.DB, rek *RekognitionService) *FoodService {
	return &FoodService{db: db, rek: rek}
}

var foodCategories = map[string]bool{
	"cereals": true, "fruits": true, "vegetables": true, "dairy": true,
	"meats": true, "fish": true, "eggs": true, "fats": true,
	"legumes": true, "tubers": true, "sugars": true,
}

func (s *FoodService) Create(f *models.Food) error {
	if err := s.validate(f); err != nil {
		return err
	}
	return s.db.Create(f).Error
}

func (s *FoodService) Update(id uint, f *models.Food) (*models.Food, error) {
	var existing models.Food
	if err := s.db.First(&existing, id).Error; err != nil {
		return nil, errors.New("food not found")
	}
	f.ID = existing.ID
	if err := s.validate(f); err != nil {
		return nil, err
	}
	if err := s.db.Save(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FoodService) Delete(id uint) error {
	res := s.db.Delete(&models.Food{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("food not found")
	}
	return nil
}

func (s *FoodService) Get(id uint) (*models.Food, error) {
	var f models.Food
	if err := s.db.First(&f, id).Error; err != nil {
		return nil, errors.New("food not found")
	}
	return &f, nil
}

// Search filters by name substring and optional category.
func (s *FoodService) Search(query, category string) ([]models.Food, error) {
	q := s.db.Order("name ASC")
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var foods []models.Food
	if err := q.Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *FoodService) All() ([]models.Food, error) {
	var foods []models.Food
	if err := s.db.Order("name ASC").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// Recognize matches a food photo against the catalog: detected labels are
// tried in confidence order until one of them hits a catalog name.
func (s *FoodService) Recognize(base64Img string) ([]models.Food, error) {
	if s.rek == nil {
		return nil, errors.New("image recognition not configured")
	}
	labels, err := s.rek.RecognizeLabels(base64Img)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.New("no labels detected")
	}

	for _, label := range labels {
		matches, err := s.Search(label, "")
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return matches, nil
		}
	}
	return nil, fmt.Errorf("no catalog match for labels: %s", strings.Join(labels, ", "))
}

func (s *FoodService) validate(f *models.Food) error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("food name is required")
	}
	if !foodCategories[f.Category] {
		return fmt.Errorf("unknown category %q", f.Category)
	}
	if f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
		return errors.New("nutrient values must not be negative")
	}
	if f.WasteFactor <= 0 || f.WasteFactor > 1 {
		f.WasteFactor = 1
	}
	return nil
}
