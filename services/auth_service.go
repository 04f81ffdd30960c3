package services

import (
	"errors"

	"backend/config"
	"backend/models"
	"backend/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Role:     "nutritionist",
		Disabled: false,
	}

	return config.DB.Create(&user).Error
}

func AuthenticateUser(email, password string) (*models.User, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, errors.New("incorrect password")
	}

	return &user, nil
}

func IssueToken(user *models.User) (string, error) {
	return utils.GenerateJWT(user.ID, user.Email, user.Role)
}
