package database

import (
	"github.com/google/uuid"
	"github.com/proffinder/backend/models"
	"gorm.io/gorm"
)

// UserStore is the lookup the auth middleware uses to turn token claims
// into a current principal.
type UserStore struct {
	DB *gorm.DB
}

func (s *UserStore) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
