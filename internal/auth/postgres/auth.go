package postgres

import (
	"github.com/peoplepulse/peoplepulse/internal/auth"
	"gorm.io/gorm"

	internal "github.com/peoplepulse/peoplepulse/internal"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.UserRepository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*auth.User, error) {
	var user auth.User
	err := r.db.Table("users").Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetByID(userID int64) (*auth.User, error) {
	var user auth.User
	err := r.db.Table("users").Where("id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &user, nil
}
