package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByPhone(phone string) (*model.User, error)
	UpdateLastLogin(id uint) error
	UpdatePassword(id uint, passwordHash string) error
	Delete(id uint) error
	FindCouriers() ([]model.User, error)
	SearchUnassignedCouriers(search string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(phone string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(id uint) error {
	now := time.Now()
	err := r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login", &now).Error
	if err != nil {
		logger.Error("Failed to update last login", err, map[string]interface{}{
			"user_id": id,
		})
	}
	return err
}

func (r *userRepository) UpdatePassword(id uint, passwordHash string) error {
	err := r.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
	if err != nil {
		logger.Error("Failed to update password", err, map[string]interface{}{
			"user_id": id,
		})
	}
	return err
}

func (r *userRepository) Delete(id uint) error {
	logger.Debug("Deleting user from database", map[string]interface{}{
		"user_id": id,
	})

	if err := r.db.Delete(&model.User{}, id).Error; err != nil {
		logger.Error("Failed to delete user from database", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}

// FindCouriers returns every user holding the courier right.
func (r *userRepository) FindCouriers() ([]model.User, error) {
	var users []model.User
	err := r.db.
		Joins("JOIN user_rights ON user_rights.user_id = users.id").
		Joins("JOIN rights ON rights.id = user_rights.right_id").
		Where("rights.right_code = ?", model.RightCourier).
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to list couriers", err)
		return nil, err
	}
	return users, nil
}

// SearchUnassignedCouriers finds couriers not yet assigned to any route
// whose name or email matches the search term.
func (r *userRepository) SearchUnassignedCouriers(search string) ([]model.User, error) {
	pattern := "%" + search + "%"

	var users []model.User
	err := r.db.
		Joins("JOIN user_rights ON user_rights.user_id = users.id").
		Joins("JOIN rights ON rights.id = user_rights.right_id").
		Where("rights.right_code = ?", model.RightCourier).
		Where("users.name LIKE ? OR users.email LIKE ?", pattern, pattern).
		Where("users.id NOT IN (?)", r.db.Model(&model.UserRoute{}).Select("courier_id")).
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to search couriers", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return users, nil
}
