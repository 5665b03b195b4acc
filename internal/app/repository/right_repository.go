package repository

import (
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

// RightRepository answers authorization questions against the live store.
// HasRight is deliberately re-evaluated on every privileged operation so a
// revoked right takes effect on the very next request.
type RightRepository interface {
	HasRight(userID uint, code model.RightCode) (bool, error)
	HasAnyRight(userID uint, codes ...model.RightCode) (bool, error)
	FindByCode(code model.RightCode) (*model.Right, error)
	Grant(userID, rightID uint) error
}

type rightRepository struct {
	db *gorm.DB
}

func NewRightRepository(db *gorm.DB) RightRepository {
	return &rightRepository{db: db}
}

func (r *rightRepository) HasRight(userID uint, code model.RightCode) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserRight{}).
		Joins("JOIN rights ON rights.id = user_rights.right_id").
		Where("user_rights.user_id = ? AND rights.right_code = ?", userID, code).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check user right", err, map[string]interface{}{
			"user_id":    userID,
			"right_code": code,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *rightRepository) HasAnyRight(userID uint, codes ...model.RightCode) (bool, error) {
	for _, code := range codes {
		ok, err := r.HasRight(userID, code)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (r *rightRepository) FindByCode(code model.RightCode) (*model.Right, error) {
	var right model.Right
	if err := r.db.Where("right_code = ?", code).First(&right).Error; err != nil {
		return nil, err
	}
	return &right, nil
}

func (r *rightRepository) Grant(userID, rightID uint) error {
	logger.Debug("Granting right to user", map[string]interface{}{
		"user_id":  userID,
		"right_id": rightID,
	})
	return r.db.Create(&model.UserRight{UserID: userID, RightID: rightID}).Error
}
