package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

// IssueRow is an issue joined with the courier assigned to its delivery.
type IssueRow struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	DeliveryID  uint      `json:"delivery_id"`
	CourierName string    `json:"courier_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type IssueRepository interface {
	Create(issue *model.Issue) error
	FindByID(id uint) (*model.Issue, error)
	Update(issue *model.Issue) error
	Delete(id uint) error
	FindAll() ([]IssueRow, error)
	FindByCourier(courierID uint) ([]IssueRow, error)
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(issue *model.Issue) error {
	logger.Debug("Creating issue in database", map[string]interface{}{
		"delivery_id": issue.DeliveryID,
	})

	if err := r.db.Create(issue).Error; err != nil {
		logger.Error("Failed to create issue in database", err, map[string]interface{}{
			"delivery_id": issue.DeliveryID,
		})
		return err
	}
	return nil
}

func (r *issueRepository) FindByID(id uint) (*model.Issue, error) {
	var issue model.Issue
	if err := r.db.First(&issue, id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) Update(issue *model.Issue) error {
	if err := r.db.Save(issue).Error; err != nil {
		logger.Error("Failed to update issue in database", err, map[string]interface{}{
			"issue_id": issue.ID,
		})
		return err
	}
	return nil
}

func (r *issueRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Issue{}, id).Error; err != nil {
		logger.Error("Failed to delete issue from database", err, map[string]interface{}{
			"issue_id": id,
		})
		return err
	}
	return nil
}

func (r *issueRepository) FindAll() ([]IssueRow, error) {
	var rows []IssueRow
	err := r.db.Model(&model.Issue{}).
		Select("issues.id, issues.description, issues.delivery_id, issues.created_at, users.name AS courier_name").
		Joins("JOIN delivery ON delivery.id = issues.delivery_id").
		Joins("LEFT JOIN users ON users.id = delivery.courier_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to list issues", err)
		return nil, err
	}
	return rows, nil
}

func (r *issueRepository) FindByCourier(courierID uint) ([]IssueRow, error) {
	var rows []IssueRow
	err := r.db.Model(&model.Issue{}).
		Select("issues.id, issues.description, issues.delivery_id, issues.created_at, users.name AS courier_name").
		Joins("JOIN delivery ON delivery.id = issues.delivery_id").
		Joins("JOIN users ON users.id = delivery.courier_id").
		Where("delivery.courier_id = ?", courierID).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to list issues for courier", err, map[string]interface{}{
			"courier_id": courierID,
		})
		return nil, err
	}
	return rows, nil
}
