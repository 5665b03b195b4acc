package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

var ErrIssueNotFound = errors.New("issue not found")

// IssueService manages delivery issue reports. Couriers file and maintain
// issues on their deliveries; admins read the full list.
type IssueService interface {
	Create(courierID, deliveryID uint, description string) (*model.Issue, error)
	Update(courierID, issueID uint, description string) (*model.Issue, error)
	Delete(courierID, issueID uint) error
	Get(courierID, issueID uint) (*model.Issue, error)
	ListAll(adminID uint) ([]repository.IssueRow, error)
	ListByCourier(courierID uint) ([]repository.IssueRow, error)
}

type issueService struct {
	rightsGuard
	issueRepo    repository.IssueRepository
	deliveryRepo repository.DeliveryRepository
}

func NewIssueService(issueRepo repository.IssueRepository, deliveryRepo repository.DeliveryRepository, rightRepo repository.RightRepository) IssueService {
	return &issueService{
		rightsGuard:  rightsGuard{rightRepo: rightRepo},
		issueRepo:    issueRepo,
		deliveryRepo: deliveryRepo,
	}
}

func (s *issueService) Create(courierID, deliveryID uint, description string) (*model.Issue, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}

	if _, err := s.deliveryRepo.FindByID(deliveryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}

	issue := &model.Issue{
		Description: description,
		DeliveryID:  deliveryID,
	}
	if err := s.issueRepo.Create(issue); err != nil {
		return nil, err
	}

	logger.Info("Issue reported", map[string]interface{}{
		"issue_id":    issue.ID,
		"delivery_id": deliveryID,
		"courier_id":  courierID,
	})
	return issue, nil
}

func (s *issueService) Update(courierID, issueID uint, description string) (*model.Issue, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}

	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	if description != "" {
		issue.Description = description
	}
	if err := s.issueRepo.Update(issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) Delete(courierID, issueID uint) error {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return err
	}

	if _, err := s.issueRepo.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIssueNotFound
		}
		return err
	}

	if err := s.issueRepo.Delete(issueID); err != nil {
		return err
	}

	logger.Info("Issue deleted", map[string]interface{}{
		"issue_id":   issueID,
		"courier_id": courierID,
	})
	return nil
}

func (s *issueService) Get(courierID, issueID uint) (*model.Issue, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}

	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return issue, nil
}

func (s *issueService) ListAll(adminID uint) ([]repository.IssueRow, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	return s.issueRepo.FindAll()
}

func (s *issueService) ListByCourier(courierID uint) ([]repository.IssueRow, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}
	return s.issueRepo.FindByCourier(courierID)
}
