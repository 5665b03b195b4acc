package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/pkg/logger"
	"github.com/hartondavid/delivery-backend/pkg/util"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPhoneAlreadyExists = errors.New("phone already exists")
)

// UserService manages courier accounts. All operations are admin-only
// except profile reads.
type UserService interface {
	GetProfile(userID uint) (*model.User, error)
	ListCouriers(adminID uint) ([]model.User, error)
	SearchCouriers(adminID uint, search string) ([]model.User, error)
	AddCourier(adminID uint, name, email, password, phone string) (*model.User, error)
	DeleteCourier(adminID, courierID uint) error
}

type userService struct {
	rightsGuard
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository, rightRepo repository.RightRepository) UserService {
	return &userService{
		rightsGuard: rightsGuard{rightRepo: rightRepo},
		userRepo:    userRepo,
	}
}

func (s *userService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListCouriers(adminID uint) ([]model.User, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	return s.userRepo.FindCouriers()
}

func (s *userService) SearchCouriers(adminID uint, search string) ([]model.User, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	return s.userRepo.SearchUnassignedCouriers(search)
}

// AddCourier creates a courier account and grants it the courier right.
// The existence pre-checks give friendly errors; the unique constraints on
// email and phone are what actually guarantee no duplicate slips through.
func (s *userService) AddCourier(adminID uint, name, email, password, phone string) (*model.User, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		logger.Warn("Courier creation failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByPhone(phone); err == nil {
		logger.Warn("Courier creation failed: phone already exists", map[string]interface{}{
			"phone": phone,
		})
		return nil, ErrPhoneAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	courierRight, err := s.rightRepo.FindByCode(model.RightCourier)
	if err != nil {
		logger.Error("Courier right missing from rights table", err)
		return nil, err
	}
	if err := s.rightRepo.Grant(user.ID, courierRight.ID); err != nil {
		return nil, err
	}

	logger.Info("Courier created successfully", map[string]interface{}{
		"courier_id": user.ID,
		"email":      email,
		"admin_id":   adminID,
	})
	return user, nil
}

func (s *userService) DeleteCourier(adminID, courierID uint) error {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(courierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(courierID); err != nil {
		return err
	}

	logger.Info("Courier deleted", map[string]interface{}{
		"courier_id": courierID,
		"admin_id":   adminID,
	})
	return nil
}
