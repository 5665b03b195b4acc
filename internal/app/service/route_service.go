package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

var ErrRouteNotFound = errors.New("route not found")

// RouteWithCouriers is a route together with the couriers assigned to it.
type RouteWithCouriers struct {
	model.Route
	Couriers []repository.RouteCourier `json:"couriers"`
}

// RouteService manages delivery routes and courier assignments to them.
type RouteService interface {
	Create(adminID uint, area string) (*model.Route, error)
	Update(adminID, routeID uint, area string) (*model.Route, error)
	Delete(adminID, routeID uint) error
	Get(adminID, routeID uint) (*model.Route, error)
	ListByAdmin(adminID uint) ([]model.Route, error)
	ListByCourier(courierID uint) ([]model.Route, error)
	ListWithCouriers(adminID uint) ([]RouteWithCouriers, error)
	ListCouriersByRoute(adminID, routeID uint) ([]repository.RouteCourier, error)
	AssignCourier(adminID, courierID, routeID uint) error
}

type routeService struct {
	rightsGuard
	routeRepo repository.RouteRepository
}

func NewRouteService(routeRepo repository.RouteRepository, rightRepo repository.RightRepository) RouteService {
	return &routeService{
		rightsGuard: rightsGuard{rightRepo: rightRepo},
		routeRepo:   routeRepo,
	}
}

func (s *routeService) Create(adminID uint, area string) (*model.Route, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	route := &model.Route{
		Area:    area,
		AdminID: adminID,
	}
	if err := s.routeRepo.Create(route); err != nil {
		return nil, err
	}

	logger.Info("Route created", map[string]interface{}{
		"route_id": route.ID,
		"area":     area,
		"admin_id": adminID,
	})
	return route, nil
}

func (s *routeService) Update(adminID, routeID uint, area string) (*model.Route, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	route, err := s.routeRepo.FindByID(routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	if area != "" {
		route.Area = area
	}
	if err := s.routeRepo.Update(route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *routeService) Delete(adminID, routeID uint) error {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return err
	}

	if _, err := s.routeRepo.FindByID(routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		return err
	}

	if err := s.routeRepo.Delete(routeID); err != nil {
		return err
	}

	logger.Info("Route deleted", map[string]interface{}{
		"route_id": routeID,
		"admin_id": adminID,
	})
	return nil
}

func (s *routeService) Get(adminID, routeID uint) (*model.Route, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	route, err := s.routeRepo.FindByID(routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

func (s *routeService) ListByAdmin(adminID uint) ([]model.Route, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	return s.routeRepo.FindByAdmin(adminID)
}

func (s *routeService) ListByCourier(courierID uint) ([]model.Route, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}
	return s.routeRepo.FindByCourier(courierID)
}

func (s *routeService) ListWithCouriers(adminID uint) ([]RouteWithCouriers, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	routes, err := s.routeRepo.FindByAdmin(adminID)
	if err != nil {
		return nil, err
	}

	result := make([]RouteWithCouriers, 0, len(routes))
	for _, route := range routes {
		couriers, err := s.routeRepo.FindCouriersByRoute(route.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, RouteWithCouriers{Route: route, Couriers: couriers})
	}
	return result, nil
}

func (s *routeService) ListCouriersByRoute(adminID, routeID uint) ([]repository.RouteCourier, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	if _, err := s.routeRepo.FindByID(routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	return s.routeRepo.FindCouriersByRoute(routeID)
}

func (s *routeService) AssignCourier(adminID, courierID, routeID uint) error {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return err
	}

	if _, err := s.routeRepo.FindByID(routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		return err
	}

	if err := s.routeRepo.AssignCourier(courierID, routeID); err != nil {
		return err
	}

	logger.Info("Courier assigned to route", map[string]interface{}{
		"route_id":   routeID,
		"courier_id": courierID,
		"admin_id":   adminID,
	})
	return nil
}
