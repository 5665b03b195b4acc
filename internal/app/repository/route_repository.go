package repository

import (
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

// RouteCourier is a courier row joined with the route it serves.
type RouteCourier struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Area  string `json:"area"`
}

type RouteRepository interface {
	Create(route *model.Route) error
	FindByID(id uint) (*model.Route, error)
	Update(route *model.Route) error
	Delete(id uint) error
	FindByAdmin(adminID uint) ([]model.Route, error)
	FindByCourier(courierID uint) ([]model.Route, error)
	AssignCourier(courierID, routeID uint) error
	FindCouriersByRoute(routeID uint) ([]RouteCourier, error)
}

type routeRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) Create(route *model.Route) error {
	if err := r.db.Create(route).Error; err != nil {
		logger.Error("Failed to create route in database", err, map[string]interface{}{
			"area": route.Area,
		})
		return err
	}
	return nil
}

func (r *routeRepository) FindByID(id uint) (*model.Route, error) {
	var route model.Route
	if err := r.db.First(&route, id).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) Update(route *model.Route) error {
	if err := r.db.Save(route).Error; err != nil {
		logger.Error("Failed to update route in database", err, map[string]interface{}{
			"route_id": route.ID,
		})
		return err
	}
	return nil
}

func (r *routeRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Route{}, id).Error; err != nil {
		logger.Error("Failed to delete route from database", err, map[string]interface{}{
			"route_id": id,
		})
		return err
	}
	return nil
}

func (r *routeRepository) FindByAdmin(adminID uint) ([]model.Route, error) {
	var routes []model.Route
	if err := r.db.Where("admin_id = ?", adminID).Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) FindByCourier(courierID uint) ([]model.Route, error) {
	var routes []model.Route
	err := r.db.
		Joins("JOIN user_routes ON user_routes.route_id = routes.id").
		Where("user_routes.courier_id = ?", courierID).
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) AssignCourier(courierID, routeID uint) error {
	logger.Debug("Assigning courier to route", map[string]interface{}{
		"courier_id": courierID,
		"route_id":   routeID,
	})
	return r.db.Create(&model.UserRoute{CourierID: courierID, RouteID: routeID}).Error
}

func (r *routeRepository) FindCouriersByRoute(routeID uint) ([]RouteCourier, error) {
	var couriers []RouteCourier
	err := r.db.Model(&model.UserRoute{}).
		Select("users.id, users.name, users.email, users.phone, routes.area").
		Joins("JOIN users ON users.id = user_routes.courier_id").
		Joins("JOIN routes ON routes.id = user_routes.route_id").
		Where("user_routes.route_id = ?", routeID).
		Scan(&couriers).Error
	if err != nil {
		logger.Error("Failed to list couriers for route", err, map[string]interface{}{
			"route_id": routeID,
		})
		return nil, err
	}
	return couriers, nil
}
