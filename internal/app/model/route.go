package model

import "time"

// Route is a named delivery area owned by an admin.
type Route struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Area      string    `json:"area"`
	AdminID   uint      `gorm:"not null;index" json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Admin User `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Route) TableName() string {
	return "routes"
}

// UserRoute assigns a courier to a route.
type UserRoute struct {
	ID        uint `gorm:"primarykey" json:"id"`
	CourierID uint `gorm:"not null;index" json:"courier_id"`
	RouteID   uint `gorm:"not null;index" json:"route_id"`

	Courier User  `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE" json:"-"`
	Route   Route `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserRoute) TableName() string {
	return "user_routes"
}
