package model

import "time"

// Delivery is a batch of orders owned by an admin and optionally assigned
// to one courier.
type Delivery struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	AdminID   uint      `gorm:"not null;index" json:"admin_id"`
	CourierID *uint     `gorm:"index" json:"courier_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Admin   User  `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	Courier *User `gorm:"foreignKey:CourierID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Delivery) TableName() string {
	return "delivery"
}
