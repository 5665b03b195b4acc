package model

import "time"

// Issue is a problem report tied to exactly one delivery.
type Issue struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Description string    `json:"description"`
	DeliveryID  uint      `gorm:"not null;index" json:"delivery_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Delivery Delivery `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Issue) TableName() string {
	return "issues"
}
