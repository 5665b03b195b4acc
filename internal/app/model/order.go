package model

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusIssue     OrderStatus = "issue"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusDelivered, StatusCancelled, StatusIssue:
		return true
	}
	return false
}

// Order is a shipment item. A nil DeliveryID means the order sits in the
// unassigned pool.
type Order struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	Recipient  string      `json:"recipient"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	Status     OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	DeliveryID *uint       `gorm:"index" json:"delivery_id"`
	AdminID    uint        `gorm:"not null;index" json:"admin_id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	Delivery *Delivery `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE" json:"-"`
	Admin    User      `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
