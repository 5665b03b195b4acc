package model

import "time"

// RightCode identifies a permission level. The numeric values are fixed
// reference data shared with clients.
type RightCode int

const (
	RightAdmin   RightCode = 1
	RightCourier RightCode = 2
)

type Right struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	RightCode RightCode `gorm:"uniqueIndex;not null" json:"right_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Right) TableName() string {
	return "rights"
}

// UserRight assigns a right to a user. A user's authorization is always
// re-derived from these rows at request time.
type UserRight struct {
	ID      uint `gorm:"primarykey" json:"id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`
	RightID uint `gorm:"not null;index" json:"right_id"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Right Right `gorm:"foreignKey:RightID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserRight) TableName() string {
	return "user_rights"
}
