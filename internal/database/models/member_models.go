package models

import "time"

const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

type Member struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"type:varchar(128);not null" json:"name"`
	Address  string    `gorm:"type:text" json:"address"`
	Phone    string    `gorm:"type:varchar(32)" json:"phone"`
	Email    string    `gorm:"type:varchar(128)" json:"email"`
	Status   string    `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
