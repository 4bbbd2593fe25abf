package models

import (
	"time"
)

// Notification is one fact shown to one user. Broadcast rows carry a nil
// UserID plus Broadcast=true so "no owner" and "everyone" stay distinct
// states. Rows are immutable after creation except for the Read flag.
type Notification struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    *uint  `json:"user_id" gorm:"index"`
	Broadcast bool   `json:"broadcast" gorm:"default:false"`
	Message   string `json:"message" gorm:"type:text;not null"`
	RequestID *uint  `json:"request_id"`
	Read      bool   `json:"read" gorm:"default:false"`

	User    *User               `json:"-" gorm:"foreignKey:UserID"`
	Request *MaintenanceRequest `json:"-" gorm:"foreignKey:RequestID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
