package models

import (
	"time"
)

// MaintenanceSchedule is planning metadata attached one-to-one to a request.
// The unique index on RequestID is what gives the upsert its "at most one
// schedule per request" guarantee.
type MaintenanceSchedule struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	RequestID         uint      `json:"request_id" gorm:"not null;uniqueIndex"`
	ScheduleDate      time.Time `json:"schedule_date" gorm:"not null"`
	EstimatedDuration string    `json:"estimated_duration" gorm:"size:100"`
	AssignedStaffID   *uint     `json:"assigned_staff_id"`

	Request       MaintenanceRequest `json:"request,omitempty" gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	AssignedStaff *User              `json:"assigned_staff,omitempty" gorm:"foreignKey:AssignedStaffID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the MaintenanceSchedule model
func (MaintenanceSchedule) TableName() string {
	return "maintenance_schedules"
}

// ScheduleUpsertInput is the payload for creating or replacing a schedule
type ScheduleUpsertInput struct {
	ScheduleDate      time.Time `json:"schedule_date"`
	EstimatedDuration string    `json:"estimated_duration"`
	AssignedStaffID   *uint     `json:"assigned_staff"`
}
