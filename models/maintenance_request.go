package models

import (
	"time"
)

// RequestStatus represents the current status of a maintenance request
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
)

// IsValidStatus reports whether s is one of the known lifecycle states
func IsValidStatus(s RequestStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// MaintenanceRequest represents a submitted facility issue ticket
type MaintenanceRequest struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	RequesterName string `json:"requester_name" gorm:"size:255;not null"`
	RequesterRole string `json:"requester_role" gorm:"size:50;not null"` // student, instructor, staff
	Section       string `json:"section,omitempty" gorm:"size:50"`
	StudentID     string `json:"student_id,omitempty" gorm:"size:50"`

	// Anonymous submission leaves CreatedByID nil; authenticated submission
	// records the account for later "my requests" filtering.
	CreatedByID *uint `json:"created_by_id"`
	CreatedBy   *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	BuildingID uint      `json:"building_id" gorm:"not null"`
	FloorID    *uint     `json:"floor_id"`
	RoomID     *uint     `json:"room_id"`
	Building   Building  `json:"building,omitempty" gorm:"foreignKey:BuildingID"`
	Floor      *Floor    `json:"floor,omitempty" gorm:"foreignKey:FloorID"`
	Room       *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`

	Description string `json:"description" gorm:"type:text;not null"`
	IssuePhoto  string `json:"issue_photo,omitempty" gorm:"size:500"` // opaque stored-object URL

	Status       RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	AssignedToID *uint         `json:"assigned_to_id"`
	AssignedTo   *User         `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID"`

	CompletionNotes string `json:"completion_notes,omitempty" gorm:"type:text"`
	CompletionPhoto string `json:"completion_photo,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the MaintenanceRequest model
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// MaintenanceRequestCreate represents the request structure for submitting a ticket
type MaintenanceRequestCreate struct {
	RequesterName string `json:"requester_name"`
	RequesterRole string `json:"requester_role"`
	Section       string `json:"section"`
	StudentID     string `json:"student_id"`
	BuildingID    uint   `json:"building_id" binding:"required"`
	FloorID       *uint  `json:"floor_id"`
	RoomID        *uint  `json:"room_id"`
	Description   string `json:"description" binding:"required"`
	IssuePhoto    string `json:"issue_photo"`
}

// CompleteRequestInput carries the completion fields for a request
type CompleteRequestInput struct {
	CompletionNotes string `json:"completion_notes"`
	CompletionPhoto string `json:"completion_photo"`
	AssignedToID    *uint  `json:"assigned_to"` // admin-only override
}

// UpdateStatusInput is the loose administrative update payload. Every field
// is optional; only the supplied ones are applied.
type UpdateStatusInput struct {
	Status          *RequestStatus `json:"status"`
	AssignedToID    *uint          `json:"assigned_to"`
	CompletionNotes *string        `json:"completion_notes"`
	CompletionPhoto *string        `json:"completion_photo"`
}
