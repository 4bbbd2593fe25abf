package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"campus-maintenance-server/database"
	"campus-maintenance-server/models"
)

// EventKind identifies a lifecycle delta worth notifying about
type EventKind string

const (
	EventRequestCreated  EventKind = "request_created"
	EventStatusChanged   EventKind = "status_changed"
	EventAssigneeChanged EventKind = "assignee_changed"
	EventScheduleSet     EventKind = "schedule_set"
)

// Event is one lifecycle delta detected between two snapshots of a request,
// or a schedule upsert. Fan-out translates each event into per-user
// notification rows.
type Event struct {
	Kind          EventKind
	RequestID     uint
	RequesterName string
	RequesterID   *uint
	OldStatus     models.RequestStatus
	NewStatus     models.RequestStatus
	AssigneeID    *uint
	ScheduleDate  time.Time
	ScheduleStaff *uint
}

// DiffRequest computes the notification events between the pre-write and
// post-write snapshots of a request. A nil old snapshot means the request
// was just created; a create never also emits a "changed" event. Status and
// assignee deltas are detected independently of each other.
func DiffRequest(old, updated *models.MaintenanceRequest) []Event {
	if updated == nil {
		return nil
	}

	if old == nil {
		return []Event{{
			Kind:          EventRequestCreated,
			RequestID:     updated.ID,
			RequesterName: updated.RequesterName,
			RequesterID:   updated.CreatedByID,
			NewStatus:     updated.Status,
		}}
	}

	var events []Event

	if old.Status != updated.Status {
		events = append(events, Event{
			Kind:        EventStatusChanged,
			RequestID:   updated.ID,
			RequesterID: updated.CreatedByID,
			OldStatus:   old.Status,
			NewStatus:   updated.Status,
			AssigneeID:  updated.AssignedToID,
		})
	}

	if updated.AssignedToID != nil && !sameID(old.AssignedToID, updated.AssignedToID) {
		events = append(events, Event{
			Kind:       EventAssigneeChanged,
			RequestID:  updated.ID,
			AssigneeID: updated.AssignedToID,
		})
	}

	return events
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Notifier writes notification rows for lifecycle events. Failures are
// logged and dropped so a notification write can never fail the business
// operation that triggered it.
type Notifier struct {
	db *gorm.DB
}

// NewNotifier creates a notifier over the shared database connection
func NewNotifier() *Notifier {
	return &Notifier{db: database.DB}
}

// Publish fans each event out to its recipients, one row per recipient
func (n *Notifier) Publish(events []Event) {
	for _, event := range events {
		switch event.Kind {
		case EventRequestCreated:
			n.notifyAdmins(event)
		case EventStatusChanged:
			if event.RequesterID != nil {
				n.create(*event.RequesterID, event.RequestID,
					fmt.Sprintf("Your maintenance request is now '%s'.", event.NewStatus))
			}
			if event.AssigneeID != nil {
				n.create(*event.AssigneeID, event.RequestID,
					fmt.Sprintf("Request #%d status changed to %s.", event.RequestID, event.NewStatus))
			}
		case EventAssigneeChanged:
			if event.AssigneeID != nil {
				n.create(*event.AssigneeID, event.RequestID,
					fmt.Sprintf("You have been assigned request #%d.", event.RequestID))
			}
		case EventScheduleSet:
			date := event.ScheduleDate.Format("2006-01-02")
			if event.RequesterID != nil {
				n.create(*event.RequesterID, event.RequestID,
					fmt.Sprintf("Your maintenance request has been scheduled for %s.", date))
			}
			if event.ScheduleStaff != nil {
				n.create(*event.ScheduleStaff, event.RequestID,
					fmt.Sprintf("You have been assigned a maintenance task scheduled for %s.", date))
			}
		}
	}
}

// Broadcast writes a single row visible to every user's feed
func (n *Notifier) Broadcast(message string, requestID *uint) error {
	notification := models.Notification{
		Broadcast: true,
		Message:   message,
		RequestID: requestID,
	}
	return n.db.Create(&notification).Error
}

func (n *Notifier) notifyAdmins(event Event) {
	var admins []models.User
	if err := n.db.Where("role = ? AND is_active = ?", models.RoleAdmin, true).Find(&admins).Error; err != nil {
		log.Printf("⚠️ Failed to load admins for fan-out: %v", err)
		return
	}
	for _, admin := range admins {
		n.create(admin.ID, event.RequestID,
			fmt.Sprintf("New maintenance request submitted by %s.", event.RequesterName))
	}
}

func (n *Notifier) create(userID, requestID uint, message string) {
	notification := models.Notification{
		UserID:    &userID,
		Message:   message,
		RequestID: &requestID,
	}
	if err := n.db.Create(&notification).Error; err != nil {
		log.Printf("⚠️ Failed to create notification for user %d: %v", userID, err)
	}
}
