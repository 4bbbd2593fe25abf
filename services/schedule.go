package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"campus-maintenance-server/database"
	"campus-maintenance-server/models"
)

// ScheduleService manages the one-to-one planning metadata per request
type ScheduleService struct {
	db       *gorm.DB
	notifier *Notifier
}

// NewScheduleService creates a schedule service over the shared database connection
func NewScheduleService() *ScheduleService {
	return &ScheduleService{db: database.DB, notifier: NewNotifier()}
}

// Upsert creates or replaces the schedule tied to a request. The bool result
// reports whether a new row was created. Both the requester and the assigned
// staff are notified.
func (s *ScheduleService) Upsert(requestID uint, input models.ScheduleUpsertInput) (*models.MaintenanceSchedule, bool, error) {
	var request models.MaintenanceRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	if input.ScheduleDate.IsZero() {
		return nil, false, NewValidationError("schedule_date", "schedule_date is required")
	}

	if input.AssignedStaffID != nil {
		var staff models.User
		if err := s.db.First(&staff, *input.AssignedStaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, NewValidationError("assigned_staff", "staff user does not exist")
			}
			return nil, false, err
		}
	}

	created := false
	var schedule models.MaintenanceSchedule
	err := s.db.Where("request_id = ?", requestID).First(&schedule).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		schedule = models.MaintenanceSchedule{
			RequestID:         requestID,
			ScheduleDate:      input.ScheduleDate,
			EstimatedDuration: input.EstimatedDuration,
			AssignedStaffID:   input.AssignedStaffID,
		}
		if err := s.db.Create(&schedule).Error; err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	default:
		schedule.ScheduleDate = input.ScheduleDate
		schedule.EstimatedDuration = input.EstimatedDuration
		schedule.AssignedStaffID = input.AssignedStaffID
		if err := s.db.Save(&schedule).Error; err != nil {
			return nil, false, err
		}
	}

	s.notifier.Publish([]Event{{
		Kind:          EventScheduleSet,
		RequestID:     request.ID,
		RequesterID:   request.CreatedByID,
		ScheduleDate:  schedule.ScheduleDate,
		ScheduleStaff: schedule.AssignedStaffID,
	}})

	return &schedule, created, nil
}

// QueryByMonth returns all schedules whose date falls in the given month,
// with their owning request's summary fields preloaded. The scan uses a
// half-open timestamp range so it behaves the same on every SQL backend.
func (s *ScheduleService) QueryByMonth(year, month int) ([]models.MaintenanceSchedule, error) {
	if month < 1 || month > 12 {
		return nil, NewValidationError("month", "month must be between 1 and 12")
	}
	if year < 1 {
		return nil, NewValidationError("year", "year is required")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var schedules []models.MaintenanceSchedule
	err := s.db.
		Where("schedule_date >= ? AND schedule_date < ?", start, end).
		Preload("Request").
		Preload("Request.Building").
		Preload("AssignedStaff").
		Order("schedule_date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
