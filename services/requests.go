package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"campus-maintenance-server/database"
	"campus-maintenance-server/models"
)

// RequestService holds maintenance requests and enforces the lifecycle
// invariants: pending implies unassigned, claim is first-come-first-served,
// complete requires a prior claim.
type RequestService struct {
	db       *gorm.DB
	notifier *Notifier
}

// NewRequestService creates a request service over the shared database connection
func NewRequestService() *RequestService {
	return &RequestService{db: database.DB, notifier: NewNotifier()}
}

// Create validates and persists a new pending request. createdBy may be nil
// for anonymous submission; authenticated callers get the account linked and
// their name filled in when the form left it blank.
func (s *RequestService) Create(input models.MaintenanceRequestCreate, createdBy *models.User) (*models.MaintenanceRequest, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, NewValidationError("description", "description is required")
	}
	if strings.ContainsAny(input.IssuePhoto, " \t\n") {
		return nil, NewValidationError("issue_photo", "photo reference must be a URL or path")
	}

	name := strings.TrimSpace(input.RequesterName)
	role := strings.TrimSpace(input.RequesterRole)
	if createdBy != nil {
		if name == "" {
			name = createdBy.FullName
		}
		if role == "" {
			role = string(createdBy.Role)
		}
	}
	if name == "" {
		return nil, NewValidationError("requester_name", "requester name is required for anonymous submission")
	}
	if role == "" {
		role = "student"
	}

	if _, err := ResolveLocation(s.db, input.BuildingID, input.FloorID, input.RoomID); err != nil {
		return nil, err
	}

	request := models.MaintenanceRequest{
		RequesterName: name,
		RequesterRole: role,
		Section:       input.Section,
		StudentID:     input.StudentID,
		BuildingID:    input.BuildingID,
		FloorID:       input.FloorID,
		RoomID:        input.RoomID,
		Description:   input.Description,
		IssuePhoto:    input.IssuePhoto,
		Status:        models.StatusPending,
	}
	if createdBy != nil {
		request.CreatedByID = &createdBy.ID
	}

	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.notifier.Publish(DiffRequest(nil, &request))

	return &request, nil
}

// Claim assigns a pending request to staff and moves it to in_progress.
// The assignment is a single conditional update checked by affected-row
// count, so two simultaneous claims cannot both win.
func (s *RequestService) Claim(requestID uint, staff models.User) (*models.MaintenanceRequest, error) {
	old, err := s.get(requestID)
	if err != nil {
		return nil, err
	}
	if old.AssignedToID != nil {
		return nil, ErrAlreadyClaimed
	}

	result := s.db.Model(&models.MaintenanceRequest{}).
		Where("id = ? AND assigned_to_id IS NULL AND status = ?", requestID, models.StatusPending).
		Updates(map[string]interface{}{
			"assigned_to_id": staff.ID,
			"status":         models.StatusInProgress,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race to another claimer between the read and the update
		return nil, ErrAlreadyClaimed
	}

	updated, err := s.get(requestID)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(DiffRequest(old, updated))

	return updated, nil
}

// Complete moves a claimed request to completed and stores the completion
// notes and photo. Only admins may set the assignee as part of the call;
// without an assignee (existing or overridden) the completion is rejected.
func (s *RequestService) Complete(requestID uint, input models.CompleteRequestInput, actor models.User) (*models.MaintenanceRequest, error) {
	old, err := s.get(requestID)
	if err != nil {
		return nil, err
	}

	assignee := old.AssignedToID
	if input.AssignedToID != nil {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		var staff models.User
		if err := s.db.First(&staff, *input.AssignedToID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("assigned_to", "assignee does not exist")
			}
			return nil, err
		}
		assignee = input.AssignedToID
	}
	if assignee == nil {
		return nil, ErrNotClaimed
	}

	if strings.ContainsAny(input.CompletionPhoto, " \t\n") {
		return nil, NewValidationError("completion_photo", "photo reference must be a URL or path")
	}

	updates := map[string]interface{}{
		"status":           models.StatusCompleted,
		"assigned_to_id":   assignee,
		"completion_notes": input.CompletionNotes,
		"completion_photo": input.CompletionPhoto,
	}
	if err := s.db.Model(&models.MaintenanceRequest{}).Where("id = ?", requestID).Updates(updates).Error; err != nil {
		return nil, err
	}

	updated, err := s.get(requestID)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(DiffRequest(old, updated))

	return updated, nil
}

// UpdateStatus applies any subset of status/assignee/completion fields in
// one write. It deliberately skips the claim-before-complete check: this is
// the administrative override path and the lifecycle invariant is enforced
// on Claim/Complete only.
func (s *RequestService) UpdateStatus(requestID uint, input models.UpdateStatusInput) (*models.MaintenanceRequest, error) {
	old, err := s.get(requestID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		if !models.IsValidStatus(*input.Status) {
			return nil, NewValidationError("status", "unknown status value")
		}
		updates["status"] = *input.Status
	}
	if input.AssignedToID != nil {
		updates["assigned_to_id"] = *input.AssignedToID
	}
	if input.CompletionNotes != nil {
		updates["completion_notes"] = *input.CompletionNotes
	}
	if input.CompletionPhoto != nil {
		updates["completion_photo"] = *input.CompletionPhoto
	}
	if len(updates) == 0 {
		return old, nil
	}

	if err := s.db.Model(&models.MaintenanceRequest{}).Where("id = ?", requestID).Updates(updates).Error; err != nil {
		return nil, err
	}

	updated, err := s.get(requestID)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(DiffRequest(old, updated))

	return updated, nil
}

// List returns every request for staff and admins, and only the caller's
// own submissions for regular users.
func (s *RequestService) List(user models.User) ([]models.MaintenanceRequest, error) {
	query := s.db.
		Preload("Building").
		Preload("Floor").
		Preload("Room").
		Preload("AssignedTo").
		Order("created_at DESC")

	if !user.IsStaff() {
		query = query.Where("created_by_id = ?", user.ID)
	}

	var requests []models.MaintenanceRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Get returns a single request by id
func (s *RequestService) Get(requestID uint) (*models.MaintenanceRequest, error) {
	return s.get(requestID)
}

func (s *RequestService) get(requestID uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}
