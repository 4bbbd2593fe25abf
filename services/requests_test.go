package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"campus-maintenance-server/models"
	"campus-maintenance-server/services"
	"campus-maintenance-server/testutil"
)

func TestRequestLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@campus.edu", models.RoleRequester)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	carol := testutil.CreateUser(t, db, "Carol", "carol@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "Annex Building", true)
	floor := testutil.CreateFloor(t, db, building.ID, 2, "2nd Floor")
	room := testutil.CreateRoom(t, db, building.ID, &floor.ID, "Room A4")

	svc := services.NewRequestService()

	request, err := svc.Create(models.MaintenanceRequestCreate{
		BuildingID:  building.ID,
		FloorID:     &floor.ID,
		RoomID:      &room.ID,
		Description: "leaky faucet",
	}, &alice)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, request.Status)
	require.Nil(t, request.AssignedToID)
	require.Equal(t, "Alice", request.RequesterName)

	claimed, err := svc.Claim(request.ID, bob)
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, claimed.Status)
	require.Equal(t, bob.ID, *claimed.AssignedToID)

	// Second claim loses; state stays with the first claimer
	_, err = svc.Claim(request.ID, carol)
	require.ErrorIs(t, err, services.ErrAlreadyClaimed)

	unchanged, err := svc.Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, *unchanged.AssignedToID)
	require.Equal(t, models.StatusInProgress, unchanged.Status)

	completed, err := svc.Complete(request.ID, models.CompleteRequestInput{
		CompletionNotes: "fixed",
	}, bob)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, completed.Status)
	require.Equal(t, "fixed", completed.CompletionNotes)

	// Requester and assignee each got a completion notification referencing
	// the request
	var aliceNotes []models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&aliceNotes).Error)
	require.NotEmpty(t, aliceNotes)
	found := false
	for _, n := range aliceNotes {
		if n.RequestID != nil && *n.RequestID == request.ID && strings.Contains(n.Message, "completed") {
			found = true
		}
	}
	require.True(t, found, "expected a completion notification for the requester")

	var bobNotes []models.Notification
	require.NoError(t, db.Where("user_id = ? AND request_id = ?", bob.ID, request.ID).Find(&bobNotes).Error)
	require.NotEmpty(t, bobNotes)
}

func TestClaimNotifiesAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "DFA Building", false)

	svc := services.NewRequestService()
	request, err := svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "walk-in",
		BuildingID:    building.ID,
		Description:   "broken window",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Claim(request.ID, bob)
	require.NoError(t, err)

	var notes []models.Notification
	require.NoError(t, db.Where("user_id = ?", bob.ID).Find(&notes).Error)
	require.NotEmpty(t, notes)
	assigned := false
	for _, n := range notes {
		if n.RequestID != nil && *n.RequestID == request.ID {
			assigned = true
		}
	}
	require.True(t, assigned, "assignee notification must reference the claimed request")
}

func TestClaimMissingRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)

	_, err := services.NewRequestService().Claim(12345, bob)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCompleteRequiresClaim(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "Grounds", false)

	svc := services.NewRequestService()
	request, err := svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "walk-in",
		BuildingID:    building.ID,
		Description:   "fallen branch",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Complete(request.ID, models.CompleteRequestInput{CompletionNotes: "done"}, bob)
	require.ErrorIs(t, err, services.ErrNotClaimed)
}

func TestCompleteAdminOverrideSetsAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@campus.edu", models.RoleAdmin)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "New Building", true)

	svc := services.NewRequestService()
	request, err := svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "walk-in",
		BuildingID:    building.ID,
		Description:   "flickering lights",
	}, nil)
	require.NoError(t, err)

	completed, err := svc.Complete(request.ID, models.CompleteRequestInput{
		CompletionNotes: "replaced ballast",
		AssignedToID:    &bob.ID,
	}, admin)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, completed.Status)
	require.Equal(t, bob.ID, *completed.AssignedToID)
}

func TestCompleteOverrideForbiddenForStaff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	carol := testutil.CreateUser(t, db, "Carol", "carol@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "New Building", true)

	svc := services.NewRequestService()
	request, err := svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "walk-in",
		BuildingID:    building.ID,
		Description:   "clogged drain",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Complete(request.ID, models.CompleteRequestInput{
		CompletionNotes: "done",
		AssignedToID:    &carol.ID,
	}, bob)
	require.ErrorIs(t, err, services.ErrForbidden)
}

func TestCreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	building := testutil.CreateBuilding(t, db, "Annex Building", true)

	svc := services.NewRequestService()

	_, err := svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "walk-in",
		BuildingID:    building.ID,
		Description:   "   ",
	}, nil)
	require.True(t, services.IsValidation(err), "blank description must be rejected")

	_, err = svc.Create(models.MaintenanceRequestCreate{
		BuildingID:  building.ID,
		Description: "no name given",
	}, nil)
	require.True(t, services.IsValidation(err), "anonymous submission needs a requester name")

	_, err = svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "walk-in",
		BuildingID:    999,
		Description:   "bad building",
	}, nil)
	require.True(t, services.IsValidation(err), "unknown building must be rejected")

	_, err = svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "walk-in",
		BuildingID:    building.ID,
		Description:   "photo check",
		IssuePhoto:    "not a url",
	}, nil)
	require.True(t, services.IsValidation(err), "photo reference with whitespace must be rejected")
}

func TestClaimRejectsNonPendingRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "DFA Building", false)

	svc := services.NewRequestService()
	request, err := svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "anon",
		BuildingID:    building.ID,
		Description:   "jammed door",
	}, nil)
	require.NoError(t, err)

	// Admin path can force completed with no assignee; such a request must
	// not be claimable back into in_progress
	status := models.StatusCompleted
	_, err = svc.UpdateStatus(request.ID, models.UpdateStatusInput{Status: &status})
	require.NoError(t, err)

	_, err = svc.Claim(request.ID, bob)
	require.ErrorIs(t, err, services.ErrAlreadyClaimed)

	stored, err := svc.Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, stored.Status)
	require.Nil(t, stored.AssignedToID)
}

func TestCreateNotifiesAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@campus.edu", models.RoleAdmin)
	testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "Annex Building", true)

	request, err := services.NewRequestService().Create(models.MaintenanceRequestCreate{
		RequesterName: "alice",
		BuildingID:    building.ID,
		Description:   "leaky faucet",
	}, nil)
	require.NoError(t, err)

	var notes []models.Notification
	require.NoError(t, db.Where("user_id = ?", admin.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	require.Contains(t, notes[0].Message, "alice")
	require.Equal(t, request.ID, *notes[0].RequestID)

	// Non-admin staff are not in the create fan-out
	var staffCount int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id != ?", admin.ID).Count(&staffCount).Error)
	require.Zero(t, staffCount)
}

func TestUpdateStatusBypassesClaim(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@campus.edu", models.RoleRequester)
	building := testutil.CreateBuilding(t, db, "DFA Building", false)

	svc := services.NewRequestService()
	request, err := svc.Create(models.MaintenanceRequestCreate{
		BuildingID:  building.ID,
		Description: "jammed door",
	}, &alice)
	require.NoError(t, err)

	// Administrative path can jump straight to completed without any claim
	status := models.StatusCompleted
	notes := "forced closed by admin"
	updated, err := svc.UpdateStatus(request.ID, models.UpdateStatusInput{
		Status:          &status,
		CompletionNotes: &notes,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)
	require.Nil(t, updated.AssignedToID)
	require.Equal(t, notes, updated.CompletionNotes)

	// The status delta still reaches the requester
	var aliceNotes []models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&aliceNotes).Error)
	require.NotEmpty(t, aliceNotes)

	badStatus := models.RequestStatus("bogus")
	_, err = svc.UpdateStatus(request.ID, models.UpdateStatusInput{Status: &badStatus})
	require.True(t, services.IsValidation(err))
}

func TestListScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@campus.edu", models.RoleRequester)
	dave := testutil.CreateUser(t, db, "Dave", "dave@campus.edu", models.RoleRequester)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "Annex Building", true)

	svc := services.NewRequestService()
	_, err := svc.Create(models.MaintenanceRequestCreate{BuildingID: building.ID, Description: "one"}, &alice)
	require.NoError(t, err)
	_, err = svc.Create(models.MaintenanceRequestCreate{BuildingID: building.ID, Description: "two"}, &dave)
	require.NoError(t, err)
	_, err = svc.Create(models.MaintenanceRequestCreate{RequesterName: "anon", BuildingID: building.ID, Description: "three"}, nil)
	require.NoError(t, err)

	all, err := svc.List(bob)
	require.NoError(t, err)
	require.Len(t, all, 3)

	own, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, "one", own[0].Description)
}

func TestPendingImpliesUnassigned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bob := testutil.CreateUser(t, db, "Bob", "bob@campus.edu", models.RoleStaff)
	building := testutil.CreateBuilding(t, db, "Grounds", false)

	svc := services.NewRequestService()
	request, err := svc.Create(models.MaintenanceRequestCreate{
		RequesterName: "anon",
		BuildingID:    building.ID,
		Description:   "pothole",
	}, nil)
	require.NoError(t, err)

	require.Equal(t, models.StatusPending, request.Status)
	require.Nil(t, request.AssignedToID)

	claimed, err := svc.Claim(request.ID, bob)
	require.NoError(t, err)
	require.NotNil(t, claimed.AssignedToID)
	require.NotEqual(t, models.StatusPending, claimed.Status)
}
