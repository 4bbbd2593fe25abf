package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"campus-maintenance-server/models"
	"campus-maintenance-server/services"
)

func uintPtr(v uint) *uint { return &v }

func TestDiffRequestCreate(t *testing.T) {
	created := &models.MaintenanceRequest{
		ID:            7,
		RequesterName: "alice",
		Status:        models.StatusPending,
	}

	events := services.DiffRequest(nil, created)

	require.Len(t, events, 1)
	require.Equal(t, services.EventRequestCreated, events[0].Kind)
	require.Equal(t, uint(7), events[0].RequestID)
	require.Equal(t, "alice", events[0].RequesterName)
}

func TestDiffRequestNoChanges(t *testing.T) {
	snapshot := &models.MaintenanceRequest{
		ID:     3,
		Status: models.StatusPending,
	}
	identical := *snapshot

	events := services.DiffRequest(snapshot, &identical)

	require.Empty(t, events)
}

func TestDiffRequestClaimEmitsStatusAndAssignee(t *testing.T) {
	old := &models.MaintenanceRequest{
		ID:          5,
		CreatedByID: uintPtr(1),
		Status:      models.StatusPending,
	}
	updated := &models.MaintenanceRequest{
		ID:           5,
		CreatedByID:  uintPtr(1),
		Status:       models.StatusInProgress,
		AssignedToID: uintPtr(2),
	}

	events := services.DiffRequest(old, updated)

	require.Len(t, events, 2)
	require.Equal(t, services.EventStatusChanged, events[0].Kind)
	require.Equal(t, models.StatusPending, events[0].OldStatus)
	require.Equal(t, models.StatusInProgress, events[0].NewStatus)
	require.Equal(t, services.EventAssigneeChanged, events[1].Kind)
	require.Equal(t, uint(2), *events[1].AssigneeID)
}

func TestDiffRequestStatusOnlyWhenAssigneeUnchanged(t *testing.T) {
	old := &models.MaintenanceRequest{
		ID:           5,
		Status:       models.StatusInProgress,
		AssignedToID: uintPtr(2),
	}
	updated := &models.MaintenanceRequest{
		ID:           5,
		Status:       models.StatusCompleted,
		AssignedToID: uintPtr(2),
	}

	events := services.DiffRequest(old, updated)

	require.Len(t, events, 1)
	require.Equal(t, services.EventStatusChanged, events[0].Kind)
}

func TestDiffRequestAssigneeChangeOnly(t *testing.T) {
	old := &models.MaintenanceRequest{
		ID:           9,
		Status:       models.StatusInProgress,
		AssignedToID: uintPtr(2),
	}
	updated := &models.MaintenanceRequest{
		ID:           9,
		Status:       models.StatusInProgress,
		AssignedToID: uintPtr(4),
	}

	events := services.DiffRequest(old, updated)

	require.Len(t, events, 1)
	require.Equal(t, services.EventAssigneeChanged, events[0].Kind)
	require.Equal(t, uint(4), *events[0].AssigneeID)
}
