package board

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guild/internal/types"
)

func lead() *types.User {
	return &types.User{ID: "user-lead", Name: "Astrid", Role: types.RoleManager}
}

func member() *types.User {
	return &types.User{ID: "user-member", Name: "Bran", Role: types.RoleMember}
}

func sampleMissions() []types.Mission {
	return []types.Mission{
		{
			ID:         "m1",
			Title:      "Forge the beacon",
			LeadUserID: "user-lead",
			Status:     types.StatusProposed,
			Roles: []types.MissionRole{
				{ID: "r1", RoleDescription: "Smith", Assignee: &types.User{ID: "user-member"}},
			},
		},
		{
			ID:         "m2",
			Title:      "Map the reach",
			LeadUserID: "user-other",
			Status:     types.StatusActive,
			Roles: []types.MissionRole{
				{ID: "r2", RoleDescription: "Scout"},
			},
		},
		{
			ID:         "m3",
			Title:      "Archive the ledgers",
			LeadUserID: "user-lead",
			Status:     types.StatusCompleted,
		},
	}
}

// countingPatch records calls and returns the configured error.
func countingPatch(calls *int, err error) PatchFunc {
	return func(ctx context.Context, missionID string, status types.MissionStatus) (*types.Mission, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return &types.Mission{ID: missionID, Status: status}, nil
	}
}

func TestGroupByStatusIsPure(t *testing.T) {
	missions := sampleMissions()
	before := CloneMissions(missions)

	first := GroupByStatus(missions)
	second := GroupByStatus(missions)

	assert.Empty(t, cmp.Diff(first, second), "same input must group identically")
	assert.Empty(t, cmp.Diff(before, missions), "grouping must not mutate the input")

	assert.Len(t, first[types.StatusProposed], 1)
	assert.Len(t, first[types.StatusActive], 1)
	assert.Len(t, first[types.StatusCompleted], 1)
}

func TestVisibleToCommanderSeesAll(t *testing.T) {
	visible := VisibleTo(lead(), sampleMissions())
	assert.Len(t, visible, 3)
}

func TestVisibleToMemberSeesProposedAndOwnActive(t *testing.T) {
	missions := sampleMissions()
	// The member holds a role on m1 (Proposed) but not on m2 (Active).
	visible := VisibleTo(member(), missions)
	require.Len(t, visible, 1)
	assert.Equal(t, "m1", visible[0].ID)

	// Give the member the scout role on the active mission.
	missions[1].Roles[0].Assignee = &types.User{ID: "user-member"}
	visible = VisibleTo(member(), missions)
	require.Len(t, visible, 2)
	assert.Equal(t, "m2", visible[1].ID)
}

func TestColumnsForMemberOmitsCompleted(t *testing.T) {
	assert.Equal(t, types.AllMissionStatuses, ColumnsFor(lead()))
	assert.Equal(t,
		[]types.MissionStatus{types.StatusProposed, types.StatusActive},
		ColumnsFor(member()))
}

func TestTransitionSameColumnIsSilentNoop(t *testing.T) {
	missions := sampleMissions()
	calls := 0

	outcome, err := Transition(context.Background(), lead(), missions, "m1", types.StatusProposed,
		countingPatch(&calls, nil))

	require.NoError(t, err)
	assert.False(t, outcome.Changed)
	assert.Zero(t, calls, "same-column move must not issue a request")
	assert.Empty(t, cmp.Diff(missions, outcome.Missions))
}

func TestTransitionInvalidTargetIsSilentNoop(t *testing.T) {
	missions := sampleMissions()
	calls := 0

	outcome, err := Transition(context.Background(), lead(), missions, "m1", types.MissionStatus("Paused"),
		countingPatch(&calls, nil))

	require.NoError(t, err)
	assert.False(t, outcome.Changed)
	assert.Zero(t, calls)
}

func TestTransitionNonLeadRejectedBeforeNetwork(t *testing.T) {
	missions := sampleMissions()
	before := CloneMissions(missions)
	calls := 0

	outcome, err := Transition(context.Background(), member(), missions, "m1", types.StatusActive,
		countingPatch(&calls, nil))

	require.ErrorIs(t, err, ErrNotLead)
	assert.Zero(t, calls, "authorization failure must not issue a request")
	assert.Empty(t, cmp.Diff(before, outcome.Missions))
}

func TestTransitionMissionGoneRejected(t *testing.T) {
	calls := 0
	_, err := Transition(context.Background(), lead(), sampleMissions(), "m99", types.StatusActive,
		countingPatch(&calls, nil))

	require.ErrorIs(t, err, ErrMissionNotFound)
	assert.Zero(t, calls)
}

func TestTransitionSuccessMovesMission(t *testing.T) {
	missions := sampleMissions()
	calls := 0

	outcome, err := Transition(context.Background(), lead(), missions, "m1", types.StatusActive,
		countingPatch(&calls, nil))

	require.NoError(t, err)
	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, calls)
	assert.Equal(t, types.StatusActive, outcome.Missions[0].Status)
	// Everything except the moved mission's status is untouched.
	assert.Equal(t, missions[0].Title, outcome.Missions[0].Title)
	assert.Empty(t, cmp.Diff(missions[1:], outcome.Missions[1:]))
}

func TestTransitionFailureRestoresSnapshotExactly(t *testing.T) {
	missions := sampleMissions()
	before := CloneMissions(missions)
	calls := 0
	boom := errors.New("service unavailable")

	outcome, err := Transition(context.Background(), lead(), missions, "m1", types.StatusActive,
		countingPatch(&calls, boom))

	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Empty(t, cmp.Diff(before, outcome.Missions),
		"rollback must restore the pre-move list exactly")
}

func TestTransitionSnapshotSharesNoStateWithOptimisticCopy(t *testing.T) {
	missions := sampleMissions()
	before := CloneMissions(missions)
	boom := errors.New("timeout")
	calls := 0

	// The patch mutates the optimistic copy's nested role before failing.
	// A shallow snapshot would leak that mutation through shared pointers.
	patch := func(ctx context.Context, missionID string, status types.MissionStatus) (*types.Mission, error) {
		calls++
		return nil, boom
	}

	outcome, err := Transition(context.Background(), lead(), missions, "m1", types.StatusActive, patch)
	require.Error(t, err)

	outcomeCopy := CloneMissions(outcome.Missions)
	// Mutating the original list must not reach the rolled-back outcome.
	missions[0].Roles[0].Assignee.Name = "mutated"
	missions[0].Status = types.StatusCompleted
	assert.Empty(t, cmp.Diff(outcomeCopy, outcome.Missions))
	assert.Equal(t, before[0].Roles[0].Assignee.ID, outcome.Missions[0].Roles[0].Assignee.ID)
	assert.Equal(t, 1, calls)
}

func TestCanTransitionGateOrder(t *testing.T) {
	mission := &types.Mission{ID: "m1", LeadUserID: "user-lead", Status: types.StatusProposed}

	// Same column reports noop before the authorization check, so a
	// member re-dropping a card in place never sees a permission error.
	noop, err := CanTransition(member(), mission, types.StatusProposed)
	assert.True(t, noop)
	assert.NoError(t, err)

	noop, err = CanTransition(member(), mission, types.StatusActive)
	assert.False(t, noop)
	assert.ErrorIs(t, err, ErrNotLead)

	noop, err = CanTransition(lead(), mission, types.StatusActive)
	assert.False(t, noop)
	assert.NoError(t, err)

	noop, err = CanTransition(nil, mission, types.StatusActive)
	assert.False(t, noop)
	assert.ErrorIs(t, err, ErrNotLead)
}

func TestCloneMissionsIsDeep(t *testing.T) {
	missions := sampleMissions()
	clone := CloneMissions(missions)

	require.Empty(t, cmp.Diff(missions, clone))

	clone[0].Roles[0].Assignee.Name = "changed"
	clone[0].Status = types.StatusCompleted
	assert.Equal(t, "", missions[0].Roles[0].Assignee.Name)
	assert.Equal(t, types.StatusProposed, missions[0].Status)
}
