// Package board implements the mission status board: grouping missions
// into status columns and moving one mission between columns with an
// optimistic update that rolls back exactly when the remote patch fails.
//
// Columns are always a pure derivation of the mission list. The package
// never keeps a second mutable copy of the buckets, so the grouped view
// cannot drift from the list it was computed from.
package board

import (
	"context"
	"errors"
	"fmt"

	"guild/internal/types"
)

// ErrNotLead rejects a transition requested by anyone other than the
// mission's lead. It is raised before any network call.
var ErrNotLead = errors.New("only the mission lead can change the status")

// ErrMissionNotFound aborts a transition whose mission vanished from the
// list between gesture start and end.
var ErrMissionNotFound = errors.New("mission no longer in the list")

// PatchFunc issues the remote status patch. The board never talks to the
// network directly; the caller injects the api.Client call.
type PatchFunc func(ctx context.Context, missionID string, status types.MissionStatus) (*types.Mission, error)

// GroupByStatus buckets missions into column order. It is a pure function
// of its input: the same list always yields the same grouping, and the
// input is never mutated.
func GroupByStatus(missions []types.Mission) map[types.MissionStatus][]types.Mission {
	groups := make(map[types.MissionStatus][]types.Mission, len(types.AllMissionStatuses))
	for _, m := range missions {
		groups[m.Status] = append(groups[m.Status], m)
	}
	return groups
}

// VisibleTo filters the list for the caller. Commanders see everything.
// Members see proposed missions plus active missions they hold a role on;
// completed missions are not part of a member's board.
func VisibleTo(user *types.User, missions []types.Mission) []types.Mission {
	if user.IsCommander() {
		return missions
	}
	visible := make([]types.Mission, 0, len(missions))
	for _, m := range missions {
		switch {
		case m.Status == types.StatusProposed:
			visible = append(visible, m)
		case m.Status == types.StatusActive && m.HasAssignee(user.ID):
			visible = append(visible, m)
		}
	}
	return visible
}

// ColumnsFor lists the statuses shown to the caller, in order. Members do
// not get a Completed column.
func ColumnsFor(user *types.User) []types.MissionStatus {
	if user.IsCommander() {
		return types.AllMissionStatuses
	}
	return []types.MissionStatus{types.StatusProposed, types.StatusActive}
}

// CanTransition evaluates the client-side gate for moving mission to
// target. A same-column move reports noop=true with no error and no
// authorization check, so an accidental re-drop never produces a
// spurious permission failure.
func CanTransition(user *types.User, mission *types.Mission, target types.MissionStatus) (noop bool, err error) {
	if !target.Valid() || mission.Status == target {
		return true, nil
	}
	if user == nil || user.ID != mission.LeadUserID {
		return false, ErrNotLead
	}
	return false, nil
}

// Outcome is the settled state of a transition attempt. Missions is always
// the list the caller should display next: the optimistic list after a
// successful patch, the untouched original otherwise.
type Outcome struct {
	Missions []types.Mission
	Changed  bool
}

// Transition moves one mission to a target column.
//
// The gate runs first: same-column and invalid targets are silent no-ops,
// a non-lead caller gets ErrNotLead, and a mission missing from the list
// gets ErrMissionNotFound. None of these issue a network call or touch
// the list. Otherwise the list is snapshotted, the status rewritten
// optimistically, and the patch issued; failure restores the snapshot
// exactly and returns the patch error alongside it.
func Transition(ctx context.Context, user *types.User, missions []types.Mission, missionID string, target types.MissionStatus, patch PatchFunc) (Outcome, error) {
	idx := -1
	for i := range missions {
		if missions[i].ID == missionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Outcome{Missions: missions}, ErrMissionNotFound
	}

	noop, err := CanTransition(user, &missions[idx], target)
	if noop {
		return Outcome{Missions: missions}, nil
	}
	if err != nil {
		return Outcome{Missions: missions}, err
	}

	update := Begin(missions, CloneMissions, func(list []types.Mission) []types.Mission {
		list[idx].Status = target
		return list
	})

	if _, err := patch(ctx, missionID, target); err != nil {
		return Outcome{Missions: update.Revert()}, fmt.Errorf("update mission status: %w", err)
	}
	return Outcome{Missions: update.Commit(), Changed: true}, nil
}

// CloneMissions deep-copies the list so the rollback snapshot shares no
// mutable state with the optimistic copy.
func CloneMissions(missions []types.Mission) []types.Mission {
	out := make([]types.Mission, len(missions))
	for i, m := range missions {
		out[i] = m
		if m.Roles != nil {
			out[i].Roles = make([]types.MissionRole, len(m.Roles))
			for j, r := range m.Roles {
				out[i].Roles[j] = r
				if r.Assignee != nil {
					assignee := *r.Assignee
					out[i].Roles[j].Assignee = &assignee
				}
			}
		}
		if m.Pitches != nil {
			out[i].Pitches = append([]types.MissionPitch(nil), m.Pitches...)
		}
	}
	return out
}
