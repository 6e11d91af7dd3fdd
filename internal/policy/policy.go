// Package policy holds the ownership and membership rules that decide
// whether a user may act on a task. Decisions are pure functions over
// snapshots: callers load the task and the member set of its team first,
// so the rules unit-test without any store.
package policy

import "github.com/google/uuid"

// Operation is a mutation a user may attempt on a task.
type Operation int

const (
	// OpUpdate replaces a task's fields.
	OpUpdate Operation = iota
	// OpDelete removes a task permanently.
	OpDelete
)

// TaskSnapshot is an immutable view of a task at decision time.
// TeamMembers holds the member set of the task's team as loaded by the
// caller; it is ignored when TeamID is nil.
type TaskSnapshot struct {
	CreatorID   uuid.UUID
	AssigneeID  *uuid.UUID
	TeamID      *uuid.UUID
	TeamMembers []uuid.UUID
}

// CanModifyTask reports whether userID may perform op on the task.
//
// The creator may update and delete. Members of the task's team may update
// and delete. A user who is only the assignee may update but not delete;
// assignment grants edit rights, not removal rights. Callers check that
// the task exists before asking, so a denial always means 403.
func CanModifyTask(userID uuid.UUID, t TaskSnapshot, op Operation) bool {
	if t.CreatorID == userID {
		return true
	}

	if op == OpUpdate && t.AssigneeID != nil && *t.AssigneeID == userID {
		return true
	}

	if t.TeamID != nil {
		for _, m := range t.TeamMembers {
			if m == userID {
				return true
			}
		}
	}

	return false
}
