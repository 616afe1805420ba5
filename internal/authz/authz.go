// Package authz holds the capability rules for admin tasks and projects.
// Every privileged service operation asks Authorize before touching the store.
package authz

import (
	apierrors "github.com/openedu/conductor-api/internal/errors"
)

// Action names a privileged operation
type Action string

const (
	ActionCreateTask      Action = "task:create"
	ActionDeleteTask      Action = "task:delete"
	ActionCreateProject   Action = "project:create"
	ActionModifyProject   Action = "project:modify"
	ActionAddAssignee     Action = "project:add-assignee"
	ActionCompleteProject Action = "project:complete"
	ActionDeleteProject   Action = "project:delete"
	ActionPostUpdate      Action = "update:create"
	ActionDeleteUpdate    Action = "update:delete"
	ActionReadFeed        Action = "feed:read"
)

// ErrInsufficientPrivileges is returned for every denied action
var ErrInsufficientPrivileges = apierrors.New(apierrors.KindUnauthorized,
	"Sorry, you don't have the proper privileges to perform this action.")

// Actor is the requesting user
type Actor struct {
	UUID  string
	Admin bool
}

// Resource carries the authorization context of the target record.
// The zero value describes a resource with no assignees (tasks, the feed).
type Resource struct {
	Assignees []string
}

// HasAssignee reports whether uuid is one of the resource's assignees
func (r Resource) HasAssignee(uuid string) bool {
	for _, a := range r.Assignees {
		if a == uuid {
			return true
		}
	}
	return false
}

// Authorize returns nil when actor may perform action on res
func Authorize(action Action, res Resource, actor Actor) error {
	if actor.UUID == "" {
		return ErrInsufficientPrivileges
	}

	var allowed bool
	switch action {
	case ActionCreateTask, ActionDeleteTask, ActionCreateProject, ActionReadFeed:
		allowed = actor.Admin
	case ActionModifyProject, ActionAddAssignee, ActionCompleteProject, ActionPostUpdate, ActionDeleteUpdate:
		allowed = res.HasAssignee(actor.UUID)
	case ActionDeleteProject:
		allowed = len(res.Assignees) > 0 && res.HasAssignee(actor.UUID)
	}

	if !allowed {
		return ErrInsufficientPrivileges
	}
	return nil
}
