// Package service defines the backend-agnostic interface for event and task actions.
package service

import "context"

// Service defines the interface for the event/task server actions.
// All HTTP calls go through this interface.
// Commands and views never talk to the server directly.
type Service interface {
	// ToggleComplete flips the completion state of a task.
	ToggleComplete(ctx context.Context, taskID string) (ToggleResult, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, taskID string) (DeleteResult, error)

	// EditTask updates a task's title and description.
	// Callers are expected to pass trimmed, non-empty values.
	EditTask(ctx context.Context, task TaskRef) (EditResult, error)

	// TogglePublish flips the published state of an event.
	TogglePublish(ctx context.Context, eventID string) (PublishResult, error)

	// Register registers a user for an event.
	Register(ctx context.Context, eventID, userID string) (RegisterResult, error)
}
