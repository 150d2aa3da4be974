// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"evtask/internal/service"
)

type fakeTask struct {
	service.TaskRef
	Complete bool
}

type registration struct {
	eventID string
	userID  string
}

// FakeService is an in-memory implementation of service.Service for testing.
// It mimics the server: toggles flip stored state, deletes remove tasks and
// registrations are remembered per (event, user) pair.
type FakeService struct {
	mu         sync.Mutex
	tasks      map[string]*fakeTask
	published  map[string]bool
	registered map[registration]bool
	calls      map[string]int
	edits      []service.TaskRef

	// Gate, when set, blocks every call until a value is received or ctx is done.
	Gate chan struct{}

	// Error injection for testing
	ToggleCompleteErr error
	DeleteTaskErr     error
	EditTaskErr       error
	TogglePublishErr  error
	RegisterErr       error

	// OmitRegisterOutcome makes Register answer without an outcome.
	OmitRegisterOutcome bool
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:      make(map[string]*fakeTask),
		published:  make(map[string]bool),
		registered: make(map[registration]bool),
		calls:      make(map[string]int),
	}
}

// AddTask adds an incomplete task.
func (f *FakeService) AddTask(id, title, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[id] = &fakeTask{TaskRef: service.TaskRef{ID: id, Title: title, Description: description}}
}

// AddEvent adds an event with the given published state.
func (f *FakeService) AddEvent(id string, published bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[id] = published
}

// Task returns a stored task and its completion state.
func (f *FakeService) Task(id string) (service.TaskRef, bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return service.TaskRef{}, false, false
	}
	return t.TaskRef, t.Complete, true
}

// Published reports the stored published state of an event.
func (f *FakeService) Published(eventID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published[eventID]
}

// Calls returns how many times method was called.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Edits returns the edit requests received, oldest first.
func (f *FakeService) Edits() []service.TaskRef {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.TaskRef, len(f.edits))
	copy(out, f.edits)
	return out
}

// enter counts the call and waits on Gate.
func (f *FakeService) enter(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	gate := f.Gate
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", service.ErrBackend, ctx.Err())
	}
}

// ToggleComplete implements service.Service.
func (f *FakeService) ToggleComplete(ctx context.Context, taskID string) (service.ToggleResult, error) {
	if err := f.enter(ctx, "ToggleComplete"); err != nil {
		return service.ToggleResult{}, err
	}
	if f.ToggleCompleteErr != nil {
		return service.ToggleResult{}, f.ToggleCompleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return service.ToggleResult{}, fmt.Errorf("%w: task %s returned 404", service.ErrBackend, taskID)
	}
	t.Complete = !t.Complete
	return service.ToggleResult{TaskID: taskID, Complete: t.Complete}, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, taskID string) (service.DeleteResult, error) {
	if err := f.enter(ctx, "DeleteTask"); err != nil {
		return service.DeleteResult{}, err
	}
	if f.DeleteTaskErr != nil {
		return service.DeleteResult{}, f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tasks[taskID]
	delete(f.tasks, taskID)
	return service.DeleteResult{TaskID: taskID, Deleted: ok}, nil
}

// EditTask implements service.Service.
func (f *FakeService) EditTask(ctx context.Context, task service.TaskRef) (service.EditResult, error) {
	if err := f.enter(ctx, "EditTask"); err != nil {
		return service.EditResult{}, err
	}
	f.mu.Lock()
	f.edits = append(f.edits, task)
	f.mu.Unlock()
	if f.EditTaskErr != nil {
		return service.EditResult{}, f.EditTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[task.ID]
	if !ok {
		return service.EditResult{}, nil
	}
	t.Title = task.Title
	t.Description = task.Description
	updated := t.TaskRef
	return service.EditResult{Task: &updated}, nil
}

// TogglePublish implements service.Service.
func (f *FakeService) TogglePublish(ctx context.Context, eventID string) (service.PublishResult, error) {
	if err := f.enter(ctx, "TogglePublish"); err != nil {
		return service.PublishResult{}, err
	}
	if f.TogglePublishErr != nil {
		return service.PublishResult{}, f.TogglePublishErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[eventID] = !f.published[eventID]
	return service.PublishResult{EventID: eventID, Published: f.published[eventID]}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, eventID, userID string) (service.RegisterResult, error) {
	if err := f.enter(ctx, "Register"); err != nil {
		return service.RegisterResult{}, err
	}
	if f.RegisterErr != nil {
		return service.RegisterResult{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := service.RegisterResult{EventID: eventID, UserID: userID}
	if f.OmitRegisterOutcome {
		return result, nil
	}
	key := registration{eventID: eventID, userID: userID}
	if f.registered[key] {
		result.Outcome = service.AlreadyRegistered
	} else {
		f.registered[key] = true
		result.Outcome = service.Registered
	}
	return result, nil
}
