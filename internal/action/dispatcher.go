// Package action turns user actions into service calls and renders the
// results onto a view.
//
// Every action on an entity runs under a context keyed by that entity.
// Starting a new action on the same key cancels the previous one, and a
// superseded action never patches the view, so the last issued action wins.
package action

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"evtask/internal/logging"
	"evtask/internal/service"
	"evtask/internal/view"
)

// Dispatcher binds a Service to a View. It is safe for concurrent use.
type Dispatcher struct {
	svc    service.Service
	view   view.View
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]*flight

	registrations singleflight.Group
}

type flight struct {
	cancel context.CancelFunc
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Dispatcher.
func New(svc service.Service, v view.View, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		svc:      svc,
		view:     v,
		logger:   logging.Discard(),
		inflight: make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// registerKey quotes both ids so that no two (event, user) pairs share a key.
func registerKey(eventID, userID string) string {
	return fmt.Sprintf("register:%q:%q", eventID, userID)
}

func taskKey(id string) string  { return "task:" + id }
func eventKey(id string) string { return "event:" + id }

// begin registers a new action for key and cancels the one it supersedes.
func (d *Dispatcher) begin(ctx context.Context, key string) (context.Context, *flight) {
	ctx, cancel := context.WithCancel(ctx)
	f := &flight{cancel: cancel}

	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.inflight[key]; ok {
		prev.cancel()
		d.logger.Debug("action superseded", "key", key)
	}
	d.inflight[key] = f
	return ctx, f
}

// finish releases f and, if it is still the current action for key, runs
// render. It reports false when f was superseded.
func (d *Dispatcher) finish(key string, f *flight, render func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	f.cancel()
	if d.inflight[key] != f {
		return false
	}
	delete(d.inflight, key)
	if render != nil {
		render()
	}
	return true
}

// run performs call under key and renders its result if the action was not superseded.
// Failed calls leave the view untouched.
func run[T any](ctx context.Context, d *Dispatcher, key string, call func(context.Context) (T, error), render func(T)) (T, error) {
	var zero T
	ctx, f := d.begin(ctx, key)

	d.logger.Debug("action started", "key", key)
	res, err := call(ctx)
	if err != nil {
		if !d.finish(key, f, nil) {
			return zero, fmt.Errorf("%s: %w", key, service.ErrSuperseded)
		}
		d.logger.Debug("action failed", "key", key, logging.Err(err))
		return zero, err
	}
	if !d.finish(key, f, func() { render(res) }) {
		return zero, fmt.Errorf("%s: %w", key, service.ErrSuperseded)
	}
	return res, nil
}

// ToggleComplete flips a task's completion state and marks its row.
func (d *Dispatcher) ToggleComplete(ctx context.Context, taskID string) (service.ToggleResult, error) {
	return run(ctx, d, taskKey(taskID),
		func(ctx context.Context) (service.ToggleResult, error) { return d.svc.ToggleComplete(ctx, taskID) },
		func(r service.ToggleResult) { view.RenderToggle(d.view, r) })
}

// DeleteTask deletes a task and hides its row when the server confirms.
func (d *Dispatcher) DeleteTask(ctx context.Context, taskID string) (service.DeleteResult, error) {
	return run(ctx, d, taskKey(taskID),
		func(ctx context.Context) (service.DeleteResult, error) { return d.svc.DeleteTask(ctx, taskID) },
		func(r service.DeleteResult) { view.RenderDelete(d.view, r) })
}

// ValidateEdit trims the form values and requires a title and a description.
func ValidateEdit(form view.EditForm) (service.TaskRef, error) {
	task := service.TaskRef{
		ID:          strings.TrimSpace(form.TaskID),
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
	}
	if task.Title == "" || task.Description == "" {
		return service.TaskRef{}, fmt.Errorf("%w: %s", service.ErrValidation, view.NoticeInvalidEdit)
	}
	return task, nil
}

// SubmitEdit validates form and sends the edit when it is valid. The form
// is reset and the modal hidden in both cases, before the response arrives.
// An invalid form shows the validation notice and sends nothing.
func (d *Dispatcher) SubmitEdit(ctx context.Context, form view.EditForm) (service.EditResult, error) {
	task, err := ValidateEdit(form)
	if err != nil {
		d.view.Notify(view.NoticeInvalidEdit)
		view.CloseEditForm(d.view)
		return service.EditResult{}, err
	}
	view.CloseEditForm(d.view)

	return run(ctx, d, taskKey(task.ID),
		func(ctx context.Context) (service.EditResult, error) { return d.svc.EditTask(ctx, task) },
		func(r service.EditResult) { view.RenderEdit(d.view, r) })
}

// SubmitEditForm reads the edit form from the view and submits it.
func (d *Dispatcher) SubmitEditForm(ctx context.Context) (service.EditResult, error) {
	form, ok := d.view.EditForm()
	if !ok {
		return service.EditResult{}, fmt.Errorf("%w: no edit form on this page", service.ErrValidation)
	}
	return d.SubmitEdit(ctx, form)
}

// PopulateEditForm copies a task row's text into the edit form.
// eventID may be empty.
func (d *Dispatcher) PopulateEditForm(taskID, eventID string) bool {
	return view.PopulateEditForm(d.view, taskID, eventID)
}

// TogglePublish flips an event's published state and relabels its button.
func (d *Dispatcher) TogglePublish(ctx context.Context, eventID string) (service.PublishResult, error) {
	return run(ctx, d, eventKey(eventID),
		func(ctx context.Context) (service.PublishResult, error) { return d.svc.TogglePublish(ctx, eventID) },
		func(r service.PublishResult) { view.RenderPublish(d.view, r) })
}

// Register registers userID for eventID and shows the outcome notice.
// Concurrent calls for the same pair share one request and one notice.
// A caller whose ctx ends stops waiting; the shared request carries on.
func (d *Dispatcher) Register(ctx context.Context, eventID, userID string) (service.RegisterResult, error) {
	key := registerKey(eventID, userID)
	shared := context.WithoutCancel(ctx)

	ch := d.registrations.DoChan(key, func() (any, error) {
		d.logger.Debug("action started", "key", key)
		res, err := d.svc.Register(shared, eventID, userID)
		if err != nil {
			d.logger.Debug("action failed", "key", key, logging.Err(err))
			return res, err
		}
		d.mu.Lock()
		view.RenderRegister(d.view, res)
		d.mu.Unlock()
		return res, nil
	})

	select {
	case r := <-ch:
		res, _ := r.Val.(service.RegisterResult)
		return res, r.Err
	case <-ctx.Done():
		return service.RegisterResult{}, fmt.Errorf("%w: %w", service.ErrBackend, ctx.Err())
	}
}
