package testutil

import (
	"fmt"
	"sync"

	"evtask/internal/view"
)

// Recorder is a view.View that records every patch as a string.
// Rows registered with SetRow can be read back by TaskText.
type Recorder struct {
	mu      sync.Mutex
	patches []string
	rows    map[string][2]string
	form    view.EditForm
}

var _ view.View = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{rows: make(map[string][2]string)}
}

// SetRow registers the visible text of a task row.
func (r *Recorder) SetRow(taskID, title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[taskID] = [2]string{title, description}
}

// SetForm sets the current edit form values.
func (r *Recorder) SetForm(form view.EditForm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.form = form
}

// Patches returns the recorded patches, oldest first.
func (r *Recorder) Patches() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.patches))
	copy(out, r.patches)
	return out
}

func (r *Recorder) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, fmt.Sprintf(format, args...))
}

func (r *Recorder) SetTaskComplete(taskID string, complete bool) {
	r.record("complete %s %t", taskID, complete)
}

func (r *Recorder) HideTask(taskID string) {
	r.record("hide %s", taskID)
}

func (r *Recorder) SetTaskText(taskID, title, description string) {
	r.mu.Lock()
	r.rows[taskID] = [2]string{title, description}
	r.mu.Unlock()
	r.record("text %s %q %q", taskID, title, description)
}

func (r *Recorder) TaskText(taskID string) (string, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[taskID]
	return row[0], row[1], ok
}

func (r *Recorder) EditForm() (view.EditForm, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form, true
}

func (r *Recorder) FillEditForm(form view.EditForm) {
	r.mu.Lock()
	if form.EventID == "" {
		form.EventID = r.form.EventID
	}
	r.form = form
	r.mu.Unlock()
	r.record("fill %s %q %q %s", form.TaskID, form.Title, form.Description, form.EventID)
}

func (r *Recorder) ResetEditForm() {
	r.mu.Lock()
	r.form = view.EditForm{}
	r.mu.Unlock()
	r.record("reset")
}

func (r *Recorder) HideModal() {
	r.record("hide modal")
}

func (r *Recorder) SetPublishLabel(eventID, label string) {
	r.record("label %s %s", eventID, label)
}

func (r *Recorder) Notify(message string) {
	r.record("notify %s", message)
}
