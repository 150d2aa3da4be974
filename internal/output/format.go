// Package output provides the terminal view and its line formats.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"evtask/internal/view"
)

// Terminal is a View that prints one line per patch.
// It has no page to read from, so TaskText and EditForm report false.
// Lines from concurrent patches are never interleaved.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

var _ view.View = (*Terminal)(nil)

// NewTerminal creates a terminal view writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// FormatTaskState formats a completion patch.
// Format: "task {ID}: complete|incomplete\n"
func FormatTaskState(w io.Writer, taskID string, complete bool) {
	state := "incomplete"
	if complete {
		state = "complete"
	}
	fmt.Fprintf(w, "task %s: %s\n", taskID, state)
}

// FormatTaskText formats a title/description patch.
// Format: "task {ID}: {TITLE}\n    {DESCRIPTION}\n"
func FormatTaskText(w io.Writer, taskID, title, description string) {
	fmt.Fprintf(w, "task %s: %s\n", taskID, normalizeText(title))
	fmt.Fprintf(w, "    %s\n", normalizeText(description))
}

func (t *Terminal) SetTaskComplete(taskID string, complete bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	FormatTaskState(t.w, taskID, complete)
}

func (t *Terminal) HideTask(taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "task %s: deleted\n", taskID)
}

func (t *Terminal) SetTaskText(taskID, title, description string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	FormatTaskText(t.w, taskID, title, description)
}

func (t *Terminal) TaskText(string) (string, string, bool) { return "", "", false }

func (t *Terminal) EditForm() (view.EditForm, bool) { return view.EditForm{}, false }

func (t *Terminal) FillEditForm(form view.EditForm) {
	t.mu.Lock()
	defer t.mu.Unlock()
	FormatTaskText(t.w, form.TaskID, form.Title, form.Description)
}

func (t *Terminal) ResetEditForm() {}

func (t *Terminal) HideModal() {}

func (t *Terminal) SetPublishLabel(eventID, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "event %s: %s\n", eventID, label)
}

func (t *Terminal) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, message)
}

// normalizeText normalizes text for a single display line.
// - Empty or whitespace-only text becomes "(empty)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(empty)"
	}
	return text
}
