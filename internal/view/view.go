// Package view maps typed action results onto page patches.
//
// A View is the page the user is looking at. Lookups of elements that do not
// exist are no-ops, the same way a selector that matches nothing is.
package view

// EditForm holds the values of the task edit form.
type EditForm struct {
	TaskID      string
	Title       string
	Description string
	EventID     string
}

// View is the set of patches the action dispatcher applies.
type View interface {
	// SetTaskComplete marks the row of taskID complete or incomplete.
	SetTaskComplete(taskID string, complete bool)

	// HideTask hides the row of taskID.
	HideTask(taskID string)

	// SetTaskText replaces the title and description cells of taskID.
	SetTaskText(taskID, title, description string)

	// TaskText returns the visible title and description of taskID.
	TaskText(taskID string) (title, description string, ok bool)

	// EditForm returns the current values of the edit form.
	EditForm() (EditForm, bool)

	// FillEditForm writes form into the edit form fields.
	FillEditForm(form EditForm)

	// ResetEditForm clears the edit form.
	ResetEditForm()

	// HideModal dismisses the edit modal.
	HideModal()

	// SetPublishLabel sets the label of the publish button of eventID.
	SetPublishLabel(eventID, label string)

	// Notify shows a blocking notice to the user.
	Notify(message string)
}
