package view

import "evtask/internal/service"

const (
	LabelPublish   = "Publish"
	LabelUnpublish = "Unpublish"

	NoticeRegistered        = "You have been registered! Check our 'Registered Events page'"
	NoticeAlreadyRegistered = "You are already registered."
	NoticeInvalidEdit       = "All fields must have a valid value."
)

// RenderToggle applies a completion toggle result.
func RenderToggle(v View, r service.ToggleResult) {
	v.SetTaskComplete(r.TaskID, r.Complete)
}

// RenderDelete hides the task row when the server confirmed the deletion.
func RenderDelete(v View, r service.DeleteResult) {
	if r.Deleted {
		v.HideTask(r.TaskID)
	}
}

// RenderEdit patches the task row with the task the server returned, if any.
func RenderEdit(v View, r service.EditResult) {
	if r.Task == nil {
		return
	}
	v.SetTaskText(r.Task.ID, r.Task.Title, r.Task.Description)
}

// PublishLabel is the button label shown after a publish toggle.
// A published event offers "Unpublish".
func PublishLabel(published bool) string {
	if published {
		return LabelUnpublish
	}
	return LabelPublish
}

// RenderPublish relabels the publish button of the event.
func RenderPublish(v View, r service.PublishResult) {
	v.SetPublishLabel(r.EventID, PublishLabel(r.Published))
}

// RenderRegister shows the notice matching the registration outcome.
// An unknown outcome shows nothing.
func RenderRegister(v View, r service.RegisterResult) {
	switch r.Outcome {
	case service.Registered:
		v.Notify(NoticeRegistered)
	case service.AlreadyRegistered:
		v.Notify(NoticeAlreadyRegistered)
	}
}

// CloseEditForm resets the edit form and dismisses its modal.
func CloseEditForm(v View) {
	v.ResetEditForm()
	v.HideModal()
}

// PopulateEditForm copies the visible text of taskID into the edit form.
// It reports false, leaving the form untouched, when taskID is empty or has no row.
func PopulateEditForm(v View, taskID, eventID string) bool {
	if taskID == "" {
		return false
	}
	title, description, ok := v.TaskText(taskID)
	if !ok {
		return false
	}
	v.FillEditForm(EditForm{
		TaskID:      taskID,
		Title:       title,
		Description: description,
		EventID:     eventID,
	})
	return true
}
