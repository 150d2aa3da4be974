package service

// TaskRef identifies a task and, transiently, carries its visible text.
type TaskRef struct {
	ID          string
	Title       string
	Description string
}

// ToggleResult is the server's answer to a completion toggle.
type ToggleResult struct {
	TaskID   string
	Complete bool
}

// DeleteResult is the server's answer to a task deletion.
type DeleteResult struct {
	TaskID  string
	Deleted bool
}

// EditResult is the server's answer to a task edit.
// Task is nil when the server did not return a task object.
type EditResult struct {
	Task *TaskRef
}

// PublishResult is the server's answer to a publish toggle.
type PublishResult struct {
	EventID   string
	Published bool
}

// RegisterOutcome is the tri-state answer of the register endpoint.
type RegisterOutcome int

const (
	// RegisterUnknown means the response carried no register_success field.
	RegisterUnknown RegisterOutcome = iota
	// Registered means the user was registered by this request.
	Registered
	// AlreadyRegistered means the user was registered before.
	AlreadyRegistered
)

func (o RegisterOutcome) String() string {
	switch o {
	case Registered:
		return "registered"
	case AlreadyRegistered:
		return "already registered"
	default:
		return "unknown"
	}
}

// RegisterResult is the server's answer to an event registration.
type RegisterResult struct {
	EventID string
	UserID  string
	Outcome RegisterOutcome
}
