package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"evtask/internal/action"
	"evtask/internal/config"
	"evtask/internal/exitcode"
	"evtask/internal/service"
)

func init() {
	Register(&FillCmd{})
}

// FillCmd implements the fill command: it copies a task row's text into
// the page's edit form. No request is sent.
type FillCmd struct {
	eventID string
}

// SetEventID sets the event id (for testing).
func (c *FillCmd) SetEventID(id string) {
	c.eventID = id
}

func (c *FillCmd) Name() string       { return "fill" }
func (c *FillCmd) Aliases() []string  { return nil }
func (c *FillCmd) Synopsis() string   { return "Copy a task row into the edit form" }
func (c *FillCmd) Usage() string      { return "evtask fill --page <file> [--event <event-id>] <task-id>" }
func (c *FillCmd) NeedsService() bool { return false }

func (c *FillCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.eventID, "event", "", "")
}

func (c *FillCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	taskID, err := ParseID(args, "task-")
	if err != nil {
		return reportIDError(errOut, err, "task")
	}
	if cfg.PagePath == "" {
		fmt.Fprintln(errOut, "error: fill needs --page")
		return exitcode.UserError
	}

	return runAction(cfg, svc, out, errOut, func(d *action.Dispatcher) error {
		if !d.PopulateEditForm(taskID, c.eventID) {
			return fmt.Errorf("%w: task not found on page: %s", service.ErrValidation, taskID)
		}
		return nil
	})
}
