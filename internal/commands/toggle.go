package commands

import (
	"context"
	"flag"
	"io"

	"evtask/internal/action"
	"evtask/internal/config"
	"evtask/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Toggle a task complete/incomplete" }
func (c *ToggleCmd) Usage() string      { return "evtask toggle <task-id>" }
func (c *ToggleCmd) NeedsService() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	taskID, err := ParseID(args, "task-")
	if err != nil {
		return reportIDError(errOut, err, "task")
	}

	return runAction(cfg, svc, out, errOut, func(d *action.Dispatcher) error {
		_, err := d.ToggleComplete(ctx, taskID)
		return err
	})
}
