package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"evtask/internal/action"
	"evtask/internal/config"
	"evtask/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "evtask rm <task-id>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	taskID, err := ParseID(args, "task-")
	if err != nil {
		return reportIDError(errOut, err, "task")
	}

	return runAction(cfg, svc, out, errOut, func(d *action.Dispatcher) error {
		res, err := d.DeleteTask(ctx, taskID)
		if err != nil {
			return err
		}
		// The row stays visible; say so, since nothing else changes.
		if !res.Deleted && !cfg.Quiet {
			fmt.Fprintf(out, "task %s: not deleted\n", taskID)
		}
		return nil
	})
}
