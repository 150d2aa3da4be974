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
	"evtask/internal/view"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// With no field flags and a --page, it submits the page's edit form.
type EditCmd struct {
	id          string
	title       string
	description string
}

// SetForm sets the field flags (for testing).
func (c *EditCmd) SetForm(id, title, description string) {
	c.id, c.title, c.description = id, title, description
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title and description" }
func (c *EditCmd) Usage() string {
	return "evtask edit --id <task-id> --title <title> --description <text>"
}
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	fromPage := c.id == "" && c.title == "" && c.description == ""
	if fromPage && cfg.PagePath == "" {
		fmt.Fprintln(errOut, "error: --id, --title and --description required (or --page with a filled edit form)")
		return exitcode.UserError
	}

	return runAction(cfg, svc, out, errOut, func(d *action.Dispatcher) error {
		if fromPage {
			_, err := d.SubmitEditForm(ctx)
			return err
		}
		_, err := d.SubmitEdit(ctx, view.EditForm{
			TaskID:      c.id,
			Title:       c.title,
			Description: c.description,
		})
		return err
	})
}
