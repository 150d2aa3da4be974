package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"evtask/internal/action"
	"evtask/internal/config"
	"evtask/internal/exitcode"
	"evtask/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	userID string
}

// SetUserID sets the user id (for testing).
func (c *RegisterCmd) SetUserID(id string) {
	c.userID = id
}

func (c *RegisterCmd) Name() string       { return "register" }
func (c *RegisterCmd) Aliases() []string  { return nil }
func (c *RegisterCmd) Synopsis() string   { return "Register a user for an event" }
func (c *RegisterCmd) Usage() string      { return "evtask register [--user <user-id>] <event-id>" }
func (c *RegisterCmd) NeedsService() bool { return true }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.userID, "user", "", "")
	fs.StringVar(&c.userID, "u", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	eventID, err := ParseID(args, "")
	if err != nil {
		return reportIDError(errOut, err, "event")
	}

	userID := strings.TrimSpace(c.userID)
	if userID == "" {
		userID = cfg.UserID
	}
	if userID == "" {
		fmt.Fprintln(errOut, "error: user id required (use --user or user_id in config.yml)")
		return exitcode.UserError
	}

	return runAction(cfg, svc, out, errOut, func(d *action.Dispatcher) error {
		_, err := d.Register(ctx, eventID, userID)
		return err
	})
}
