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
	Register(&PublishCmd{})
}

// PublishCmd implements the publish command.
type PublishCmd struct{}

func (c *PublishCmd) Name() string       { return "publish" }
func (c *PublishCmd) Aliases() []string  { return []string{"unpublish"} }
func (c *PublishCmd) Synopsis() string   { return "Toggle an event published/unpublished" }
func (c *PublishCmd) Usage() string      { return "evtask publish <event-id>" }
func (c *PublishCmd) NeedsService() bool { return true }

func (c *PublishCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PublishCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	eventID, err := ParseID(args, "publish-")
	if err != nil {
		return reportIDError(errOut, err, "event")
	}

	return runAction(cfg, svc, out, errOut, func(d *action.Dispatcher) error {
		_, err := d.TogglePublish(ctx, eventID)
		return err
	})
}
