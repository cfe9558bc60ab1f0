package cli

import (
	"context"
	"crm/internal/service"

	"github.com/spf13/pflag"
)

func (a *App) exportCommand() *Command {
	return &Command{
		Name:    "export",
		Summary: "Write a JSON snapshot to the configured storage",
		Subcommands: []*Command{
			a.exportKindCommand(service.ExportClients, "Export every client"),
			a.exportKindCommand(service.ExportContracts, "Export every contract"),
			a.exportKindCommand(service.ExportEvents, "Export every event"),
		},
	}
}

func (a *App) exportKindCommand(kind, summary string) *Command {
	return &Command{
		Name:    kind,
		Summary: summary,
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			result, err := a.svc.Export(ctx, actor, kind)
			if err != nil {
				return err
			}
			a.printer.Success("Exported %s to %s", pluralize(result.Count, kind[:len(kind)-1]), result.Key)
			return nil
		},
	}
}
