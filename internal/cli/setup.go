package cli

import (
	"context"
	"crm/internal/service"
	"crm/internal/view"

	"github.com/spf13/pflag"
)

func (a *App) setupCommand() *Command {
	var (
		withAdmin bool
		in        service.UserInput
	)
	return &Command{
		Name:    "setup",
		Summary: "Create the roles and permissions, optionally the first Admin",
		Examples: []Example{
			{Description: "first run on an empty database", Command: "crm setup --admin -n Root -e root@epic.test"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("setup")
			fs.BoolVar(&withAdmin, "admin", false, "create the first Admin account (only when no user exists)")
			fs.StringVarP(&in.Name, "name", "n", "", "admin name")
			fs.StringVarP(&in.Email, "email", "e", "", "admin email")
			fs.StringVarP(&in.Password, "password", "p", "", "admin password (prompted when omitted)")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			if err := a.svc.Setup(ctx); err != nil {
				return err
			}
			a.printer.Success("Roles and permissions are ready")
			if !withAdmin {
				return nil
			}

			if err := a.askText(&in.Name, "Enter the name of the admin"); err != nil {
				return err
			}
			if err := a.askText(&in.Email, "Enter the email of the admin"); err != nil {
				return err
			}
			if err := a.askPassword(&in.Password, "Enter the password of the admin"); err != nil {
				return err
			}
			user, err := a.svc.BootstrapAdmin(ctx, in)
			if err != nil {
				return err
			}
			a.printer.Success("User created successfully")
			a.printer.Line(view.User(user))
			return nil
		},
	}
}
