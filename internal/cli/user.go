package cli

import (
	"context"
	"crm/internal/authz"
	"crm/internal/service"
	"crm/internal/view"
	"strings"

	"github.com/spf13/pflag"
)

func (a *App) userCommand() *Command {
	return &Command{
		Name:    "user",
		Summary: "Manage collaborators and sessions",
		Subcommands: []*Command{
			a.createUserCommand(),
			a.loginCommand(),
			a.listUsersCommand(),
			a.getUserCommand(),
			a.deleteUserCommand(),
			a.updateUserCommand(),
			a.updateUserDirectCommand(),
		},
	}
}

func roleNames() string {
	names := make([]string, 0, len(authz.Roles))
	for _, role := range authz.Roles {
		names = append(names, string(role))
	}
	return strings.Join(names, ", ")
}

func (a *App) createUserCommand() *Command {
	var in service.UserInput
	return &Command{
		Name:    "create-user",
		Summary: "Create a collaborator",
		Examples: []Example{
			{Command: "crm user create-user -n Alice -e alice@epic.test -r Support"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("create-user")
			fs.StringVarP(&in.Name, "name", "n", "", "full name")
			fs.StringVarP(&in.Email, "email", "e", "", "email address")
			fs.StringVarP(&in.Password, "password", "p", "", "password (prompted when omitted)")
			fs.StringVarP(&in.Role, "role", "r", "", "role: "+roleNames())
			fs.BoolVarP(&in.ConfirmAdmin, "yes", "y", false, "confirm granting the Admin role")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askText(&in.Name, "Enter the name of the user"); err != nil {
				return err
			}
			if err := a.askText(&in.Email, "Enter the email of the user"); err != nil {
				return err
			}
			if err := a.askPassword(&in.Password, "Enter the password"); err != nil {
				return err
			}
			if err := a.askText(&in.Role, "Enter the role ("+roleNames()+")"); err != nil {
				return err
			}
			if err := a.confirmAdmin(in.Role, &in.ConfirmAdmin); err != nil {
				return err
			}

			user, err := a.svc.CreateUser(ctx, actor, in)
			if err != nil {
				return err
			}
			a.printer.Success("User created successfully")
			a.printer.Line(view.User(user))
			return nil
		},
	}
}

// confirmAdmin asks before granting the Admin role unless --yes was given.
func (a *App) confirmAdmin(role string, confirmed *bool) error {
	if *confirmed || !strings.EqualFold(strings.TrimSpace(role), string(authz.RoleAdmin)) {
		return nil
	}
	ok, err := a.prompter.Confirm("Grant the Admin role? Admins hold every permission", false)
	if err != nil {
		return err
	}
	*confirmed = ok
	return nil
}

func (a *App) loginCommand() *Command {
	var email, password string
	return &Command{
		Name:    "login",
		Summary: "Open a session for one hour",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("login")
			fs.StringVarP(&email, "email", "e", "", "email address")
			fs.StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			if err := a.askText(&email, "Enter your email"); err != nil {
				return err
			}
			if err := a.askPassword(&password, "Enter your password"); err != nil {
				return err
			}
			user, expiresAt, err := a.session.Login(ctx, email, password)
			if err != nil {
				return err
			}
			a.printer.Success("Welcome %s", user.Name)
			a.printer.Notice("Session valid until %s", expiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func (a *App) listUsersCommand() *Command {
	var role string
	return &Command{
		Name:    "list-users",
		Summary: "List collaborators",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("list-users")
			fs.StringVarP(&role, "role", "r", "", "only users with this role")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			users, err := a.svc.ListUsers(ctx, actor, role)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				a.printer.Line("No users found")
				return nil
			}
			for i := range users {
				a.printer.Line(view.User(&users[i]))
			}
			return nil
		},
	}
}

func (a *App) getUserCommand() *Command {
	var id uint
	return &Command{
		Name:    "get-user",
		Summary: "Show one collaborator",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("get-user")
			fs.UintVarP(&id, "id", "i", 0, "user id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the user"); err != nil {
				return err
			}
			user, err := a.svc.GetUser(ctx, actor, id)
			if err != nil {
				return err
			}
			a.printer.Line(view.User(user))
			return nil
		},
	}
}

func (a *App) deleteUserCommand() *Command {
	var id uint
	return &Command{
		Name:    "delete-user",
		Summary: "Delete a collaborator",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("delete-user")
			fs.UintVarP(&id, "id", "i", 0, "user id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the user to delete"); err != nil {
				return err
			}
			if err := a.svc.DeleteUser(ctx, actor, id); err != nil {
				return err
			}
			a.printer.Success("User deleted successfully")
			return nil
		},
	}
}

func (a *App) updateUserCommand() *Command {
	var id uint
	return &Command{
		Name:    "update-user",
		Summary: "Update a collaborator interactively",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-user")
			fs.UintVarP(&id, "id", "i", 0, "user id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the user to update"); err != nil {
				return err
			}
			user, err := a.svc.GetUser(ctx, actor, id)
			if err != nil {
				return err
			}

			var changes service.UserChanges
			if changes.Name, err = a.editText("Name", user.Name); err != nil {
				return err
			}
			if changes.Email, err = a.editText("Email", user.Email); err != nil {
				return err
			}
			password, err := a.prompter.Password("New password (blank to keep)")
			if err != nil {
				return err
			}
			if password != "" {
				changes.Password = &password
			}
			if authz.HasPermission(actor, authz.UpdateUser) {
				if changes.Role, err = a.editText("Role ("+roleNames()+")", user.RoleName()); err != nil {
					return err
				}
				if changes.Role != nil {
					if err := a.confirmAdmin(*changes.Role, &changes.ConfirmAdmin); err != nil {
						return err
					}
				}
			}

			updated, err := a.svc.UpdateUser(ctx, actor, user.ID, changes)
			if err != nil {
				return err
			}
			a.printer.Success("User updated successfully")
			a.printer.Line(view.User(updated))
			return nil
		},
	}
}

func (a *App) updateUserDirectCommand() *Command {
	var (
		id                          uint
		name, email, password, role string
		confirm                     bool
	)
	return &Command{
		Name:    "update-user-direct",
		Summary: "Update a collaborator from flags",
		Examples: []Example{
			{Command: "crm user update-user-direct -i 3 -r Gestion"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-user-direct")
			fs.UintVarP(&id, "id", "i", 0, "user id")
			fs.StringVarP(&name, "name", "n", "", "new name")
			fs.StringVarP(&email, "email", "e", "", "new email")
			fs.StringVarP(&password, "password", "p", "", "new password")
			fs.StringVarP(&role, "role", "r", "", "new role")
			fs.BoolVarP(&confirm, "yes", "y", false, "confirm granting the Admin role")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := requireID(id, "User"); err != nil {
				return err
			}
			changes := service.UserChanges{
				Name:         changedString(fs, "name", name),
				Email:        changedString(fs, "email", email),
				Password:     changedString(fs, "password", password),
				Role:         changedString(fs, "role", role),
				ConfirmAdmin: confirm,
			}
			updated, err := a.svc.UpdateUser(ctx, actor, id, changes)
			if err != nil {
				return err
			}
			a.printer.Success("User updated successfully")
			a.printer.Line(view.User(updated))
			return nil
		},
	}
}
