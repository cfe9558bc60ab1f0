package cli

import (
	"context"
	"crm/internal/service"
	"crm/internal/view"

	"github.com/spf13/pflag"
)

func (a *App) clientCommand() *Command {
	return &Command{
		Name:    "client",
		Summary: "Manage clients",
		Subcommands: []*Command{
			a.createClientCommand(),
			a.deleteClientCommand(),
			a.listClientsCommand(),
			a.getClientCommand(),
			a.updateClientCommand(),
			a.updateClientDirectCommand(),
		},
	}
}

func (a *App) createClientCommand() *Command {
	var in service.ClientInput
	return &Command{
		Name:    "create-client",
		Summary: "Register a client you follow",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("create-client")
			fs.StringVarP(&in.FirstName, "first-name", "f", "", "first name")
			fs.StringVarP(&in.LastName, "last-name", "l", "", "last name")
			fs.StringVarP(&in.Email, "email", "e", "", "email address")
			fs.StringVarP(&in.Phone, "phone", "p", "", "phone number")
			fs.StringVarP(&in.CompanyName, "company", "c", "", "company name")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askText(&in.FirstName, "Enter the first name of the client"); err != nil {
				return err
			}
			if err := a.askText(&in.LastName, "Enter the last name of the client"); err != nil {
				return err
			}
			if err := a.askText(&in.Email, "Enter the email of the client"); err != nil {
				return err
			}
			if !fs.Changed("phone") {
				if in.Phone, err = a.prompter.Line("Enter the phone number of the client", ""); err != nil {
					return err
				}
			}
			if !fs.Changed("company") {
				if in.CompanyName, err = a.prompter.Line("Enter the company name of the client", ""); err != nil {
					return err
				}
			}

			client, err := a.svc.CreateClient(ctx, actor, in)
			if err != nil {
				return err
			}
			a.printer.Success("Client created successfully")
			a.printer.Line(view.Client(client))
			return nil
		},
	}
}

func (a *App) deleteClientCommand() *Command {
	var id uint
	return &Command{
		Name:    "delete-client",
		Summary: "Delete a client",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("delete-client")
			fs.UintVarP(&id, "id", "i", 0, "client id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the client to delete"); err != nil {
				return err
			}
			if err := a.svc.DeleteClient(ctx, actor, id); err != nil {
				return err
			}
			a.printer.Success("Client deleted successfully")
			return nil
		},
	}
}

func (a *App) listClientsCommand() *Command {
	var mine bool
	return &Command{
		Name:    "list-clients",
		Summary: "List clients",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("list-clients")
			fs.BoolVar(&mine, "mine", false, "only clients you follow")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			clients, err := a.svc.ListClients(ctx, actor, mine)
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				a.printer.Line("No elements found")
				return nil
			}
			for i := range clients {
				a.printer.Line(view.Client(&clients[i]))
			}
			return nil
		},
	}
}

func (a *App) getClientCommand() *Command {
	var id uint
	return &Command{
		Name:    "get-client",
		Summary: "Show one client",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("get-client")
			fs.UintVarP(&id, "id", "i", 0, "client id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the client"); err != nil {
				return err
			}
			client, err := a.svc.GetClient(ctx, actor, id)
			if err != nil {
				return err
			}
			a.printer.Line(view.Client(client))
			return nil
		},
	}
}

func (a *App) updateClientCommand() *Command {
	var id uint
	return &Command{
		Name:    "update-client",
		Summary: "Update a client interactively",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-client")
			fs.UintVarP(&id, "id", "i", 0, "client id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the client to update"); err != nil {
				return err
			}
			client, err := a.svc.ClientForUpdate(ctx, actor, id)
			if err != nil {
				return err
			}

			var changes service.ClientChanges
			if changes.FirstName, err = a.editText("First name", client.FirstName); err != nil {
				return err
			}
			if changes.LastName, err = a.editText("Last name", client.LastName); err != nil {
				return err
			}
			if changes.Email, err = a.editText("Email", client.Email); err != nil {
				return err
			}
			if changes.Phone, err = a.editText("Phone", client.Phone); err != nil {
				return err
			}
			if changes.CompanyName, err = a.editText("Company name", client.CompanyName); err != nil {
				return err
			}
			if changes.LastContact, err = a.editDate("Last contact", client.LastContact); err != nil {
				return err
			}

			updated, err := a.svc.UpdateClient(ctx, actor, client.ID, changes)
			if err != nil {
				return err
			}
			a.printer.Success("Client updated successfully")
			a.printer.Line(view.Client(updated))
			return nil
		},
	}
}

func (a *App) updateClientDirectCommand() *Command {
	var (
		id                                                uint
		firstName, lastName, email, phone, company, since string
	)
	return &Command{
		Name:    "update-client-direct",
		Summary: "Update a client from flags",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-client-direct")
			fs.UintVarP(&id, "id", "i", 0, "client id")
			fs.StringVarP(&firstName, "first-name", "f", "", "new first name")
			fs.StringVarP(&lastName, "last-name", "l", "", "new last name")
			fs.StringVarP(&email, "email", "e", "", "new email")
			fs.StringVarP(&phone, "phone", "p", "", "new phone number")
			fs.StringVarP(&company, "company", "c", "", "new company name")
			fs.StringVarP(&since, "last-contact", "d", "", "last contact date (YYYY-MM-DD)")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := requireID(id, "Client"); err != nil {
				return err
			}
			lastContact, err := flagDate(fs, "last-contact", since)
			if err != nil {
				return err
			}
			changes := service.ClientChanges{
				FirstName:   changedString(fs, "first-name", firstName),
				LastName:    changedString(fs, "last-name", lastName),
				Email:       changedString(fs, "email", email),
				Phone:       changedString(fs, "phone", phone),
				CompanyName: changedString(fs, "company", company),
				LastContact: lastContact,
			}
			updated, err := a.svc.UpdateClient(ctx, actor, id, changes)
			if err != nil {
				return err
			}
			a.printer.Success("Client updated successfully")
			a.printer.Line(view.Client(updated))
			return nil
		},
	}
}
