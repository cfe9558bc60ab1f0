package cli

import (
	"context"
	"crm/internal/service"
	"crm/internal/view"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

func (a *App) contractCommand() *Command {
	return &Command{
		Name:    "contract",
		Summary: "Manage contracts",
		Subcommands: []*Command{
			a.createContractCommand(),
			a.deleteContractCommand(),
			a.listContractsCommand(),
			a.getContractCommand(),
			a.updateContractCommand(),
			a.updateContractDirectCommand(),
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// askAmount prompts for an amount unless the flag was set.
func (a *App) askAmount(fs *pflag.FlagSet, flag string, value *float64, label, def string) error {
	if fs.Changed(flag) {
		return nil
	}
	answer, err := a.prompter.Line(label, def)
	if err != nil {
		return err
	}
	amount, err := parseAmount(flag, answer)
	if err != nil {
		return err
	}
	*value = amount
	return nil
}

func (a *App) createContractCommand() *Command {
	var in service.ContractInput
	return &Command{
		Name:    "create-contract",
		Summary: "Open a contract for a client",
		Examples: []Example{
			{Command: "crm contract create-contract -c 1 -t 5000 -r 5000"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("create-contract")
			fs.UintVarP(&in.ClientID, "client", "c", 0, "client id")
			fs.Float64VarP(&in.TotalAmount, "total", "t", 0, "total amount")
			fs.Float64VarP(&in.RemainingAmount, "remaining", "r", 0, "amount left to pay")
			fs.BoolVar(&in.Signed, "sign", false, "the contract is signed")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&in.ClientID, "Enter the id of the client"); err != nil {
				return err
			}
			if err := a.askAmount(fs, "total", &in.TotalAmount, "Enter the total amount", ""); err != nil {
				return err
			}
			if err := a.askAmount(fs, "remaining", &in.RemainingAmount, "Enter the remaining amount", formatFloat(in.TotalAmount)); err != nil {
				return err
			}

			contract, err := a.svc.CreateContract(ctx, actor, in)
			if err != nil {
				return err
			}
			a.printer.Success("Contract created successfully")
			a.printer.Line(fmt.Sprintf("Contract ID: %d", contract.ID))
			return nil
		},
	}
}

func (a *App) deleteContractCommand() *Command {
	var id uint
	return &Command{
		Name:    "delete-contract",
		Summary: "Delete a contract",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("delete-contract")
			fs.UintVarP(&id, "id", "i", 0, "contract id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the contract to delete"); err != nil {
				return err
			}
			if err := a.svc.DeleteContract(ctx, actor, id); err != nil {
				return err
			}
			a.printer.Success("Contract deleted successfully")
			return nil
		},
	}
}

func (a *App) listContractsCommand() *Command {
	var filter service.ContractFilter
	return &Command{
		Name:    "list-contracts",
		Summary: "List contracts",
		Examples: []Example{
			{Description: "signed contracts with money left to collect", Command: `crm contract list-contracts -s signed -r "rest to pay"`},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("list-contracts")
			fs.StringVarP(&filter.Status, "status", "s", "", `"signed" or "not signed"`)
			fs.StringVarP(&filter.Remain, "remain", "r", "", `"rest to pay" or "paid"`)
			fs.BoolVar(&filter.Mine, "mine", false, "only contracts you follow")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			contracts, err := a.svc.ListContracts(ctx, actor, filter)
			if err != nil {
				return err
			}
			if len(contracts) == 0 {
				a.printer.Line("No elements found")
				return nil
			}
			for i := range contracts {
				a.printer.Line(view.Contract(&contracts[i]))
			}
			return nil
		},
	}
}

func (a *App) getContractCommand() *Command {
	var id uint
	return &Command{
		Name:    "get-contract",
		Summary: "Show one contract",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("get-contract")
			fs.UintVarP(&id, "id", "i", 0, "contract id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the contract"); err != nil {
				return err
			}
			contract, err := a.svc.GetContract(ctx, actor, id)
			if err != nil {
				return err
			}
			a.printer.Line(view.Contract(contract))
			return nil
		},
	}
}

func (a *App) updateContractCommand() *Command {
	var id uint
	return &Command{
		Name:    "update-contract",
		Summary: "Update a contract interactively",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-contract")
			fs.UintVarP(&id, "id", "i", 0, "contract id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the contract to update"); err != nil {
				return err
			}
			contract, err := a.svc.ContractForUpdate(ctx, actor, id)
			if err != nil {
				return err
			}

			var changes service.ContractChanges
			answer, err := a.prompter.Line("Client id", strconv.FormatUint(uint64(contract.ClientID), 10))
			if err != nil {
				return err
			}
			clientID, err := parseID(answer)
			if err != nil {
				return err
			}
			if clientID != contract.ClientID {
				changes.ClientID = &clientID
			}
			if changes.TotalAmount, err = a.editAmount("Total amount", contract.TotalAmount); err != nil {
				return err
			}
			if changes.RemainingAmount, err = a.editAmount("Remaining amount", contract.RemainingAmount); err != nil {
				return err
			}
			signed, err := a.prompter.Confirm("Is the contract signed?", contract.Signed)
			if err != nil {
				return err
			}
			if signed != contract.Signed {
				changes.Signed = &signed
			}

			updated, err := a.svc.UpdateContract(ctx, actor, contract.ID, changes)
			if err != nil {
				return err
			}
			a.printer.Success("Contract updated successfully")
			a.printer.Line(view.Contract(updated))
			return nil
		},
	}
}

func (a *App) editAmount(label string, current float64) (*float64, error) {
	def := formatFloat(current)
	answer, err := a.prompter.Line(label, def)
	if err != nil {
		return nil, err
	}
	if answer == def {
		return nil, nil
	}
	amount, err := parseAmount(label, answer)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func (a *App) updateContractDirectCommand() *Command {
	var (
		id, clientID     uint
		total, remaining float64
		signed           bool
	)
	return &Command{
		Name:    "update-contract-direct",
		Summary: "Update a contract from flags",
		Examples: []Example{
			{Command: "crm contract update-contract-direct -i 2 --sign -r 0"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-contract-direct")
			fs.UintVarP(&id, "id", "i", 0, "contract id")
			fs.UintVarP(&clientID, "client", "c", 0, "new client id")
			fs.Float64VarP(&total, "total", "t", 0, "new total amount")
			fs.Float64VarP(&remaining, "remaining", "r", 0, "new remaining amount")
			fs.BoolVar(&signed, "sign", false, "signature state (--sign=false to unsign)")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := requireID(id, "Contract"); err != nil {
				return err
			}
			changes := service.ContractChanges{
				ClientID:        changedUint(fs, "client", clientID),
				TotalAmount:     changedFloat(fs, "total", total),
				RemainingAmount: changedFloat(fs, "remaining", remaining),
			}
			if fs.Changed("sign") {
				changes.Signed = &signed
			}
			updated, err := a.svc.UpdateContract(ctx, actor, id, changes)
			if err != nil {
				return err
			}
			a.printer.Success("Contract updated successfully")
			a.printer.Line(view.Contract(updated))
			return nil
		},
	}
}
