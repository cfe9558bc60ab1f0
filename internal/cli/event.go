package cli

import (
	"context"
	"crm/internal/service"
	"crm/internal/view"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

func (a *App) eventCommand() *Command {
	return &Command{
		Name:    "event",
		Summary: "Manage events",
		Subcommands: []*Command{
			a.createEventCommand(),
			a.deleteEventCommand(),
			a.listEventsCommand(),
			a.getEventCommand(),
			a.updateEventCommand(),
			a.updateEventDirectCommand(),
		},
	}
}

// askSupport prompts for an optional support contact id.
func (a *App) askSupport(label, def string) (*uint, error) {
	answer, err := a.prompter.Line(label, def)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, nil
	}
	id, err := parseID(answer)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (a *App) createEventCommand() *Command {
	var (
		in      service.EventInput
		support uint
	)
	return &Command{
		Name:    "create-event",
		Summary: "Organise the event of a signed contract",
		Examples: []Example{
			{Command: "crm event create-event -n Gala -c 2 -l Paris -a 120 --start 2024-06-01 --end 2024-06-02"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("create-event")
			fs.StringVarP(&in.Name, "name", "n", "", "event name")
			fs.UintVarP(&in.ContractID, "contract", "c", 0, "contract id")
			fs.StringVarP(&in.Location, "location", "l", "", "location")
			fs.IntVarP(&in.Attendees, "attendees", "a", 0, "expected attendees")
			fs.StringVarP(&in.Notes, "notes", "o", "", "notes")
			fs.UintVarP(&support, "support", "s", 0, "support contact user id")
			fs.StringVar(&in.Start, "start", "", "start date (YYYY-MM-DD)")
			fs.StringVar(&in.End, "end", "", "end date (YYYY-MM-DD)")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&in.ContractID, "Enter the id of the contract"); err != nil {
				return err
			}
			if err := a.askText(&in.Name, "Enter the name of the event"); err != nil {
				return err
			}
			if !fs.Changed("location") {
				if in.Location, err = a.prompter.Line("Enter the location", ""); err != nil {
					return err
				}
			}
			if !fs.Changed("attendees") {
				answer, err := a.prompter.Line("Enter the number of attendees", "0")
				if err != nil {
					return err
				}
				if in.Attendees, err = parseCount("attendees", answer); err != nil {
					return err
				}
			}
			if !fs.Changed("notes") {
				if in.Notes, err = a.prompter.Line("Enter notes", ""); err != nil {
					return err
				}
			}
			if err := a.askDate(&in.Start, "Enter the start date"); err != nil {
				return err
			}
			if err := a.askDate(&in.End, "Enter the end date"); err != nil {
				return err
			}
			if fs.Changed("support") {
				in.SupportContactID = &support
			} else if in.SupportContactID, err = a.askSupport("Enter the id of the support contact (blank for none)", ""); err != nil {
				return err
			}

			event, err := a.svc.CreateEvent(ctx, actor, in)
			if err != nil {
				return err
			}
			a.printer.Success("Event created successfully")
			a.printer.Line(fmt.Sprintf("Event id: %d", event.ID))
			return nil
		},
	}
}

func (a *App) deleteEventCommand() *Command {
	var id uint
	return &Command{
		Name:    "delete-event",
		Summary: "Delete an event",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("delete-event")
			fs.UintVarP(&id, "id", "i", 0, "event id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the event to delete"); err != nil {
				return err
			}
			if err := a.svc.DeleteEvent(ctx, actor, id); err != nil {
				return err
			}
			a.printer.Success("Event deleted successfully")
			return nil
		},
	}
}

func (a *App) listEventsCommand() *Command {
	var filter service.EventFilter
	return &Command{
		Name:    "list-events",
		Summary: "List events",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("list-events")
			fs.StringVarP(&filter.SupportName, "support", "s", "", "only events followed by this support user (name)")
			fs.BoolVar(&filter.Unassigned, "unassigned", false, "only events without support contact")
			fs.BoolVar(&filter.Mine, "mine", false, "only events you support")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			events, err := a.svc.ListEvents(ctx, actor, filter)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				a.printer.Line("No events in the database")
				return nil
			}
			for i := range events {
				a.printer.Line(view.Event(&events[i]))
			}
			a.printer.Notice("%s listed", pluralize(len(events), "event"))
			return nil
		},
	}
}

func (a *App) getEventCommand() *Command {
	var id uint
	return &Command{
		Name:    "get-event",
		Summary: "Show one event",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("get-event")
			fs.UintVarP(&id, "id", "i", 0, "event id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the event"); err != nil {
				return err
			}
			event, err := a.svc.GetEvent(ctx, actor, id)
			if err != nil {
				return err
			}
			a.printer.Line(view.Event(event))
			return nil
		},
	}
}

func (a *App) updateEventCommand() *Command {
	var id uint
	return &Command{
		Name:    "update-event",
		Summary: "Update an event interactively",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-event")
			fs.UintVarP(&id, "id", "i", 0, "event id")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := a.askID(&id, "Enter the id of the event to update"); err != nil {
				return err
			}
			event, err := a.svc.EventForUpdate(ctx, actor, id)
			if err != nil {
				return err
			}

			var changes service.EventChanges
			if changes.Name, err = a.editText("Name", event.Name); err != nil {
				return err
			}
			if changes.Location, err = a.editText("Location", event.Location); err != nil {
				return err
			}
			attendees, err := a.editText("Attendees", strconv.Itoa(event.Attendees))
			if err != nil {
				return err
			}
			if attendees != nil {
				n, err := parseCount("attendees", *attendees)
				if err != nil {
					return err
				}
				changes.Attendees = &n
			}
			if changes.Notes, err = a.editText("Notes", event.Notes); err != nil {
				return err
			}
			if changes.Start, err = a.editDate("Start date", event.StartDate); err != nil {
				return err
			}
			if changes.End, err = a.editDate("End date", event.EndDate); err != nil {
				return err
			}
			current := ""
			if event.SupportContactID != nil {
				current = strconv.FormatUint(uint64(*event.SupportContactID), 10)
			}
			if changes.SupportContactID, err = a.askSupport("Support contact id", current); err != nil {
				return err
			}

			updated, err := a.svc.UpdateEvent(ctx, actor, event.ID, changes)
			if err != nil {
				return err
			}
			a.printer.Success("Event updated successfully")
			a.printer.Line(view.Event(updated))
			return nil
		},
	}
}

func (a *App) updateEventDirectCommand() *Command {
	var (
		id, support           uint
		name, location, notes string
		attendees             int
		start, end            string
	)
	return &Command{
		Name:    "update-event-direct",
		Summary: "Update an event from flags",
		Examples: []Example{
			{Command: "crm event update-event-direct -i 1 -s 4 -o \"Bring badges\""},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("update-event-direct")
			fs.UintVarP(&id, "id", "i", 0, "event id")
			fs.StringVarP(&name, "name", "n", "", "new name")
			fs.StringVarP(&location, "location", "l", "", "new location")
			fs.IntVarP(&attendees, "attendees", "a", 0, "new attendee count")
			fs.StringVarP(&notes, "notes", "o", "", "new notes")
			fs.UintVarP(&support, "support", "s", 0, "new support contact user id")
			fs.StringVar(&start, "start", "", "new start date (YYYY-MM-DD)")
			fs.StringVar(&end, "end", "", "new end date (YYYY-MM-DD)")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			actor, err := a.session.Actor(ctx)
			if err != nil {
				return err
			}
			if err := requireID(id, "Event"); err != nil {
				return err
			}
			changes := service.EventChanges{
				Name:             changedString(fs, "name", name),
				Location:         changedString(fs, "location", location),
				Notes:            changedString(fs, "notes", notes),
				SupportContactID: changedUint(fs, "support", support),
			}
			if fs.Changed("attendees") {
				changes.Attendees = &attendees
			}
			if changes.Start, err = flagDate(fs, "start", start); err != nil {
				return err
			}
			if changes.End, err = flagDate(fs, "end", end); err != nil {
				return err
			}
			updated, err := a.svc.UpdateEvent(ctx, actor, id, changes)
			if err != nil {
				return err
			}
			a.printer.Success("Event updated successfully")
			a.printer.Line(view.Event(updated))
			return nil
		},
	}
}
