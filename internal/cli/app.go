// Package cli implements the crm command tree.
package cli

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/prompt"
	"crm/internal/service"
	"crm/internal/view"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Options wires an App.
type Options struct {
	Service  *service.Service
	Session  *service.Session
	Prompter prompt.Prompter
	Out      io.Writer
	HelpOut  io.Writer
	Version  string
}

// App binds the command tree to the services.
type App struct {
	svc      *service.Service
	session  *service.Session
	prompter prompt.Prompter
	printer  *view.Printer
	helpOut  io.Writer
	version  string
}

// NewApp creates an App.
func NewApp(opts Options) *App {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	helpOut := opts.HelpOut
	if helpOut == nil {
		helpOut = os.Stderr
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &App{
		svc:      opts.Service,
		session:  opts.Session,
		prompter: opts.Prompter,
		printer:  view.NewPrinter(out),
		helpOut:  helpOut,
		version:  version,
	}
}

// Root builds the command tree.
func (a *App) Root() *Command {
	return &Command{
		Name:    "crm",
		Summary: "Epic Events CRM: collaborators, clients, contracts and events.",
		Output:  a.helpOut,
		Subcommands: []*Command{
			a.userCommand(),
			a.clientCommand(),
			a.contractCommand(),
			a.eventCommand(),
			a.setupCommand(),
			a.exportCommand(),
			a.versionCommand(),
		},
	}
}

// Run executes one command and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	err := a.Root().Execute(ctx, args)
	if err == nil {
		return 0
	}
	if errors.Is(err, prompt.ErrAborted) {
		a.printer.Notice("Aborted")
		return 1
	}
	if errors.Is(err, context.DeadlineExceeded) {
		a.printer.Error(apperr.Wrap(apperr.CodeInternal, "command timed out", err))
		return 1
	}
	logrus.WithError(err).WithField("code", apperr.CodeOf(err)).Debug("command failed")
	a.printer.Error(err)
	return 1
}

func (a *App) versionCommand() *Command {
	return &Command{
		Name:    "version",
		Summary: "Print the version",
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			a.printer.Line("crm " + a.version)
			return nil
		},
	}
}

// askText prompts for value when it was not given on the command line.
func (a *App) askText(value *string, label string) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	answer, err := a.prompter.Line(label, "")
	if err != nil {
		return err
	}
	*value = answer
	return nil
}

func (a *App) askPassword(value *string, label string) error {
	if *value != "" {
		return nil
	}
	answer, err := a.prompter.Password(label)
	if err != nil {
		return err
	}
	*value = answer
	return nil
}

// askID prompts for a record id when the flag was not set.
func (a *App) askID(value *uint, label string) error {
	if *value != 0 {
		return nil
	}
	answer, err := a.prompter.Line(label, "")
	if err != nil {
		return err
	}
	id, err := parseID(answer)
	if err != nil {
		return err
	}
	*value = id
	return nil
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid id: %q", value)
	}
	return uint(id), nil
}

func parseAmount(label, value string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, apperr.Validation("Invalid %s: %q", label, value)
	}
	return amount, nil
}

func parseCount(label, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, apperr.Validation("Invalid %s: %q", label, value)
	}
	return n, nil
}

// askDate loops until a valid date is given.
func (a *App) askDate(value *string, label string) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	for {
		answer, err := a.prompter.Line(label+" (YYYY-MM-DD)", "")
		if err != nil {
			return err
		}
		if _, err := service.ParseDate(answer); err != nil {
			a.printer.Notice("%s", err.Error())
			continue
		}
		*value = answer
		return nil
	}
}

// editText asks for a new value, showing the current one as default. It
// returns nil when the value is unchanged.
func (a *App) editText(label, current string) (*string, error) {
	answer, err := a.prompter.Line(label, current)
	if err != nil {
		return nil, err
	}
	if answer == current {
		return nil, nil
	}
	return &answer, nil
}

// editDate keeps the current date when the answer is malformed.
func (a *App) editDate(label string, current time.Time) (*time.Time, error) {
	def := current.Format(service.DateLayout)
	answer, err := a.prompter.Line(label+" (YYYY-MM-DD)", def)
	if err != nil {
		return nil, err
	}
	if answer == def {
		return nil, nil
	}
	parsed, err := service.ParseDate(answer)
	if err != nil {
		a.printer.Notice("%s, keeping %s", err.Error(), def)
		return nil, nil
	}
	return &parsed, nil
}

// flagDate parses a date flag only when it was set.
func flagDate(fs *pflag.FlagSet, name, value string) (*time.Time, error) {
	if !fs.Changed(name) {
		return nil, nil
	}
	parsed, err := service.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// changedString returns the flag value only when it was set.
func changedString(fs *pflag.FlagSet, name, value string) *string {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}

func changedUint(fs *pflag.FlagSet, name string, value uint) *uint {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}

func changedFloat(fs *pflag.FlagSet, name string, value float64) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}

func requireID(id uint, what string) error {
	if id == 0 {
		return apperr.Validation("%s id is required, use --id", what)
	}
	return nil
}

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
