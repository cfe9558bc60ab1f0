// Package prompt asks the user for values the command line did not provide.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl-C or EOF.
var ErrAborted = errors.New("prompt aborted")

// Prompter reads answers from the user.
type Prompter interface {
	// Line asks for a value. An empty answer returns def.
	Line(label, def string) (string, error)
	// Password asks for a value without echoing it.
	Password(label string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(label string, def bool) (bool, error)
	Close() error
}

// New returns a line-editing prompter when in is a terminal and a plain
// reader otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if in != nil && term.IsTerminal(int(in.Fd())) {
		return NewLinerPrompter()
	}
	return NewReaderPrompter(in, out)
}

func decorate(label, def string) string {
	label = strings.TrimSpace(label)
	if def != "" {
		return fmt.Sprintf("%s [%s]: ", label, def)
	}
	return label + ": "
}

func parseYesNo(answer string, def bool) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, true
	case "y", "yes", "o", "oui":
		return true, true
	case "n", "no", "non":
		return false, true
	default:
		return false, false
	}
}

func yesNoHint(def bool) string {
	if def {
		return "Y/n"
	}
	return "y/N"
}

// LinerPrompter prompts on an interactive terminal with line editing.
type LinerPrompter struct {
	line *liner.State
}

// NewLinerPrompter takes over the terminal until Close is called.
func NewLinerPrompter() *LinerPrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{line: line}
}

func (p *LinerPrompter) Line(label, def string) (string, error) {
	answer, err := p.line.Prompt(decorate(label, def))
	if err != nil {
		return "", linerError(err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	p.line.AppendHistory(answer)
	return answer, nil
}

func (p *LinerPrompter) Password(label string) (string, error) {
	answer, err := p.line.PasswordPrompt(decorate(label, ""))
	if err != nil {
		return "", linerError(err)
	}
	return answer, nil
}

func (p *LinerPrompter) Confirm(label string, def bool) (bool, error) {
	for {
		answer, err := p.line.Prompt(fmt.Sprintf("%s (%s): ", strings.TrimSpace(label), yesNoHint(def)))
		if err != nil {
			return false, linerError(err)
		}
		if value, ok := parseYesNo(answer, def); ok {
			return value, nil
		}
	}
}

func (p *LinerPrompter) Close() error {
	return p.line.Close()
}

func linerError(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}

// ReaderPrompter reads answers line by line, used when stdin is a pipe.
type ReaderPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReaderPrompter creates a prompter reading from in and writing labels to out.
func NewReaderPrompter(in io.Reader, out io.Writer) *ReaderPrompter {
	if out == nil {
		out = io.Discard
	}
	return &ReaderPrompter{in: bufio.NewReader(in), out: out}
}

func (p *ReaderPrompter) readLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *ReaderPrompter) Line(label, def string) (string, error) {
	answer, err := p.readLine(decorate(label, def))
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (p *ReaderPrompter) Password(label string) (string, error) {
	return p.readLine(decorate(label, ""))
}

func (p *ReaderPrompter) Confirm(label string, def bool) (bool, error) {
	for {
		answer, err := p.readLine(fmt.Sprintf("%s (%s): ", strings.TrimSpace(label), yesNoHint(def)))
		if err != nil {
			return false, err
		}
		if value, ok := parseYesNo(answer, def); ok {
			return value, nil
		}
	}
}

func (p *ReaderPrompter) Close() error {
	return nil
}

var (
	_ Prompter = (*LinerPrompter)(nil)
	_ Prompter = (*ReaderPrompter)(nil)
)
