package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "crm",
		Subcommands: []*Command{
			{
				Name: "client",
				Subcommands: []*Command{
					{
						Name: "list-clients",
						Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
							called = "client list-clients"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"client", "list-clients", "extra"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "client list-clients" {
		t.Errorf("dispatched to %q", called)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra" {
		t.Errorf("args = %v, want [extra]", receivedArgs)
	}
}

func TestCommand_Execute_FlagsAndChanged(t *testing.T) {
	var id uint
	var changed bool

	cmd := &Command{
		Name: "get-client",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("get-client")
			fs.UintVarP(&id, "id", "i", 0, "client id")
			fs.String("email", "", "email")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error {
			changed = fs.Changed("email")
			return nil
		},
	}

	if err := cmd.Execute(context.Background(), []string{"-i", "7"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if id != 7 || changed {
		t.Errorf("id = %d, email changed = %v", id, changed)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	cmd := &Command{
		Name: "list-events",
		Flags: func() *pflag.FlagSet {
			fs := newFlagSet("list-events")
			fs.Bool("unassigned", false, "")
			return fs
		},
		Run: func(ctx context.Context, fs *pflag.FlagSet, args []string) error { return nil },
	}

	err := cmd.Execute(context.Background(), []string{"--unasigned"})
	if err == nil || !strings.Contains(err.Error(), "did you mean --unassigned?") {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var buf bytes.Buffer
	root := &Command{
		Name:   "crm",
		Output: &buf,
		Subcommands: []*Command{
			{Name: "client", Summary: "Manage clients"},
		},
	}
	if err := root.Execute(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	for _, want := range []string{"Usage:", "client", "Manage clients"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("help output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"list-client", "list-clients", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
