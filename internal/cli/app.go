// Package cli implements the costs command-line client. It works directly on
// a local profile database, so the session persists between invocations.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mmynk/costs/internal/account"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/internal/project"
)

// ErrUsage is returned for unknown commands and malformed arguments.
var ErrUsage = errors.New("usage error")

type command struct {
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register":    {"register", (*App).register},
	"login":       {"login", (*App).login},
	"logout":      {"logout", (*App).logout},
	"whoami":      {"whoami", (*App).whoami},
	"profile":     {"profile [-name NAME] [-email EMAIL]", (*App).profile},
	"list":        {"list [-filter all|in-progress|completed]", (*App).list},
	"show":        {"show <project-id>", (*App).show},
	"create":      {"create [-name NAME] [-desc TEXT] [-category CATEGORY] [-budget AMOUNT]", (*App).create},
	"budget":      {"budget <project-id> <amount>", (*App).budget},
	"complete":    {"complete <project-id>", (*App).complete},
	"reopen":      {"reopen <project-id>", (*App).reopen},
	"delete":      {"delete <project-id>", (*App).remove},
	"add-service": {"add-service <project-id> [-name NAME] [-cost AMOUNT] [-desc TEXT]", (*App).addService},
	"rm-service":  {"rm-service <service-id>", (*App).removeService},
	"stats":       {"stats", (*App).stats},
}

// App runs one command against the account and project stores.
type App struct {
	accounts *account.Store
	projects *project.Store
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp creates an App reading prompts from in and writing to out.
func NewApp(accounts *account.Store, projects *project.Store, in io.Reader, out io.Writer) *App {
	return &App{
		accounts: accounts,
		projects: projects,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.Usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.Usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return cmd.run(a, ctx, args[1:])
}

// Usage prints the command list.
func (a *App) Usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "Usage: costs [-config FILE] [-db FILE] <command> [arguments]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", commands[name].usage)
	}
}

// userID returns the signed-in user's id.
func (a *App) userID(ctx context.Context) (string, error) {
	user := a.accounts.CurrentUser(ctx)
	if user == nil {
		return "", fmt.Errorf("%w: run `costs login` first", models.ErrNotAuthenticated)
	}
	return user.ID, nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parseWithID parses args for commands that take a leading id followed by
// flags. The id may also come after the flags.
func parseWithID(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if id == "" && fs.NArg() > 0 {
		id = fs.Arg(0)
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s requires an id", ErrUsage, fs.Name())
	}
	return id, nil
}

// prompt returns v unless it is empty, in which case the user is asked.
func (a *App) prompt(v, label string) (string, error) {
	if v != "" {
		return v, nil
	}
	return GetSimpleText(a.reader, label, a.out)
}
