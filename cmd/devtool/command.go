package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
)

const (
	envAPIURL     = "API_URL"
	envAPIKey     = "API_KEY"
	defaultAPIURL = "http://localhost:8080"
)

var errUnknownCommand = errors.New("unknown command")

// Command is one devtool subcommand. Run returns when ctx is cancelled.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// Registry holds the subcommands in the order they were registered
type Registry struct {
	order  []Command
	byName map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{byName: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.Register(cmd)
	}
	return r
}

// Register adds cmd, replacing any command of the same name
func (r *Registry) Register(cmd Command) {
	if _, exists := r.byName[cmd.Name()]; !exists {
		r.order = append(r.order, cmd)
	} else {
		for i, existing := range r.order {
			if existing.Name() == cmd.Name() {
				r.order[i] = cmd
			}
		}
	}
	r.byName[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Execute runs the command named by args[0] with the remaining args
func (r *Registry) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: none given", errUnknownCommand)
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
	return cmd.Run(ctx, args[1:])
}

// WriteHelp prints usage with one aligned line per command
func (r *Registry) WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w, "\nAvailable Commands:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.order {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}
