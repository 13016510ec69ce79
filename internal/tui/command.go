package tui

import (
	"errors"
	"fmt"
	"strings"
)

// Command represents a parsed command. Name is always the canonical name,
// never an alias.
type Command struct {
	Name string
	Args string
}

type commandSpec struct {
	name    string
	aliases []string
	arg     string
	needArg bool
	summary string
}

var commands = []commandSpec{
	{name: "new", aliases: []string{"n"}, arg: "[query]", summary: "New message, searching for query"},
	{name: "search", aliases: []string{"s"}, arg: "<text>", needArg: true, summary: "Search the directory"},
	{name: "filter", aliases: []string{"f"}, arg: "[text]", summary: "Filter conversations, empty clears"},
	{name: "group", aliases: []string{"g"}, summary: "New group"},
	{name: "add", aliases: []string{"a"}, arg: "<group>", needArg: true, summary: "Add members to a group"},
	{name: "home", summary: "Back to conversations"},
	{name: "help", aliases: []string{"h"}, summary: "Show help"},
	{name: "quit", aliases: []string{"q"}, summary: "Quit"},
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArg     = errors.New("missing argument")
)

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) (Command, error) {
	name, args, _ := strings.Cut(strings.TrimSpace(input), " ")
	name = strings.ToLower(name)
	args = strings.TrimSpace(args)

	spec, ok := lookupCommand(name)
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if spec.needArg && args == "" {
		return Command{}, fmt.Errorf("%w: usage :%s %s", ErrMissingArg, spec.name, spec.arg)
	}
	return Command{Name: spec.name, Args: args}, nil
}

func lookupCommand(name string) (commandSpec, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, a := range c.aliases {
			if a == name {
				return c, true
			}
		}
	}
	return commandSpec{}, false
}

// CommandHelp lists the commands as usage and summary pairs for the help
// screen.
func CommandHelp() [][2]string {
	out := make([][2]string, 0, len(commands))
	for _, c := range commands {
		usage := ":" + c.name
		if c.arg != "" {
			usage += " " + c.arg
		}
		for _, a := range c.aliases {
			usage += ", :" + a
		}
		out = append(out, [2]string{usage, c.summary})
	}
	return out
}

// groupJID accepts a group as typed on the command line. Bare ids get the
// group server appended.
func groupJID(arg string) string {
	if strings.Contains(arg, "@") {
		return arg
	}
	return arg + "@g.us"
}
