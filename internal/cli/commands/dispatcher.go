package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"IEats/internal/config"
)

// Exit codes returned by Dispatch.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Dispatch runs the command named by args[0] and returns a process exit code.
// Help, usage and errors are written to Out.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	switch name {
	case "-h", "--help":
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	case "help": // ieats help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
		return printUsage(args[1])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return ExitUsage
	}

	// "ieats entry-add --help" печатает usage команды
	for _, a := range args[1:] {
		if a == "-h" || a == "--help" {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return ExitOK
		}
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return ExitError
	}
}

func printUsage(name string) int {
	c, ok := Get(strings.ToLower(name))
	if !ok {
		unknown(name)
		return ExitUsage
	}
	fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
	return ExitOK
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n", name)
	if s := suggest(name); len(s) > 0 {
		fmt.Fprintf(Out, "Did you mean: %s?\n", strings.Join(s, ", "))
	}
	fmt.Fprintln(Out)
	fmt.Fprint(Out, FormatGlobalUsage())
}

// suggest returns commands sharing the first word with name, e.g. "entry" -> entry-add, entry-delete.
func suggest(name string) []string {
	head, _, _ := strings.Cut(name, "-")
	if head == "" {
		return nil
	}
	var out []string
	for _, c := range List() {
		if strings.HasPrefix(c.Name(), head) {
			out = append(out, c.Name())
		}
	}
	return out
}
