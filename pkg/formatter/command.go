// Package formatter drives an external line-range-aware code formatter
// (clang-format by default) over the staged ranges of a file.
package formatter

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// DefaultCommand is the formatter used when none is configured.
const DefaultCommand = "clang-format"

// Formatter flags.
const (
	flagInPlace = "-i"
	flagDryRun  = "--dry-run"
	flagLines   = "--lines="
	flagStyle   = "--style="
)

// Command is a formatter executable and the arguments placed before the
// per-file arguments.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a shell-style command string such as
// "clang-format-17 --fallback-style=none" into a Command.
func ParseCommand(s string) (Command, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return Command{}, fmt.Errorf("parse formatter command %q: %w", s, err)
	}
	if len(words) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Name: words[0], Args: words[1:]}, nil
}

// WithStyle returns a copy of c that passes --style=style. An empty style
// leaves c unchanged.
func (c Command) WithStyle(style string) Command {
	if style == "" {
		return c
	}
	args := make([]string, 0, len(c.Args)+1)
	args = append(args, c.Args...)
	args = append(args, flagStyle+style)
	return Command{Name: c.Name, Args: args}
}

// String renders the command line.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
