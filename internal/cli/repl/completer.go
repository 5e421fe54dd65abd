package repl

import (
	"strings"

	"github.com/samber/lo"
)

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer for the server commands and REPL builtins.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"echo", "ping", "set", "get",
			"help", "exit", "quit",
		},
	}
}

// Complete returns candidates for the partial line. The first word is
// matched against command names; "set" additionally offers its px option
// once key and value are present.
func (c *Completer) Complete(line string) []string {
	fields := strings.Fields(line)
	trailingSpace := strings.HasSuffix(line, " ")

	if len(fields) == 0 || (len(fields) == 1 && !trailingSpace) {
		prefix := ""
		if len(fields) == 1 {
			prefix = strings.ToLower(fields[0])
		}
		return lo.Filter(c.commands, func(cmd string, _ int) bool {
			return strings.HasPrefix(cmd, prefix)
		})
	}

	if strings.ToLower(fields[0]) != "set" {
		return nil
	}
	switch {
	case len(fields) == 3 && trailingSpace:
		return []string{"px"}
	case len(fields) == 4 && !trailingSpace && strings.HasPrefix("px", strings.ToLower(fields[3])):
		return []string{"px"}
	}
	return nil
}
