package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/kvmesh/internal/cli/output"
	"github.com/yndnr/kvmesh/pkg/resp"
)

// Executor sends one command to the server.
type Executor func(ctx context.Context, args ...string) (resp.Reply, error)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	exec      Executor
	formatter output.Formatter
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithPrompt sets the prompt, typically the server address.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithFormatter sets how replies are printed.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) {
		r.formatter = f
	}
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// New creates a new REPL instance.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    "kvmesh> ",
		exec:      exec,
		formatter: &output.TextFormatter{},
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until EOF, exit or quit, or ctx cancellation between
// lines. A line ending in a tab lists completions instead of executing.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: history not loaded: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "warning: history not saved: %v\n", err)
		}
	}()

	reader := bufio.NewReader(r.input)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			if err == io.EOF {
				fmt.Fprintln(r.output)
				return nil
			}
			return err
		}
		atEOF := err == io.EOF

		raw := strings.TrimRight(line, "\r\n")
		if strings.HasSuffix(raw, "\t") {
			r.printCompletions(strings.TrimRight(raw, "\t"))
			if atEOF {
				return nil
			}
			continue
		}

		line = strings.TrimSpace(raw)
		if line != "" {
			r.history.Add(line)
			if line == "exit" || line == "quit" {
				return nil
			}
			r.execute(ctx, line)
		}

		if atEOF {
			return nil
		}
	}
}

func (r *REPL) execute(ctx context.Context, line string) {
	args, err := SplitArgs(line)
	if err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
		return
	}
	if len(args) == 0 {
		return
	}
	if args[0] == "help" {
		r.printHelp()
		return
	}

	reply, err := r.exec(ctx, args...)
	if err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return
	}
	if err := r.formatter.Format(r.output, reply); err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
	}
}

func (r *REPL) printCompletions(partial string) {
	candidates := r.completer.Complete(partial)
	if len(candidates) == 0 {
		fmt.Fprintln(r.output, "(no completions)")
		return
	}
	fmt.Fprintln(r.output, strings.Join(candidates, "  "))
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.output, `echo <message>              return message
ping                        return PONG
set <key> <value> [px <ms>] store value, optionally expiring after ms
get <key>                   return value or (nil)
help                        show this help
exit, quit                  leave
End a line with TAB to list completions.
`)
}
