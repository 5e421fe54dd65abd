package command

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/kvmesh/internal/cli/config"
	"github.com/yndnr/kvmesh/internal/cli/connection"
	"github.com/yndnr/kvmesh/internal/cli/output"
	"github.com/yndnr/kvmesh/internal/infra/buildinfo"
	"github.com/yndnr/kvmesh/pkg/resp"
)

// ErrReply is returned when the server answered with an error reply. The
// reply itself has already been printed.
var ErrReply = errors.New("server returned an error reply")

const (
	metaClient   = "client"
	metaSettings = "settings"
)

// App creates the CLI application. Without a subcommand it starts the REPL.
func App() *cli.App {
	return &cli.App{
		Name:    "kvmesh-cli",
		Usage:   "kvmesh command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			SetCommand(),
			GetCommand(),
			ReplCommand(),
			ConfigCommand(),
		},
		Action: replAction,
		Before: func(c *cli.Context) error {
			settings, err := ParseGlobalFlags(c)
			if err != nil {
				return err
			}
			c.App.Metadata[metaSettings] = settings
			c.App.Metadata[metaClient] = connection.NewClient(settings.Server, settings.Timeout)
			return nil
		},
		After: func(c *cli.Context) error {
			if client := GetClient(c); client != nil {
				return client.Close()
			}
			return nil
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "kvmesh server address (host:port)",
			EnvVars: []string{"KVMESH_SERVER"},
			Value:   cliconfig.Default().DefaultServer,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json, yaml",
			Value:   cliconfig.Default().DefaultOutput,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Dial and request timeout",
			Value: cliconfig.Default().Timeout,
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI configuration file",
			EnvVars: []string{"KVMESH_CLI_CONFIG"},
			Value:   cliconfig.DefaultConfigPath(),
		},
	}
}

// GlobalFlags holds the effective global settings.
type GlobalFlags struct {
	Server      string
	Output      output.Format
	Timeout     time.Duration
	HistoryFile string
	Config      string
}

// ParseGlobalFlags merges the CLI configuration file with the global flags.
// Flags and environment variables win over the file.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	path := c.String("config")
	cfg, err := cliconfig.Load(path)
	if err != nil {
		return nil, err
	}

	flags := &GlobalFlags{
		Server:      cfg.DefaultServer,
		Timeout:     cfg.Timeout,
		HistoryFile: cfg.HistoryFile,
		Config:      path,
	}
	format := cfg.DefaultOutput

	if c.IsSet("server") {
		flags.Server = c.String("server")
	}
	if c.IsSet("output") {
		format = c.String("output")
	}
	if c.IsSet("timeout") {
		flags.Timeout = c.Duration("timeout")
	}

	if flags.Output, err = output.ParseFormat(format); err != nil {
		return nil, err
	}
	if flags.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0, got %s", flags.Timeout)
	}
	return flags, nil
}

// GetSettings retrieves the settings resolved by the Before hook.
func GetSettings(c *cli.Context) *GlobalFlags {
	if s, ok := c.App.Metadata[metaSettings].(*GlobalFlags); ok {
		return s
	}
	return &GlobalFlags{Output: output.FormatText}
}

// GetClient retrieves the server client from context.
func GetClient(c *cli.Context) *connection.Client {
	if client, ok := c.App.Metadata[metaClient].(*connection.Client); ok {
		return client
	}
	return nil
}

// send issues one command and prints the reply.
func send(c *cli.Context, args ...string) error {
	client := GetClient(c)
	if client == nil {
		return errors.New("not connected")
	}

	reply, err := client.Do(c.Context, args...)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(GetSettings(c).Output)
	if err := formatter.Format(c.App.Writer, reply); err != nil {
		return err
	}

	if _, ok := reply.(resp.Error); ok {
		return ErrReply
	}
	return nil
}

// usageError reports wrong positional arguments for the current command.
func usageError(c *cli.Context) error {
	return fmt.Errorf("usage: %s %s", c.Command.Name, c.Command.ArgsUsage)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
