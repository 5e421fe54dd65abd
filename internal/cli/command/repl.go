package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvmesh/internal/cli/output"
	"github.com/yndnr/kvmesh/internal/cli/repl"
)

// ReplCommand returns the interactive mode command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not read or write the history file",
			},
		},
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	client := GetClient(c)
	if client == nil {
		return errors.New("not connected")
	}
	settings := GetSettings(c)

	history := repl.NewHistory("")
	if !c.Bool("no-history") {
		path := settings.HistoryFile
		if path == "" {
			path = repl.DefaultHistoryFile()
		}
		history = repl.NewHistory(path)
	}

	r := repl.New(client.Do,
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithPrompt(client.Addr()+"> "),
		repl.WithFormatter(output.NewFormatter(settings.Output)),
		repl.WithHistory(history),
	)
	return r.Run(c.Context)
}
