package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	cliconfig "github.com/yndnr/kvmesh/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective CLI configuration",
				Action: configShow,
			},
			{
				Name:  "init",
				Usage: "Write the effective configuration to the config file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
		},
	}
}

// effective converts the resolved settings back into file form.
func effective(c *cli.Context) *cliconfig.CLIConfig {
	s := GetSettings(c)
	return &cliconfig.CLIConfig{
		DefaultServer: s.Server,
		DefaultOutput: string(s.Output),
		Timeout:       s.Timeout,
		HistoryFile:   s.HistoryFile,
	}
}

func configShow(c *cli.Context) error {
	s := GetSettings(c)
	fmt.Fprintf(c.App.Writer, "# %s\n", s.Config)

	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(effective(c)); err != nil {
		return err
	}
	return enc.Close()
}

func configInit(c *cli.Context) error {
	path := GetSettings(c).Config

	if !c.Bool("force") {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := cliconfig.Save(effective(c), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
	return nil
}
