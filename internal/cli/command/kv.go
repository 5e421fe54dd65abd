package command

import (
	"strconv"

	"github.com/urfave/cli/v2"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "Check that the server answers",
		Action: func(c *cli.Context) error {
			return send(c, "ping")
		},
	}
}

// EchoCommand returns the echo command.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Have the server return a message",
		ArgsUsage: "MESSAGE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c)
			}
			return send(c, "echo", c.Args().First())
		},
	}
}

// SetCommand returns the set command. Arguments after VALUE are passed
// through, so both "set --px 500 k v" and "set k v px 500" expire k.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "px",
				Usage: "Expire the key after this many milliseconds",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return usageError(c)
			}
			args := append([]string{"set"}, c.Args().Slice()...)
			if c.IsSet("px") {
				args = append(args[:3], "px", strconv.FormatInt(c.Int64("px"), 10))
			}
			return send(c, args...)
		},
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a value",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c)
			}
			return send(c, "get", c.Args().First())
		},
	}
}
