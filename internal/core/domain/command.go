package domain

import (
	"math"
	"strconv"
	"time"
)

// Command names as they appear on the wire. Matching is case-sensitive.
const (
	NameEcho = "echo"
	NamePing = "ping"
	NameSet  = "set"
	NameGet  = "get"
)

// optionPX introduces a millisecond expiry in a set command.
const optionPX = "px"

// maxTTLMillis keeps now+TTL from overflowing time.Duration.
const maxTTLMillis = math.MaxInt64 / int64(time.Millisecond)

// Command is a parsed client request.
//
// The set of implementations is closed: Echo, Ping, Set, Get and Unknown.
type Command interface {
	// Name returns the command name as received.
	Name() string

	command()
}

// Echo replies with its message.
type Echo struct {
	Message string
}

// Ping replies PONG.
type Ping struct{}

// Set stores Value under Key. A zero TTL means the entry never expires.
type Set struct {
	Key   string
	Value string
	TTL   time.Duration
}

// Get looks up Key.
type Get struct {
	Key string
}

// Unknown is any request whose name is not recognized.
type Unknown struct {
	Command string
}

func (Echo) Name() string      { return NameEcho }
func (Ping) Name() string      { return NamePing }
func (Set) Name() string       { return NameSet }
func (Get) Name() string       { return NameGet }
func (u Unknown) Name() string { return u.Command }

func (Echo) command()    {}
func (Ping) command()    {}
func (Set) command()     {}
func (Get) command()     {}
func (Unknown) command() {}

// HasExpiry reports whether the set carries a px option.
func (s Set) HasExpiry() bool {
	return s.TTL > 0
}

// ParseCommand converts decoded request arguments into a Command.
//
// args[0] is the command name. An unrecognized name yields Unknown with a nil
// error; argument errors for known commands yield a *DomainError. Surplus
// arguments are ignored.
func ParseCommand(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, ErrProtocolFrame.WithDetails("empty command")
	}

	name, rest := args[0], args[1:]
	switch name {
	case NameEcho:
		if len(rest) < 1 {
			return nil, wrongArgs(name)
		}
		return Echo{Message: rest[0]}, nil

	case NamePing:
		return Ping{}, nil

	case NameSet:
		return parseSet(rest)

	case NameGet:
		if len(rest) < 1 {
			return nil, wrongArgs(name)
		}
		return Get{Key: rest[0]}, nil

	default:
		return Unknown{Command: name}, nil
	}
}

// parseSet handles: key value [px milliseconds].
func parseSet(rest []string) (Command, error) {
	if len(rest) < 2 {
		return nil, wrongArgs(NameSet)
	}

	cmd := Set{Key: rest[0], Value: rest[1]}
	if len(rest) < 3 || rest[2] != optionPX {
		return cmd, nil
	}

	if len(rest) < 4 {
		return nil, ErrNotInteger
	}
	ms, err := strconv.ParseInt(rest[3], 10, 64)
	if err != nil {
		return nil, ErrNotInteger.WithCause(err)
	}
	if ms <= 0 || ms > maxTTLMillis {
		return nil, ErrInvalidExpire
	}

	cmd.TTL = time.Duration(ms) * time.Millisecond
	return cmd, nil
}

func wrongArgs(name string) *DomainError {
	return ErrWrongArgs.WithMessage("wrong number of arguments for '%s' command", name)
}

// UnknownCommandError returns the error reported for an unrecognized name.
func UnknownCommandError(name string) *DomainError {
	return ErrUnknownCommand.WithMessage("unknown command '%s'", name)
}
