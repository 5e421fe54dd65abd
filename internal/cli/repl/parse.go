package repl

import (
	"errors"
	"strings"
)

// ErrUnbalancedQuotes is returned for a line with an open quote.
var ErrUnbalancedQuotes = errors.New("unbalanced quotes")

// SplitArgs splits a line into arguments. Double quotes support \n, \r, \t,
// \" and \\ escapes; single quotes are literal. The command name is
// lowercased.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   byte
		escaped bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case escaped:
			cur.WriteByte(unescape(ch))
			escaped = false
		case quote == '"' && ch == '\\':
			escaped = true
		case quote != 0 && ch == quote:
			quote = 0
		case quote != 0:
			cur.WriteByte(ch)
		case ch == '"' || ch == '\'':
			quote = ch
			inArg = true
		case ch == ' ' || ch == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteByte(ch)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnbalancedQuotes
	}
	if inArg {
		args = append(args, cur.String())
	}
	if len(args) > 0 {
		args[0] = strings.ToLower(args[0])
	}
	return args, nil
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return ch
	}
}
