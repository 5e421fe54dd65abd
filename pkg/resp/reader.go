package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Protocol limits to prevent DoS attacks.
const (
	// MaxArrayLen limits the number of elements in a request array.
	MaxArrayLen = 1024

	// MaxBulkLen limits the size of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// maxHeaderLen bounds "*<n>\r\n" and "$<n>\r\n" lines.
	maxHeaderLen = 64
)

var (
	// ErrProtocol reports malformed framing: bad type marker, bad length,
	// missing terminator or a frame cut short.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded reports a frame larger than the protocol limits.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

var crlf = []byte("\r\n")

// ReadCommand reads one request frame from r.
//
// It returns io.EOF, unwrapped, only when r is exhausted exactly on a frame
// boundary. A reader that ends inside a frame yields ErrProtocol, as does
// every other framing violation, including a zero-length array.
func ReadCommand(r *bufio.Reader) ([]string, error) {
	b, err := r.Peek(1)
	if err != nil {
		return nil, err
	}
	if b[0] != '*' {
		return nil, fmt.Errorf("%w: expected '*', got %q", ErrProtocol, b[0])
	}

	line, err := readLine(r, maxHeaderLen)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: invalid multibulk length", ErrProtocol)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrProtocol)
	}
	if n > MaxArrayLen {
		return nil, fmt.Errorf("%w: array length %d exceeds limit %d", ErrLimitExceeded, n, MaxArrayLen)
	}

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		arg, err := readBulkString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

// Decode decodes the first request frame in buf.
func Decode(buf []byte) ([]string, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrProtocol)
	}
	return ReadCommand(bufio.NewReader(bytes.NewReader(buf)))
}

// ReadReply reads one reply frame from r.
func ReadReply(r *bufio.Reader) (Reply, error) {
	if _, err := r.Peek(1); err != nil {
		return nil, err
	}

	line, err := readLine(r, MaxBulkLen)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, fmt.Errorf("%w: empty reply line", ErrProtocol)
	}

	switch line[0] {
	case '+':
		return SimpleString(line[1:]), nil
	case '-':
		return Error(line[1:]), nil
	case '$':
		n, err := strconv.Atoi(line[1:])
		if err != nil || n < -1 {
			return nil, fmt.Errorf("%w: invalid bulk length", ErrProtocol)
		}
		if n == -1 {
			return NullBulk(), nil
		}
		payload, err := readPayload(r, n)
		if err != nil {
			return nil, err
		}
		return Bulk(payload), nil
	default:
		return nil, fmt.Errorf("%w: unexpected reply type %q", ErrProtocol, line[0])
	}
}

func readBulkString(r *bufio.Reader) (string, error) {
	line, err := readLine(r, maxHeaderLen)
	if err != nil {
		return "", err
	}
	if line == "" || line[0] != '$' {
		return "", fmt.Errorf("%w: expected '$'", ErrProtocol)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil || n < 0 {
		return "", fmt.Errorf("%w: invalid bulk length", ErrProtocol)
	}
	return readPayload(r, n)
}

// readPayload reads n bytes followed by CRLF.
func readPayload(r *bufio.Reader, n int) (string, error) {
	if n > MaxBulkLen {
		return "", fmt.Errorf("%w: bulk length %d exceeds limit %d", ErrLimitExceeded, n, MaxBulkLen)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", truncated(err)
	}
	if !bytes.HasSuffix(buf, crlf) {
		return "", fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
	}
	return string(buf[:n]), nil
}

// readLine reads a CRLF-terminated line and returns it without the CRLF.
func readLine(r *bufio.Reader, maxLen int) (string, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		buf = append(buf, frag...)
		if len(buf) > maxLen {
			return "", fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, maxLen)
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return "", truncated(err)
	}

	if !bytes.HasSuffix(buf, crlf) {
		return "", fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	return string(buf[:len(buf)-2]), nil
}

// truncated maps an end-of-input inside a frame to ErrProtocol.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: unexpected end of frame", ErrProtocol)
	}
	return err
}
