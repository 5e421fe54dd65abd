package resp

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
)

// Reply is a value the server sends back for a command.
// It is implemented only by SimpleString, BulkString and Error.
type Reply interface {
	reply()
}

// SimpleString is a "+text" reply.
type SimpleString string

// Error is a "-message" reply.
type Error string

// BulkString is a length-prefixed reply, or the null bulk when Null is set.
type BulkString struct {
	Value string
	Null  bool
}

func (SimpleString) reply() {}
func (Error) reply()        {}
func (BulkString) reply()   {}

// Bulk returns a non-null bulk reply holding s.
func Bulk(s string) BulkString {
	return BulkString{Value: s}
}

// NullBulk returns the null bulk reply ("$-1").
func NullBulk() BulkString {
	return BulkString{Null: true}
}

// Encode returns the wire form of a reply. A nil reply encodes to nil.
func Encode(r Reply) []byte {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := WriteReply(w, r); err != nil {
		return nil
	}
	_ = w.Flush()
	return buf.Bytes()
}

// WriteReply writes r to w. The caller flushes.
func WriteReply(w *bufio.Writer, r Reply) error {
	switch v := r.(type) {
	case SimpleString:
		return WriteSimpleString(w, string(v))
	case Error:
		return WriteError(w, string(v))
	case BulkString:
		if v.Null {
			return WriteNullBulk(w)
		}
		return WriteBulkString(w, v.Value)
	default:
		return fmt.Errorf("resp: unsupported reply %T", r)
	}
}

// EncodeRequest returns the request frame for args.
func EncodeRequest(args ...string) []byte {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	_ = WriteRequest(w, args...)
	_ = w.Flush()
	return buf.Bytes()
}

// WriteRequest writes args as an array of bulk strings.
func WriteRequest(w *bufio.Writer, args ...string) error {
	if err := WriteArrayHeader(w, len(args)); err != nil {
		return err
	}
	for _, arg := range args {
		if err := WriteBulkString(w, arg); err != nil {
			return err
		}
	}
	return nil
}

func WriteSimpleString(w *bufio.Writer, s string) error {
	_, err := w.WriteString("+" + s + "\r\n")
	return err
}

func WriteError(w *bufio.Writer, s string) error {
	_, err := w.WriteString("-" + s + "\r\n")
	return err
}

func WriteNullBulk(w *bufio.Writer) error {
	_, err := w.WriteString("$-1\r\n")
	return err
}

func WriteBulkString(w *bufio.Writer, s string) error {
	if _, err := w.WriteString("$" + strconv.Itoa(len(s)) + "\r\n"); err != nil {
		return err
	}
	if _, err := w.WriteString(s); err != nil {
		return err
	}
	_, err := w.Write(crlf)
	return err
}

func WriteArrayHeader(w *bufio.Writer, n int) error {
	_, err := w.WriteString("*" + strconv.Itoa(n) + "\r\n")
	return err
}
