package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yndnr/kvmesh/pkg/resp"
)

// TextFormatter renders replies the way redis-cli does:
//
//	OK
//	"value"
//	(nil)
//	(error) ERR unknown command 'foo'
//
// Other values are printed with %v.
type TextFormatter struct{}

// Format writes data followed by a newline.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	r, ok := data.(resp.Reply)
	if !ok {
		_, err := fmt.Fprintln(w, data)
		return err
	}

	_, err := io.WriteString(w, Text(r)+"\n")
	return err
}

// Text returns the single-line rendering of r.
func Text(r resp.Reply) string {
	switch v := r.(type) {
	case resp.SimpleString:
		return string(v)
	case resp.Error:
		return "(error) " + string(v)
	case resp.BulkString:
		if v.Null {
			return "(nil)"
		}
		return strconv.Quote(v.Value)
	default:
		return "(nil)"
	}
}
