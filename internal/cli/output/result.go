package output

import "github.com/yndnr/kvmesh/pkg/resp"

// Reply type names used in structured output.
const (
	TypeSimpleString = "simple_string"
	TypeError        = "error"
	TypeBulkString   = "bulk_string"
	TypeNull         = "null"
)

// Result is the structured form of a reply. Value is nil for a null bulk.
type Result struct {
	Type  string  `json:"type" yaml:"type"`
	Value *string `json:"value" yaml:"value"`
}

// FromReply converts r to a Result.
func FromReply(r resp.Reply) Result {
	switch v := r.(type) {
	case resp.SimpleString:
		s := string(v)
		return Result{Type: TypeSimpleString, Value: &s}
	case resp.Error:
		s := string(v)
		return Result{Type: TypeError, Value: &s}
	case resp.BulkString:
		if v.Null {
			return Result{Type: TypeNull}
		}
		s := v.Value
		return Result{Type: TypeBulkString, Value: &s}
	default:
		return Result{Type: TypeNull}
	}
}

// structured converts replies so that encoders see Result values.
func structured(data any) any {
	if r, ok := data.(resp.Reply); ok {
		return FromReply(r)
	}
	return data
}
