package reql

import "encoding/json"

// ReadMode selects how a query observes replica state - the sole
// currently-defined GlobalOptions field per spec.md §6.
type ReadMode string

const (
	ReadModeUnset     ReadMode = ""
	ReadModeSingle    ReadMode = "single"
	ReadModeMajority  ReadMode = "majority"
	ReadModeOutdated  ReadMode = "outdated"
)

// GlobalOptions is the per-request options object: the third element of
// the [QUERY_TYPE, query_ast, global_options] request body. No environment
// variables or files feed this - it is assembled by the caller and handed
// to cursor.Run/cursor.RunOne.
type GlobalOptions struct {
	ReadMode ReadMode
}

// MarshalJSON omits read_mode entirely when unset, the same
// omit-unset-slots rule every Term option follows.
func (o GlobalOptions) MarshalJSON() ([]byte, error) {
	if o.ReadMode == ReadModeUnset {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any{"read_mode": string(o.ReadMode)})
}
