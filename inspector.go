package reduce

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when an action envelope is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// Inspector examines a raw action envelope and returns a View for field
// queries, letting a Decoder look at an envelope before unmarshaling it.
type Inspector interface {
	Inspect(raw []byte) (View, error)
}

// View provides field access to an inspected envelope.
type View interface {
	// HasField returns true if the path exists in the envelope.
	HasField(path string) bool

	// GetString returns the string value at path, or false if not found
	// or not a string.
	GetString(path string) (string, bool)

	// GetBytes returns the raw JSON value at path, or false if not found.
	GetBytes(path string) ([]byte, bool)
}

// JSONInspector returns an Inspector backed by gjson. Paths use gjson
// syntax, so nested fields are addressed as "meta.type".
func JSONInspector() Inspector {
	return jsonInspector{}
}

type jsonInspector struct{}

func (jsonInspector) Inspect(raw []byte) (View, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	return jsonView(raw), nil
}

type jsonView []byte

func (v jsonView) HasField(path string) bool {
	return gjson.GetBytes(v, path).Exists()
}

func (v jsonView) GetString(path string) (string, bool) {
	r := gjson.GetBytes(v, path)
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

func (v jsonView) GetBytes(path string) ([]byte, bool) {
	r := gjson.GetBytes(v, path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}
