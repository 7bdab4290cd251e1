package reduce

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnknownAction is returned when an envelope matches no registered
	// action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidAction is returned when a decoded action fails validation.
	ErrInvalidAction = errors.New("invalid action")
)

// validatable is the interface for action validation.
// Compatible with github.com/go-ozzo/ozzo-validation/v4.
type validatable interface {
	Validate() error
}

// decodeFunc turns raw JSON into a typed action.
type decodeFunc func(raw []byte) (any, error)

// matcher decodes whole envelopes recognized by a discriminator.
type matcher struct {
	disc   Discriminator
	decode decodeFunc
}

// Decoder turns JSON action envelopes into typed action values, ready to be
// passed to Reduce. By default an envelope looks like:
//
//	{"type": "rename", "payload": {"name": "ada"}}
//
// The type key selects the action registered with RegisterAction and the
// payload is unmarshaled into it. Envelopes without a known type key are
// offered to the discriminators registered with RegisterActionWhen, in
// registration order.
//
// Decoder is safe for concurrent use after configuration.
type Decoder struct {
	inspector   Inspector
	typePath    string
	payloadPath string
	keyed       map[string]decodeFunc
	matchers    []matcher
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithTypePath sets the path of the type key. Defaults to "type".
func WithTypePath(path string) DecoderOption {
	return func(d *Decoder) {
		d.typePath = path
	}
}

// WithPayloadPath sets the path of the payload. Defaults to "payload".
func WithPayloadPath(path string) DecoderOption {
	return func(d *Decoder) {
		d.payloadPath = path
	}
}

// WithInspector sets the inspector used to examine envelopes. Defaults to
// JSONInspector.
func WithInspector(i Inspector) DecoderOption {
	return func(d *Decoder) {
		d.inspector = i
	}
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		inspector:   JSONInspector(),
		typePath:    "type",
		payloadPath: "payload",
		keyed:       make(map[string]decodeFunc),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterAction decodes envelopes whose type key is key into an A. A
// missing or null payload decodes to the zero A, which suits marker
// actions. When A is a pointer type it points to a zero value instead of
// being nil.
//
// Example:
//
//	reduce.RegisterAction[Rename](d, "rename")
//	reduce.RegisterAction[Birthday](d, "birthday")
func RegisterAction[A any](d *Decoder, key string) {
	d.keyed[key] = decodeAs[A]
}

// RegisterActionWhen decodes whole envelopes matched by disc into an A.
//
// Example:
//
//	reduce.RegisterActionWhen[Rename](d, reduce.And(
//	    reduce.HasFields("new_name"),
//	    reduce.Not(reduce.HasFields("type")),
//	))
func RegisterActionWhen[A any](d *Decoder, disc Discriminator) {
	d.matchers = append(d.matchers, matcher{disc: disc, decode: decodeAs[A]})
}

// Decode returns the typed action held by raw.
func (d *Decoder) Decode(raw []byte) (any, error) {
	view, err := d.inspector.Inspect(raw)
	if err != nil {
		return nil, err
	}

	key, hasKey := view.GetString(d.typePath)
	if hasKey {
		if decode, ok := d.keyed[key]; ok {
			payload, _ := view.GetBytes(d.payloadPath)
			action, err := decode(payload)
			if err != nil {
				return nil, fmt.Errorf("decode %s action: %w", key, err)
			}
			return action, nil
		}
	}

	for _, m := range d.matchers {
		if !m.disc.Match(view) {
			continue
		}
		action, err := m.decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode action: %w", err)
		}
		return action, nil
	}

	if hasKey {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, key)
	}
	return nil, ErrUnknownAction
}

// decodeAs unmarshals raw into an A and validates it.
func decodeAs[A any](raw []byte) (any, error) {
	var action A
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &action); err != nil {
			return nil, err
		}
	}
	if t := reflect.TypeFor[A](); t.Kind() == reflect.Pointer {
		if v := reflect.ValueOf(&action).Elem(); v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
	}

	if v, ok := any(action).(validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
	} else if v, ok := any(&action).(validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
	}

	return action, nil
}
