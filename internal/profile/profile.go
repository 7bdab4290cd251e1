// Package profile is a small composite state used by the transmute command.
package profile

import (
	"errors"
	"strings"

	"github.com/bjaus/reduce"
)

// Profile is the state reduced by the transmute command.
type Profile struct {
	Name   string `json:"name" yaml:"name"`
	Age    int    `json:"age" yaml:"age"`
	Active bool   `json:"active" yaml:"active"`
}

// Rename sets the profile's name.
type Rename struct {
	Name string `json:"name" yaml:"name"`
}

// Validate implements validation for decoded Rename actions.
func (a Rename) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// Birthday increments the profile's age.
type Birthday struct{}

// Activate marks the profile active.
type Activate struct{}

// Deactivate marks the profile inactive.
type Deactivate struct{}

// Reset replaces the whole profile with its zero value.
type Reset struct{}

// names reduces the Name field.
type names struct{}

func (names) OnRename(_ string, a Rename) string { return strings.TrimSpace(a.Name) }

// NewReducer returns the reducer for Profile. Each field has its own
// registry; Reset acts on the whole profile.
func NewReducer(opts ...reduce.Option) (*reduce.Structural[Profile], error) {
	s, err := reduce.NewStructural(reduce.StructShape[Profile](), opts...)
	if err != nil {
		return nil, err
	}

	ages := reduce.New[int]()
	reduce.On(ages, func(age int, _ Birthday) int { return age + 1 })

	active := reduce.New[bool]()
	reduce.On(active, func(bool, Activate) bool { return true })
	reduce.On(active, func(bool, Deactivate) bool { return false })

	if err := reduce.SetFieldReducer(s, "Name", reduce.New[string]().Scan(names{})); err != nil {
		return nil, err
	}
	if err := reduce.SetFieldReducer(s, "Age", ages); err != nil {
		return nil, err
	}
	if err := reduce.SetFieldReducer(s, "Active", active); err != nil {
		return nil, err
	}

	reduce.On(s, func(Profile, Reset) Profile { return Profile{} })

	return s, nil
}

// NewDecoder returns a decoder for the profile actions.
//
// Envelopes look like {"type": "rename", "payload": {"name": "ada"}}.
func NewDecoder() *reduce.Decoder {
	d := reduce.NewDecoder()
	reduce.RegisterAction[Rename](d, "rename")
	reduce.RegisterAction[Birthday](d, "birthday")
	reduce.RegisterAction[Activate](d, "activate")
	reduce.RegisterAction[Deactivate](d, "deactivate")
	reduce.RegisterAction[Reset](d, "reset")
	return d
}
