package reduce

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type version struct{ major, minor int }

// Equal ignores the minor version.
func (v version) Equal(o version) bool { return v.major == o.major }

type pversion struct{ major int }

func (v *pversion) Equal(o *pversion) bool { return v.major == o.major }

type celsius float64

func TestEqual(t *testing.T) {
	utc := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("UTC+2", 2*60*60))

	tests := map[string]struct {
		a, b any
		want bool
	}{
		"both nil":               {nil, nil, true},
		"nil and value":          {nil, 0, false},
		"value and nil":          {"", nil, false},
		"same ints":              {13, 13, true},
		"different ints":         {13, 14, false},
		"different types":        {int32(1), int64(1), false},
		"equal strings":          {"Test", "Test", true},
		"distinct equal slices":  {[]int{1, 2}, []int{1, 2}, true},
		"different slices":       {[]int{1, 2}, []int{2, 1}, false},
		"nil and empty slice":    {[]int(nil), []int{}, false},
		"equal maps":             {map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		"equal structs":          {testBefore(), testBefore(), true},
		"different structs":      {testBefore(), testAfter(), false},
		"distinct equal pointer": {&testState{Name: "a"}, &testState{Name: "a"}, true},
		"same instant":           {utc, local, true},
		"different instant":      {utc, utc.Add(time.Second), false},
		"equal method":           {version{1, 2}, version{1, 3}, true},
		"equal method differs":   {version{1, 2}, version{2, 2}, false},
		"pointer equal method":   {&pversion{1}, &pversion{1}, true},
		"nil pointer receiver":   {(*pversion)(nil), &pversion{1}, false},
		"both nil pointers":      {(*pversion)(nil), (*pversion)(nil), true},
		"NaN":                    {math.NaN(), math.NaN(), true},
		"NaN and number":         {math.NaN(), 1.0, false},
		"float32 NaN":            {float32(math.NaN()), float32(math.NaN()), true},
		"named float NaN":        {celsius(math.NaN()), celsius(math.NaN()), true},
		"complex NaN":            {complex(math.NaN(), 0), complex(0, math.NaN()), true},
		"equal complex":          {complex(1, 2), complex(1, 2), true},
		"different complex":      {complex(1, 2), complex(2, 1), false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}
