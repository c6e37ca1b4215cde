package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// FlagValue holds either a string value or a bare boolean flag.
type FlagValue struct {
	Value  string
	IsBool bool
}

// StringFlag returns a valued flag.
func StringFlag(v string) FlagValue {
	return FlagValue{Value: v}
}

// BoolFlag returns a bare flag, which reads as true.
func BoolFlag() FlagValue {
	return FlagValue{IsBool: true}
}

// String renders the value the way it was typed; bare flags render as "true".
func (f FlagValue) String() string {
	if f.IsBool {
		return "true"
	}
	return f.Value
}

// Flags maps flag names to values.
type Flags map[string]FlagValue

// Has reports whether the flag was given in any form.
func (f Flags) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the string value of a valued flag. Bare flags and missing
// flags report false.
func (f Flags) String(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v.IsBool {
		return "", false
	}
	return v.Value, true
}

// Bool reports whether a flag is set to a truthy value.
func (f Flags) Bool(key string) bool {
	v, ok := f[key]
	if !ok {
		return false
	}
	if v.IsBool {
		return true
	}
	b, err := strconv.ParseBool(v.Value)
	return err == nil && b
}

// Int parses the leading integer of a valued flag. Missing, bare and
// non-numeric flags yield def. An explicit zero is returned as zero.
func (f Flags) Int(key string, def int) int {
	s, ok := f.String(key)
	if !ok {
		return def
	}
	n, ok := leadingInt(s)
	if !ok {
		return def
	}
	return n
}

// Map returns the flags as plain values, for structured output.
func (f Flags) Map() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		if v.IsBool {
			out[k] = true
			continue
		}
		out[k] = v.Value
	}
	return out
}

// leadingInt parses an optional sign followed by digits, ignoring any
// trailing text ("12abc" is 12). Values past the int range saturate.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}
