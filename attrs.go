package tmx

import (
	"encoding/xml"
	"strconv"
)

// attrSpec ties an attribute name to a func that converts & stores its value.
type attrSpec struct {
	name string

	// assign stores the converted value and reports whether there was one
	assign func(raw string) bool
}

// attr returns a spec writing into dst via conv. Whatever dst holds when the
// spec is made is its default, restored if a later occurrence of the attribute
// fails to convert.
func attr[T any](name string, dst *T, conv func(string) (T, bool)) attrSpec {
	def := *dst
	return attrSpec{
		name: name,
		assign: func(raw string) bool {
			v, ok := conv(raw)
			if ok {
				*dst = v
			} else {
				*dst = def
			}
			return ok
		},
	}
}

// getAttrs walks attrs once, passing each value to the spec(s) of the same
// name, so with duplicate names the last one wins. Fails with
// ErrMalformedAttributes (described by desc) if any required spec ends up
// without a value.
func getAttrs(attrs []xml.Attr, optional, required []attrSpec, desc string) error {
	found := make([]bool, len(required))

	for _, a := range attrs {
		for _, s := range optional {
			if s.name == a.Name.Local {
				s.assign(a.Value)
			}
		}
		for i, s := range required {
			if s.name == a.Name.Local {
				found[i] = s.assign(a.Value)
			}
		}
	}

	for _, ok := range found {
		if !ok {
			return newError(ErrMalformedAttributes, nil, "%s", desc)
		}
	}
	return nil
}

func asString(s string) (string, bool) {
	return s, true
}

// present keeps the raw value, telling "absent" (nil) apart from "empty".
func present(s string) (*string, bool) {
	return &s, true
}

func asInt(s string) (int, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return int(v), err == nil
}

func asUint32(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err == nil
}

func asFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// asBool accepts both the 0/1 flags TMX uses on tags & the true/false of
// bool properties.
func asBool(s string) (bool, bool) {
	switch s {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}
