// Package pbx decodes Xcode project description files (project.pbxproj
// property lists) into a typed object model.
package pbx

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which of the six property-list shapes a Value holds.
type Kind uint8

// Value kinds, declared in interpretation priority order: a node is read as
// the first kind that fits, so boolean data is never read as 1/0 and whole
// numbers are never widened to floats.
const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a property-list node of arbitrary shape: a build-settings entry,
// a script body, any field the format does not pin statically. It is a
// recursive tagged union over bool, int64, float64, string, list, and map.
// There is no null case; an absent key is represented by field absence,
// never by a Value. The zero Value is the boolean false.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	m    map[string]Value
}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Str returns a string Value.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// List returns a list Value holding elems in order.
func List(elems ...Value) Value { return Value{kind: KindList, list: elems} }

// Map returns a map Value holding the given entries.
func Map(entries map[string]Value) Value { return Value{kind: KindMap, m: entries} }

// Kind returns the shape tag of the value.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload, or an error for any other kind.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("pbx: expected bool, got %s", v.kind)
	}
	return v.b, nil
}

// AsInt returns the integer payload, or an error for any other kind.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("pbx: expected int, got %s", v.kind)
	}
	return v.i, nil
}

// AsFloat returns the floating-point payload, or an error for any other kind.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("pbx: expected float, got %s", v.kind)
	}
	return v.f, nil
}

// AsString returns the string payload, or an error for any other kind.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("pbx: expected string, got %s", v.kind)
	}
	return v.s, nil
}

// AsList returns the list payload, or an error for any other kind.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, fmt.Errorf("pbx: expected list, got %s", v.kind)
	}
	return v.list, nil
}

// AsMap returns the map payload, or an error for any other kind.
func (v Value) AsMap() (map[string]Value, error) {
	if v.kind != KindMap {
		return nil, fmt.Errorf("pbx: expected map, got %s", v.kind)
	}
	return v.m, nil
}

// Get returns the entry under key of a map Value. The second result is
// false when the value is not a map or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	entry, ok := v.m[key]
	return entry, ok
}

// Len returns the element count of a list or map Value, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// String renders the value in old-style plist notation, with map keys
// sorted so output is stable. Intended for diagnostics and listings.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindList:
		parts := make([]string, len(v.list))
		for i, elem := range v.list {
			parts[i] = elem.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for key := range v.m {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteString("{")
		for _, key := range keys {
			fmt.Fprintf(&sb, "%s = %s; ", key, v.m[key])
		}
		sb.WriteString("}")
		return sb.String()
	default:
		return "?"
	}
}

// valueFromNode converts one parsed property-list node into a Value,
// recursing through containers. Interpretation priority is fixed: boolean,
// integer, float, string, list, map. A string is accepted only once every
// stricter interpretation has been ruled out, so numeral-shaped text
// survives as text exactly when the surrounding plist parser kept it typed
// as a string. Dates and binary data fall outside the six shapes and fail
// with ErrUnsupportedValue at the node's path.
func valueFromNode(node any, path Path) (Value, error) {
	switch n := node.(type) {
	case bool:
		return Bool(n), nil
	case int:
		return Int(int64(n)), nil
	case int64:
		return Int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return Value{}, &DecodeError{Path: path, Err: fmt.Errorf("%w: integer %d overflows int64", ErrUnsupportedValue, n)}
		}
		return Int(int64(n)), nil
	case float64:
		return Float(n), nil
	case float32:
		return Float(float64(n)), nil
	case string:
		return Str(n), nil
	case []any:
		elems := make([]Value, len(n))
		for i, raw := range n {
			elem, err := valueFromNode(raw, path.Index(i))
			if err != nil {
				return Value{}, err
			}
			elems[i] = elem
		}
		return List(elems...), nil
	case map[string]any:
		entries := make(map[string]Value, len(n))
		for key, raw := range n {
			entry, err := valueFromNode(raw, path.Key(key))
			if err != nil {
				return Value{}, err
			}
			entries[key] = entry
		}
		return Map(entries), nil
	default:
		return Value{}, &DecodeError{Path: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedValue, nodeTypeName(node))}
	}
}

// nodeTypeName names a parsed plist node's type in plist vocabulary for
// error messages.
func nodeTypeName(node any) string {
	switch node.(type) {
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float32, float64:
		return "real"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "dictionary"
	case time.Time:
		return "date"
	case []byte:
		return "data"
	default:
		return fmt.Sprintf("%T", node)
	}
}
