package tui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/papapumpkin/parallax/internal/pbx"
)

// objectTypeType identifies synthetic discriminator fields, which the panel
// title already shows.
var objectTypeType = reflect.TypeOf(pbx.ObjectType(""))

// FormatObject renders every populated field of a decoded object as one
// "name = value" line, in declaration order. Unknown records list their
// preserved fields sorted by key.
func FormatObject(obj pbx.Object) string {
	if u, ok := obj.(*pbx.UnknownObject); ok {
		return formatUnknown(u)
	}

	v := reflect.ValueOf(obj).Elem()
	t := v.Type()

	var b strings.Builder
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type == objectTypeType {
			continue
		}
		rendered, ok := renderField(v.Field(i))
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s = %s\n", lowerFirst(f.Name), rendered)
	}
	if b.Len() == 0 {
		return "(no fields set)"
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderField formats a single struct field, reporting false for fields
// that are unset and should be omitted.
func renderField(fv reflect.Value) (string, bool) {
	switch fv.Kind() {
	case reflect.String:
		s := fv.String()
		if s == "" {
			return "", false
		}
		return s, true

	case reflect.Slice:
		n := fv.Len()
		if n == 0 {
			return "", false
		}
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			parts[i] = fv.Index(i).String()
		}
		return "(" + strings.Join(parts, ", ") + ")", true

	case reflect.Pointer:
		if fv.IsNil() {
			return "", false
		}
		if val, ok := fv.Interface().(*pbx.Value); ok {
			return val.String(), true
		}

	case reflect.Struct:
		if val, ok := fv.Interface().(pbx.Value); ok {
			return val.String(), true
		}
	}
	return "", false
}

// formatUnknown lists an unknown record's preserved fields sorted by key.
func formatUnknown(u *pbx.UnknownObject) string {
	keys := make([]string, 0, len(u.Fields))
	for k := range u.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := u.Fields[k]
		fmt.Fprintf(&b, "%s = %s\n", k, v.String())
	}
	if b.Len() == 0 {
		return "(no fields set)"
	}
	return strings.TrimRight(b.String(), "\n")
}

// displayName returns a human label for an object row: its name when it has
// one, falling back through the fields that usually identify a record.
func displayName(obj pbx.Object) string {
	if u, ok := obj.(*pbx.UnknownObject); ok {
		for _, key := range []string{"name", "path", "productName"} {
			if v, ok := u.Fields[key]; ok {
				if s, err := v.AsString(); err == nil {
					return s
				}
			}
		}
		return ""
	}

	v := reflect.ValueOf(obj).Elem()
	for _, name := range []string{"Name", "Path", "ProductName", "RepositoryURL", "RelativePath", "RemoteInfo"} {
		f := v.FieldByName(name)
		if f.IsValid() && f.Kind() == reflect.String && f.String() != "" {
			return f.String()
		}
	}
	return ""
}

// lowerFirst lowercases the first rune, turning struct field names back
// into their document spelling (BuildPhases → buildPhases).
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
