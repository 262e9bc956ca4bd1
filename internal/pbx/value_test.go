package pbx

import (
	"errors"
	"testing"
	"time"

	"howett.net/plist"
)

func TestValueConstructorsAndAccessors(t *testing.T) {
	t.Parallel()

	t.Run("bool", func(t *testing.T) {
		t.Parallel()
		v := Bool(true)
		if v.Kind() != KindBool {
			t.Fatalf("Kind: got %s, want bool", v.Kind())
		}
		got, err := v.AsBool()
		if err != nil {
			t.Fatalf("AsBool: %v", err)
		}
		if !got {
			t.Error("AsBool: got false, want true")
		}
		if _, err := v.AsInt(); err == nil {
			t.Error("AsInt on a bool should fail")
		}
	})

	t.Run("int", func(t *testing.T) {
		t.Parallel()
		v := Int(42)
		got, err := v.AsInt()
		if err != nil {
			t.Fatalf("AsInt: %v", err)
		}
		if got != 42 {
			t.Errorf("AsInt: got %d, want 42", got)
		}
		if _, err := v.AsFloat(); err == nil {
			t.Error("AsFloat on an int should fail")
		}
	})

	t.Run("float", func(t *testing.T) {
		t.Parallel()
		v := Float(1.5)
		got, err := v.AsFloat()
		if err != nil {
			t.Fatalf("AsFloat: %v", err)
		}
		if got != 1.5 {
			t.Errorf("AsFloat: got %v, want 1.5", got)
		}
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		v := Str("1.0")
		got, err := v.AsString()
		if err != nil {
			t.Fatalf("AsString: %v", err)
		}
		if got != "1.0" {
			t.Errorf("AsString: got %q, want %q", got, "1.0")
		}
		if _, err := v.AsMap(); err == nil {
			t.Error("AsMap on a string should fail")
		}
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		v := List(Str("a"), Int(2))
		if v.Len() != 2 {
			t.Fatalf("Len: got %d, want 2", v.Len())
		}
		elems, err := v.AsList()
		if err != nil {
			t.Fatalf("AsList: %v", err)
		}
		if elems[0].Kind() != KindString || elems[1].Kind() != KindInt {
			t.Errorf("element kinds: got %s, %s; want string, int", elems[0].Kind(), elems[1].Kind())
		}
	})

	t.Run("map", func(t *testing.T) {
		t.Parallel()
		v := Map(map[string]Value{"x": Bool(false)})
		entry, ok := v.Get("x")
		if !ok {
			t.Fatal("Get(x): missing")
		}
		if entry.Kind() != KindBool {
			t.Errorf("Get(x) kind: got %s, want bool", entry.Kind())
		}
		if _, ok := v.Get("absent"); ok {
			t.Error("Get(absent): should miss")
		}
		if _, ok := Str("nope").Get("x"); ok {
			t.Error("Get on a non-map should miss")
		}
	})

	t.Run("zero value is boolean false", func(t *testing.T) {
		t.Parallel()
		var v Value
		if v.Kind() != KindBool {
			t.Errorf("zero Kind: got %s, want bool", v.Kind())
		}
	})
}

// TestNodeInterpretationPriority pins the fixed interpretation order on
// already-parsed nodes: booleans are never read as integers, whole numbers
// are never widened, and numeral-shaped strings stay strings.
func TestNodeInterpretationPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node any
		want Kind
	}{
		{"bool true", true, KindBool},
		{"bool false", false, KindBool},
		{"unsigned integer one", uint64(1), KindInt},
		{"signed integer", int64(-3), KindInt},
		{"plain int", 7, KindInt},
		{"real", 1.5, KindFloat},
		{"whole-valued real stays float", float64(1), KindFloat},
		{"string one", "1", KindString},
		{"version-shaped string", "1.0", KindString},
		{"array", []any{"a"}, KindList},
		{"dictionary", map[string]any{"k": "v"}, KindMap},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v, err := valueFromNode(tc.node, nil)
			if err != nil {
				t.Fatalf("valueFromNode(%v): %v", tc.node, err)
			}
			if v.Kind() != tc.want {
				t.Errorf("Kind: got %s, want %s", v.Kind(), tc.want)
			}
		})
	}
}

func TestValueFromNodeRecursion(t *testing.T) {
	t.Parallel()

	node := map[string]any{
		"flags": []any{"-Wall", uint64(0), map[string]any{"nested": true}},
	}
	v, err := valueFromNode(node, nil)
	if err != nil {
		t.Fatalf("valueFromNode: %v", err)
	}
	flags, ok := v.Get("flags")
	if !ok {
		t.Fatal("Get(flags): missing")
	}
	elems, err := flags.AsList()
	if err != nil {
		t.Fatalf("AsList: %v", err)
	}
	if len(elems) != 3 {
		t.Fatalf("flags len: got %d, want 3", len(elems))
	}
	if elems[0].Kind() != KindString || elems[1].Kind() != KindInt || elems[2].Kind() != KindMap {
		t.Errorf("element kinds: got %s, %s, %s", elems[0].Kind(), elems[1].Kind(), elems[2].Kind())
	}
}

func TestValueFromNodeUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node any
	}{
		{"date", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"data", []byte{0x01, 0x02}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			base := Path{"objects", "AA", "settings"}
			_, err := valueFromNode(map[string]any{"bad": tc.node}, base)
			if err == nil {
				t.Fatal("valueFromNode: expected error for unsupported node")
			}
			if !errors.Is(err, ErrUnsupportedValue) {
				t.Errorf("error: got %v, want ErrUnsupportedValue", err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error is %T, want *DecodeError", err)
			}
			if got := de.Path.String(); got != "objects.AA.settings.bad" {
				t.Errorf("Path: got %q, want %q", got, "objects.AA.settings.bad")
			}
		})
	}
}

func TestValueFromNodeOverflow(t *testing.T) {
	t.Parallel()

	_, err := valueFromNode(uint64(1<<63), Path{"n"})
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("error: got %v, want ErrUnsupportedValue", err)
	}
}

func TestValueString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"bool", Bool(true), "true"},
		{"int", Int(-12), "-12"},
		{"float", Float(1.5), "1.5"},
		{"string quoted", Str("app"), `"app"`},
		{"list", List(Int(1), Str("x")), `(1, "x")`},
		{"map sorts keys", Map(map[string]Value{"b": Int(2), "a": Int(1)}), "{a = 1; b = 2; }"},
		{"nested", List(Map(map[string]Value{"k": Bool(false)})), "({k = false; })"},
		{"empty list", List(), "()"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.v.String(); got != tc.want {
				t.Errorf("String: got %q, want %q", got, tc.want)
			}
		})
	}
}

// xmlScalarsDoc mixes one scalar of each plist type. What arrives typed
// stays typed; the quoted "1" must survive as text.
const xmlScalarsDoc = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>b</key><true/>
	<key>i</key><integer>1</integer>
	<key>n</key><real>8</real>
	<key>r</key><real>1.5</real>
	<key>s</key><string>1</string>
</dict>
</plist>`

// binaryScalarsDoc is the binary-plist encoding of the same dictionary
// {b: true, i: 1, n: 8, r: 1.5, s: "1"}, laid out by hand: header,
// object table, one-byte offset table, trailer. n is stored at the
// narrow 4-byte real width, which the parser surfaces as a 32-bit
// float.
var binaryScalarsDoc = []byte{
	'b', 'p', 'l', 'i', 's', 't', '0', '0',
	// root dictionary, 5 entries: key refs then value refs
	0xd5, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a,
	// keys "b", "i", "n", "r", "s"
	0x51, 'b', 0x51, 'i', 0x51, 'n', 0x51, 'r', 0x51, 's',
	// true
	0x09,
	// integer 1
	0x10, 0x01,
	// real 8 as a big-endian float32
	0x22, 0x41, 0x00, 0x00, 0x00,
	// real 1.5 as a big-endian float64
	0x23, 0x3f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	// string "1"
	0x51, '1',
	// offset table
	0x08, 0x13, 0x15, 0x17, 0x19, 0x1b, 0x1d, 0x1e, 0x20, 0x25, 0x2e,
	// trailer: 1-byte offsets and refs, 11 objects, root 0, table at 48
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x01,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0b,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x30,
}

// TestScalarPriorityPerEncoding pins the parser-classification boundary
// per supported plist encoding: after the platform parser has typed the
// nodes, the interpretation order maps them to bool, int, float, and
// string, at whichever width the encoding stored the real.
func TestScalarPriorityPerEncoding(t *testing.T) {
	t.Parallel()

	encodings := []struct {
		name string
		data []byte
	}{
		{"xml", []byte(xmlScalarsDoc)},
		{"binary", binaryScalarsDoc},
	}

	for _, enc := range encodings {
		t.Run(enc.name, func(t *testing.T) {
			t.Parallel()

			var raw any
			if _, err := plist.Unmarshal(enc.data, &raw); err != nil {
				t.Fatalf("plist.Unmarshal: %v", err)
			}
			v, err := valueFromNode(raw, nil)
			if err != nil {
				t.Fatalf("valueFromNode: %v", err)
			}

			wants := map[string]Kind{
				"b": KindBool,
				"i": KindInt,
				"n": KindFloat,
				"r": KindFloat,
				"s": KindString,
			}
			for key, want := range wants {
				entry, ok := v.Get(key)
				if !ok {
					t.Fatalf("Get(%s): missing", key)
				}
				if entry.Kind() != want {
					t.Errorf("%s: got %s, want %s", key, entry.Kind(), want)
				}
			}

			n, _ := v.Get("n")
			narrow, err := n.AsFloat()
			if err != nil {
				t.Fatalf("AsFloat: %v", err)
			}
			if narrow != 8 {
				t.Errorf("n: got %v, want 8", narrow)
			}

			s, _ := v.Get("s")
			text, err := s.AsString()
			if err != nil {
				t.Fatalf("AsString: %v", err)
			}
			if text != "1" {
				t.Errorf("s: got %q, want %q", text, "1")
			}
		})
	}
}
