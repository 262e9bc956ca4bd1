package pbx

import (
	"errors"
	"fmt"
	"testing"
)

func TestPathString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path Path
		want string
	}{
		{"empty", nil, ""},
		{"single", Path{"rootObject"}, "rootObject"},
		{"keys", Path{"objects", "AA01", "name"}, "objects.AA01.name"},
		{"index", Path{"objects", "AA01"}.Key("files").Index(3), "objects.AA01.files[3]"},
		{"index then key", Path{"objects"}.Index(0).Key("isa"), "objects[0].isa"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.path.String(); got != tc.want {
				t.Errorf("String: got %q, want %q", got, tc.want)
			}
		})
	}
}

// TestPathExtendDoesNotAlias extends one prefix twice; the second
// extension must not overwrite the first.
func TestPathExtendDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := Path{"objects", "AA01"}
	first := base.Key("name")
	second := base.Key("path")

	if got := first.String(); got != "objects.AA01.name" {
		t.Errorf("first: got %q, want %q", got, "objects.AA01.name")
	}
	if got := second.String(); got != "objects.AA01.path" {
		t.Errorf("second: got %q, want %q", got, "objects.AA01.path")
	}
}

func TestDecodeErrorRendering(t *testing.T) {
	t.Parallel()

	err := &DecodeError{
		Path: Path{"objects", "AA01", "buildPhases"},
		Err:  ErrMissingField,
	}
	want := "objects.AA01.buildPhases: required field missing"
	if got := err.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}

	bare := &DecodeError{Err: ErrMalformedDocument}
	if got := bare.Error(); got != ErrMalformedDocument.Error() {
		t.Errorf("Error without path: got %q, want %q", got, ErrMalformedDocument.Error())
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := &DecodeError{
		Path: Path{"objects", "AA01", "path"},
		Err:  fmt.Errorf("%w: expected string, got array", ErrTypeMismatch),
	}

	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("errors.Is(ErrTypeMismatch): got false, want true")
	}
	if errors.Is(err, ErrMissingField) {
		t.Error("errors.Is(ErrMissingField): got true, want false")
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatal("errors.As(*DecodeError): got false, want true")
	}
	if got := de.Path.String(); got != "objects.AA01.path" {
		t.Errorf("Path: got %q, want %q", got, "objects.AA01.path")
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	t.Parallel()

	kinds := []error{ErrMissingField, ErrTypeMismatch, ErrUnsupportedValue, ErrMalformedDocument}
	for i, a := range kinds {
		for j, b := range kinds {
			if (i == j) != errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v): got %v", a, b, i == j)
			}
		}
	}
}
