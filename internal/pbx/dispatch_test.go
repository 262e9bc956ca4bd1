package pbx

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// record builds a raw object node with the given discriminator.
func record(isa string, fields map[string]any) map[string]any {
	raw := map[string]any{"isa": isa}
	for k, v := range fields {
		raw[k] = v
	}
	return raw
}

func decodeRecord(t *testing.T, raw map[string]any) (Object, error) {
	t.Helper()
	return decodeObject(newDict(raw, Path{"objects", "OBJ"}))
}

// TestDiscriminatorRouting decodes one minimal record per known
// discriminator and checks that each routes to its dedicated shape
// rather than the catch-all.
func TestDiscriminatorRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		isa    string
		fields map[string]any
	}{
		{"PBXGroup", nil},
		{"PBXVariantGroup", nil},
		{"PBXFileSystemSynchronizedRootGroup", nil},
		{"PBXFileSystemSynchronizedBuildFileExceptionSet", map[string]any{"target": "TGT"}},
		{"PBXFileReference", nil},
		{"PBXBuildFile", nil},
		{"PBXNativeTarget", map[string]any{"name": "App", "buildPhases": []any{}}},
		{"PBXAggregateTarget", map[string]any{"name": "All", "buildPhases": []any{}}},
		{"PBXLegacyTarget", map[string]any{"name": "Make", "buildPhases": []any{}}},
		{"PBXProject", map[string]any{
			"buildConfigurationList": "CFG",
			"mainGroup":              "GRP",
			"targets":                []any{},
		}},
		{"XCConfigurationList", map[string]any{"buildConfigurations": []any{}}},
		{"XCBuildConfiguration", map[string]any{"name": "Debug"}},
		{"PBXSourcesBuildPhase", map[string]any{"files": []any{}}},
		{"PBXFrameworksBuildPhase", map[string]any{"files": []any{}}},
		{"PBXResourcesBuildPhase", map[string]any{"files": []any{}}},
		{"PBXHeadersBuildPhase", map[string]any{"files": []any{}}},
		{"PBXRezBuildPhase", map[string]any{"files": []any{}}},
		{"PBXCopyFilesBuildPhase", map[string]any{
			"files":            []any{},
			"dstPath":          "",
			"dstSubfolderSpec": "10",
		}},
		{"PBXShellScriptBuildPhase", map[string]any{
			"shellPath":   "/bin/sh",
			"shellScript": "exit 0",
		}},
		{"XCRemoteSwiftPackageReference", map[string]any{"repositoryURL": "https://example.com/pkg.git"}},
		{"XCLocalSwiftPackageReference", map[string]any{"relativePath": "../pkg"}},
		{"XCSwiftPackageProductDependency", map[string]any{"productName": "Pkg"}},
		{"PBXContainerItemProxy", map[string]any{
			"containerPortal":      "ROOT",
			"proxyType":            "1",
			"remoteGlobalIDString": "TGT",
			"remoteInfo":           "App",
		}},
		{"PBXTargetDependency", nil},
		{"PBXBuildRule", map[string]any{
			"compilerSpec": "com.apple.compilers.proxy.script",
			"fileType":     "pattern.proxy",
		}},
		{"PBXReferenceProxy", map[string]any{"fileType": "archive.ar", "remoteRef": "PRX"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.isa, func(t *testing.T) {
			t.Parallel()
			obj, err := decodeRecord(t, record(tc.isa, tc.fields))
			if err != nil {
				t.Fatalf("decodeObject: %v", err)
			}
			if _, fallback := obj.(*UnknownObject); fallback {
				t.Fatalf("%s decoded to the catch-all variant", tc.isa)
			}
			if got := obj.Type(); got != ObjectType(tc.isa) {
				t.Errorf("Type: got %q, want %q", got, tc.isa)
			}
		})
	}
}

// TestUnknownDiscriminatorFallback checks the forward-compatibility
// path: an unrecognized discriminator is preserved, not rejected.
func TestUnknownDiscriminatorFallback(t *testing.T) {
	t.Parallel()

	raw := record("PBXFancyNewThing", map[string]any{
		"name":    "future",
		"count":   uint64(3),
		"entries": []any{"a", "b"},
	})
	obj, err := decodeRecord(t, raw)
	if err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	unknown, ok := obj.(*UnknownObject)
	if !ok {
		t.Fatalf("object is %T, want *UnknownObject", obj)
	}

	if got := unknown.Type(); got != "PBXFancyNewThing" {
		t.Errorf("Type: got %q, want %q", got, "PBXFancyNewThing")
	}
	isa, ok := unknown.Fields["isa"]
	if !ok {
		t.Fatal("Fields[isa]: missing")
	}
	s, err := isa.AsString()
	if err != nil {
		t.Fatalf("AsString: %v", err)
	}
	if s != "PBXFancyNewThing" {
		t.Errorf("isa: got %q, want %q", s, "PBXFancyNewThing")
	}

	count, ok := unknown.Fields["count"]
	if !ok || count.Kind() != KindInt {
		t.Errorf("count: got kind %s, want int", count.Kind())
	}
	entries, ok := unknown.Fields["entries"]
	if !ok || entries.Kind() != KindList {
		t.Errorf("entries: got kind %s, want list", entries.Kind())
	}
}

// TestUnknownObjectRejectsUnsupportedValues checks that the catch-all
// absorbs unknown discriminators only; unsupported node types inside the
// record still fail the decode.
func TestUnknownObjectRejectsUnsupportedValues(t *testing.T) {
	t.Parallel()

	raw := record("PBXFancyNewThing", map[string]any{
		"stamp": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	_, err := decodeRecord(t, raw)
	if err == nil {
		t.Fatal("decodeObject: expected error for a date field")
	}
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("error: got %v, want ErrUnsupportedValue", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error is %T, want *DecodeError", err)
	}
	if got := de.Path.String(); got != "objects.OBJ.stamp" {
		t.Errorf("Path: got %q, want %q", got, "objects.OBJ.stamp")
	}
}

func TestIsaStrictness(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := decodeRecord(t, map[string]any{"name": "orphan"})
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("error: got %v, want ErrMissingField", err)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("error is %T, want *DecodeError", err)
		}
		if got := de.Path.String(); got != "objects.OBJ.isa" {
			t.Errorf("Path: got %q, want %q", got, "objects.OBJ.isa")
		}
	})

	t.Run("typed node is not coerced", func(t *testing.T) {
		t.Parallel()
		_, err := decodeRecord(t, map[string]any{"isa": uint64(5)})
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("error: got %v, want ErrTypeMismatch", err)
		}
	})
}

func TestBuildPhaseKinds(t *testing.T) {
	t.Parallel()

	kinds := []ObjectType{
		ObjectTypeSourcesBuildPhase,
		ObjectTypeFrameworksBuildPhase,
		ObjectTypeResourcesBuildPhase,
		ObjectTypeHeadersBuildPhase,
		ObjectTypeRezBuildPhase,
	}

	for _, kind := range kinds {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()
			raw := record(string(kind), map[string]any{
				"files":           []any{"F1", "F2"},
				"buildActionMask": "2147483647",
			})
			obj, err := decodeRecord(t, raw)
			if err != nil {
				t.Fatalf("decodeObject: %v", err)
			}
			phase, ok := obj.(*BuildPhase)
			if !ok {
				t.Fatalf("object is %T, want *BuildPhase", obj)
			}
			if phase.Kind != kind {
				t.Errorf("Kind: got %q, want %q", phase.Kind, kind)
			}
			if diff := cmp.Diff([]ObjectID{"F1", "F2"}, phase.Files); diff != "" {
				t.Errorf("Files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeNativeTarget(t *testing.T) {
	t.Parallel()

	raw := record("PBXNativeTarget", map[string]any{
		"name":                   "App",
		"buildPhases":            []any{"PH1", "PH2"},
		"buildConfigurationList": "CFG",
		"dependencies":           []any{"DEP"},
		"productName":            "App",
		"productReference":       "REF",
		"productType":            "com.apple.product-type.application",
	})
	obj, err := decodeRecord(t, raw)
	if err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	target, ok := obj.(*NativeTarget)
	if !ok {
		t.Fatalf("object is %T, want *NativeTarget", obj)
	}

	want := &NativeTarget{
		Name:                   "App",
		BuildPhases:            []ObjectID{"PH1", "PH2"},
		BuildConfigurationList: "CFG",
		Dependencies:           []ObjectID{"DEP"},
		ProductName:            "App",
		ProductReference:       "REF",
		ProductType:            "com.apple.product-type.application",
	}
	if diff := cmp.Diff(want, target); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeShellScriptBuildPhase(t *testing.T) {
	t.Parallel()

	raw := record("PBXShellScriptBuildPhase", map[string]any{
		"shellPath":   "/bin/sh",
		"shellScript": "swiftlint lint\n",
		"name":        "Lint",
		"inputPaths":  []any{"$(SRCROOT)/.swiftlint.yml"},
	})
	obj, err := decodeRecord(t, raw)
	if err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	phase, ok := obj.(*ShellScriptBuildPhase)
	if !ok {
		t.Fatalf("object is %T, want *ShellScriptBuildPhase", obj)
	}

	if phase.ShellPath != "/bin/sh" {
		t.Errorf("ShellPath: got %q, want %q", phase.ShellPath, "/bin/sh")
	}
	script, err := phase.ShellScript.AsString()
	if err != nil {
		t.Fatalf("ShellScript.AsString: %v", err)
	}
	if script != "swiftlint lint\n" {
		t.Errorf("ShellScript: got %q, want %q", script, "swiftlint lint\n")
	}
	if len(phase.InputPaths) != 1 || phase.InputPaths[0] != "$(SRCROOT)/.swiftlint.yml" {
		t.Errorf("InputPaths: got %v", phase.InputPaths)
	}
}

func TestRequiredFieldPerShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     map[string]any
		missing string
	}{
		{
			"copy files phase without destination",
			record("PBXCopyFilesBuildPhase", map[string]any{
				"files":            []any{},
				"dstSubfolderSpec": "10",
			}),
			"objects.OBJ.dstPath",
		},
		{
			"container item proxy without portal",
			record("PBXContainerItemProxy", map[string]any{
				"proxyType":            "1",
				"remoteGlobalIDString": "TGT",
				"remoteInfo":           "App",
			}),
			"objects.OBJ.containerPortal",
		},
		{
			"configuration without name",
			record("XCBuildConfiguration", map[string]any{
				"buildSettings": map[string]any{},
			}),
			"objects.OBJ.name",
		},
		{
			"remote package without URL",
			record("XCRemoteSwiftPackageReference", map[string]any{
				"requirement": map[string]any{"kind": "upToNextMajorVersion"},
			}),
			"objects.OBJ.repositoryURL",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := decodeRecord(t, tc.raw)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("error: got %v, want ErrMissingField", err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error is %T, want *DecodeError", err)
			}
			if got := de.Path.String(); got != tc.missing {
				t.Errorf("Path: got %q, want %q", got, tc.missing)
			}
		})
	}
}

// TestScalarCoercion checks that typed plist scalars land in the model
// as the canonical pbxproj tokens.
func TestScalarCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node any
		want string
	}{
		{"true", true, "1"},
		{"false", false, "0"},
		{"unsigned", uint64(56), "56"},
		{"signed", int64(-1), "-1"},
		{"real", 1.5, "1.5"},
		{"narrow real", float32(8), "8"},
		{"string passthrough", "0440", "0440"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			obj, err := decodeRecord(t, record("PBXGroup", map[string]any{"usesTabs": tc.node}))
			if err != nil {
				t.Fatalf("decodeObject: %v", err)
			}
			group := obj.(*Group)
			if group.UsesTabs != tc.want {
				t.Errorf("UsesTabs: got %q, want %q", group.UsesTabs, tc.want)
			}
		})
	}

	t.Run("container where scalar expected", func(t *testing.T) {
		t.Parallel()
		_, err := decodeRecord(t, record("PBXFileReference", map[string]any{
			"path": []any{"a", "b"},
		}))
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("error: got %v, want ErrTypeMismatch", err)
		}
	})
}
