package pbx

import (
	"sort"
	"strconv"

	"howett.net/plist"
)

// Decode parses data as a property-list document (XML or binary, detected
// automatically) and decodes the typed project model from it. The decode
// is all-or-nothing: any failure returns a nil project and an error
// wrapping one of this package's sentinels, locating the failing node by
// field path. Decode performs no I/O, never prints or logs, and holds no
// shared state, so independent documents may be decoded concurrently.
func Decode(data []byte) (*Project, error) {
	// The plist parser reads zero-length input as an empty legacy-format
	// document rather than failing.
	if len(data) == 0 {
		return nil, malformed("empty document")
	}
	var raw any
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, malformed("%v", err)
	}
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed("top level is %s, want dictionary", nodeTypeName(raw))
	}
	return decodeDocument(root)
}

// decodeDocument assembles the Project from the parsed root dictionary:
// version metadata and root reference first, then every entry of the
// object table, dispatched by discriminator. Table keys are visited in
// sorted order so a malformed table always reports the same failure.
func decodeDocument(root map[string]any) (*Project, error) {
	d := newDict(root, nil)
	project := &Project{
		ArchiveVersion: d.reqStr("archiveVersion"),
		ObjectVersion:  d.reqStr("objectVersion"),
		RootObject:     ObjectID(d.reqStr("rootObject")),
	}
	if d.err != nil {
		return nil, d.err
	}
	if node, ok := root["classes"]; ok {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, typeMismatch(Path{"classes"}, "dictionary", node)
		}
		cd := newDict(m, Path{"classes"})
		project.Classes = cd.valueMap()
		if cd.err != nil {
			return nil, cd.err
		}
	}
	rawObjects := d.reqDict("objects")
	if d.err != nil {
		return nil, d.err
	}

	keys := make([]string, 0, len(rawObjects))
	for key := range rawObjects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	project.Objects = make(map[ObjectID]Object, len(rawObjects))
	for _, key := range keys {
		entryPath := Path{"objects", key}
		m, ok := rawObjects[key].(map[string]any)
		if !ok {
			return nil, typeMismatch(entryPath, "dictionary", rawObjects[key])
		}
		obj, err := decodeObject(newDict(m, entryPath))
		if err != nil {
			return nil, err
		}
		project.Objects[ObjectID(key)] = obj
	}
	return project, nil
}

// dict reads typed fields out of one raw dictionary, keeping the first
// failure. After an error every later read is a no-op returning zero
// values, so shape decoders can fill a whole struct literal and check the
// error once at the end.
type dict struct {
	raw  map[string]any
	path Path
	err  error
}

// newDict wraps a raw dictionary located at path.
func newDict(raw map[string]any, path Path) *dict {
	return &dict{raw: raw, path: path}
}

// fail records err unless an earlier failure already won.
func (d *dict) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// finish returns the decoded object, or the first recorded failure.
func (d *dict) finish(o Object) (Object, error) {
	if d.err != nil {
		return nil, d.err
	}
	return o, nil
}

// isa returns the discriminator field. Unlike every other scalar field the
// discriminator must be a genuine string: its absence is a missing-field
// failure and any other node shape is a mismatch.
func (d *dict) isa() string {
	if d.err != nil {
		return ""
	}
	node, ok := d.raw["isa"]
	if !ok {
		d.fail(missingField(d.path.Key("isa")))
		return ""
	}
	s, ok := node.(string)
	if !ok {
		d.fail(typeMismatch(d.path.Key("isa"), "string", node))
		return ""
	}
	return s
}

// reqStr reads a required scalar field as its canonical string form.
func (d *dict) reqStr(field string) string {
	if d.err != nil {
		return ""
	}
	node, ok := d.raw[field]
	if !ok {
		d.fail(missingField(d.path.Key(field)))
		return ""
	}
	s, err := scalarString(node, d.path.Key(field))
	if err != nil {
		d.fail(err)
		return ""
	}
	return s
}

// str reads an optional scalar field, returning "" when absent.
func (d *dict) str(field string) string {
	if d.err != nil {
		return ""
	}
	node, ok := d.raw[field]
	if !ok {
		return ""
	}
	s, err := scalarString(node, d.path.Key(field))
	if err != nil {
		d.fail(err)
		return ""
	}
	return s
}

// reqRef reads a required object reference.
func (d *dict) reqRef(field string) ObjectID {
	return ObjectID(d.reqStr(field))
}

// ref reads an optional object reference, "" when absent.
func (d *dict) ref(field string) ObjectID {
	return ObjectID(d.str(field))
}

// reqRefs reads a required array of object references.
func (d *dict) reqRefs(field string) []ObjectID {
	if d.err != nil {
		return nil
	}
	node, ok := d.raw[field]
	if !ok {
		d.fail(missingField(d.path.Key(field)))
		return nil
	}
	return d.refElems(field, node)
}

// refs reads an optional array of object references, nil when absent.
func (d *dict) refs(field string) []ObjectID {
	if d.err != nil {
		return nil
	}
	node, ok := d.raw[field]
	if !ok {
		return nil
	}
	return d.refElems(field, node)
}

// refElems decodes the elements of a reference array node.
func (d *dict) refElems(field string, node any) []ObjectID {
	arr, ok := node.([]any)
	if !ok {
		d.fail(typeMismatch(d.path.Key(field), "array", node))
		return nil
	}
	ids := make([]ObjectID, len(arr))
	for i, elem := range arr {
		s, err := scalarString(elem, d.path.Key(field).Index(i))
		if err != nil {
			d.fail(err)
			return nil
		}
		ids[i] = ObjectID(s)
	}
	return ids
}

// strs reads an optional array of plain strings (paths, region names),
// nil when absent.
func (d *dict) strs(field string) []string {
	if d.err != nil {
		return nil
	}
	node, ok := d.raw[field]
	if !ok {
		return nil
	}
	arr, ok := node.([]any)
	if !ok {
		d.fail(typeMismatch(d.path.Key(field), "array", node))
		return nil
	}
	out := make([]string, len(arr))
	for i, elem := range arr {
		s, err := scalarString(elem, d.path.Key(field).Index(i))
		if err != nil {
			d.fail(err)
			return nil
		}
		out[i] = s
	}
	return out
}

// value reads an optional free-form field as a dynamic value, nil when
// absent.
func (d *dict) value(field string) *Value {
	if d.err != nil {
		return nil
	}
	node, ok := d.raw[field]
	if !ok {
		return nil
	}
	v, err := valueFromNode(node, d.path.Key(field))
	if err != nil {
		d.fail(err)
		return nil
	}
	return &v
}

// reqValue reads a required free-form field as a dynamic value.
func (d *dict) reqValue(field string) Value {
	if d.err != nil {
		return Value{}
	}
	node, ok := d.raw[field]
	if !ok {
		d.fail(missingField(d.path.Key(field)))
		return Value{}
	}
	v, err := valueFromNode(node, d.path.Key(field))
	if err != nil {
		d.fail(err)
		return Value{}
	}
	return v
}

// reqDict reads a required dictionary field raw, for structures the
// caller iterates itself.
func (d *dict) reqDict(field string) map[string]any {
	if d.err != nil {
		return nil
	}
	node, ok := d.raw[field]
	if !ok {
		d.fail(missingField(d.path.Key(field)))
		return nil
	}
	m, ok := node.(map[string]any)
	if !ok {
		d.fail(typeMismatch(d.path.Key(field), "dictionary", node))
		return nil
	}
	return m
}

// valueMap decodes every entry of the wrapped dictionary as a dynamic
// value. Used for the catch-all object variant and the classes table.
func (d *dict) valueMap() map[string]Value {
	if d.err != nil {
		return nil
	}
	fields := make(map[string]Value, len(d.raw))
	for key, node := range d.raw {
		v, err := valueFromNode(node, d.path.Key(key))
		if err != nil {
			d.fail(err)
			return nil
		}
		fields[key] = v
	}
	return fields
}

// scalarString renders a scalar node as the canonical pbxproj token.
// Conventionally boolean or numeric flags stay raw strings in the model;
// typed plist nodes coerce (true -> "1", 56 -> "56") so XML-typed and
// string-only documents decode identically. Containers, dates, and data
// are mismatches.
func scalarString(node any, path Path) (string, error) {
	switch n := node.(type) {
	case string:
		return n, nil
	case bool:
		if n {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32), nil
	default:
		return "", typeMismatch(path, "string", node)
	}
}
