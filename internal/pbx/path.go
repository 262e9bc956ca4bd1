package pbx

import (
	"strconv"
	"strings"
)

// Path locates a node in a property-list document as the ordered sequence
// of dictionary keys and array indices from the document root.
type Path []string

// Key returns a new Path extended by a dictionary key. The receiver is
// never mutated, so sibling fields can extend the same prefix safely.
func (p Path) Key(key string) Path {
	return append(p[:len(p):len(p)], key)
}

// Index returns a new Path extended by an array index.
func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], "["+strconv.Itoa(i)+"]")
}

// String joins the path segments: keys with dots, indices attached bare,
// e.g. "objects.F1A2.buildPhases.[2]" renders as
// "objects.F1A2.buildPhases[2]". An empty path renders as "".
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			sb.WriteString(".")
		}
		sb.WriteString(seg)
	}
	return sb.String()
}
