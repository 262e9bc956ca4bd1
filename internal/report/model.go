// Package report digests a decoded project into a flat summary model and
// renders it for external tooling. The summary is derived tolerantly: a
// reference that does not resolve in the object table degrades to an
// absent detail, never an error.
package report

// Summary is the digest of one decoded project document.
type Summary struct {
	Source         string `toml:"source,omitempty"`
	ArchiveVersion string `toml:"archive_version"`
	ObjectVersion  string `toml:"object_version"`
	RootObject     string `toml:"root_object"`
	RootResolved   bool   `toml:"root_resolved"`
	ObjectCount    int    `toml:"object_count"`

	Kinds   []KindCount `toml:"kind"`
	Targets []Target    `toml:"target"`

	// Configurations are the build configuration names reachable from the
	// root project's configuration list.
	Configurations []string `toml:"configurations"`

	// UnknownIsas lists the discriminators that fell through to the
	// catch-all record, deduplicated and sorted.
	UnknownIsas []string `toml:"unknown_isas"`
}

// KindCount is the number of table records sharing one discriminator.
type KindCount struct {
	Isa   string `toml:"isa"`
	Count int    `toml:"count"`
}

// Target is the digest of one target record.
type Target struct {
	Name         string `toml:"name"`
	Isa          string `toml:"isa"`
	ProductType  string `toml:"product_type,omitempty"`
	Phases       int    `toml:"phases"`
	Dependencies int    `toml:"dependencies"`
	Packages     int    `toml:"packages"`
}
