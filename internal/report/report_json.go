package report

import (
	"encoding/json"
	"fmt"
)

// JSONReport renders the summary as machine-readable JSON for external
// tooling.
type JSONReport struct{}

// jsonOutput is the top-level structure for JSON report output.
type jsonOutput struct {
	Source         string       `json:"source,omitempty"`
	ArchiveVersion string       `json:"archive_version"`
	ObjectVersion  string       `json:"object_version"`
	RootObject     string       `json:"root_object"`
	RootResolved   bool         `json:"root_resolved"`
	ObjectCount    int          `json:"object_count"`
	Kinds          []jsonKind   `json:"kinds"`
	Targets        []jsonTarget `json:"targets"`
	Configurations []string     `json:"configurations"`
	UnknownIsas    []string     `json:"unknown_isas"`
}

// jsonKind is the JSON representation of one discriminator count.
type jsonKind struct {
	Isa   string `json:"isa"`
	Count int    `json:"count"`
}

// jsonTarget is the JSON representation of one target digest.
type jsonTarget struct {
	Name         string `json:"name"`
	Isa          string `json:"isa"`
	ProductType  string `json:"product_type,omitempty"`
	Phases       int    `json:"phases"`
	Dependencies int    `json:"dependencies"`
	Packages     int    `json:"packages"`
}

// Render produces a JSON string of the summary.
func (r *JSONReport) Render(s *Summary) (string, error) {
	if s == nil {
		return "", fmt.Errorf("summary is nil")
	}

	out := jsonOutput{
		Source:         s.Source,
		ArchiveVersion: s.ArchiveVersion,
		ObjectVersion:  s.ObjectVersion,
		RootObject:     s.RootObject,
		RootResolved:   s.RootResolved,
		ObjectCount:    s.ObjectCount,
		Kinds:          make([]jsonKind, len(s.Kinds)),
		Targets:        make([]jsonTarget, len(s.Targets)),
		Configurations: emptyIfNil(s.Configurations),
		UnknownIsas:    emptyIfNil(s.UnknownIsas),
	}
	for i, k := range s.Kinds {
		out.Kinds[i] = jsonKind{Isa: k.Isa, Count: k.Count}
	}
	for i, t := range s.Targets {
		out.Targets[i] = jsonTarget{
			Name:         t.Name,
			Isa:          t.Isa,
			ProductType:  t.ProductType,
			Phases:       t.Phases,
			Dependencies: t.Dependencies,
			Packages:     t.Packages,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON report: %w", err)
	}

	return string(data) + "\n", nil
}

// emptyIfNil returns an empty slice if the input is nil, ensuring JSON
// arrays are rendered as [] instead of null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
