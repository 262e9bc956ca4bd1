package report

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// TOMLReport renders the summary as TOML, matching the tags on the
// summary model.
type TOMLReport struct{}

// Render produces a TOML string of the summary.
func (r *TOMLReport) Render(s *Summary) (string, error) {
	if s == nil {
		return "", fmt.Errorf("summary is nil")
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling TOML report: %w", err)
	}
	return string(data), nil
}
