package report

import "fmt"

// Format renders a summary into a machine-readable string.
type Format interface {
	// Render produces the full report content from the summary.
	Render(s *Summary) (string, error)
}

// FormatByName returns the Format implementation for the given name.
// Supported names: json, toml.
func FormatByName(name string) (Format, error) {
	switch name {
	case "json":
		return &JSONReport{}, nil
	case "toml":
		return &TOMLReport{}, nil
	default:
		return nil, fmt.Errorf("unknown report format: %q", name)
	}
}

// FormatNames returns the list of all supported report format names.
func FormatNames() []string {
	return []string{"json", "toml"}
}
