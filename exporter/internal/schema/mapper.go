package schema

import (
	"fmt"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/extract"
)

// Sample is one labeled reading ready for the registry.
type Sample struct {
	Name  string
	Label string
	Value float64
	Kind  Kind
}

// SchemaMismatchError reports that a page yielded fewer tokens for a class
// than the schema reads, i.e. the device layout no longer matches.
type SchemaMismatchError struct {
	Page  string
	Class extract.Class
	Want  int
	Got   int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch on %s page: class %s has %d values, schema needs %d",
		e.Page, e.Class, e.Got, e.Want)
}

// Map applies s to res. Token counts are checked for every class before any
// sample is built, so a mismatch yields no samples at all.
func Map(res extract.Result, s Schema) ([]Sample, error) {
	req := s.Required()
	for _, c := range s.Classes() {
		if got := res.Len(c); got < req[c] {
			return nil, &SchemaMismatchError{Page: s.Page, Class: c, Want: req[c], Got: got}
		}
	}

	out := make([]Sample, 0, len(s.Specs))
	for _, spec := range s.Specs {
		out = append(out, Sample{
			Name:  spec.Name,
			Label: spec.Label,
			Value: res[spec.Class][spec.Index],
			Kind:  spec.Kind,
		})
	}
	return out, nil
}
