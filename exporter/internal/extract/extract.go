package extract

import (
	"fmt"
	"strconv"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/device"
)

// Result holds, per pattern class, every value found in one document in
// order of appearance. Values are never reordered or deduplicated.
type Result map[Class][]float64

// Len returns the number of values extracted for c.
func (r Result) Len(c Class) int {
	return len(r[c])
}

// Extract scans doc once per requested class and returns the ordered values.
// Classes are independent: each scan runs over the full text and none
// consumes another's matches. A class with no matches maps to an empty,
// non-nil sequence.
func Extract(doc device.Document, classes ...Class) (Result, error) {
	res := make(Result, len(classes))
	for _, c := range classes {
		if _, done := res[c]; done {
			continue
		}
		m, ok := patterns[c]
		if !ok {
			return nil, fmt.Errorf("extract %s: unknown pattern class %q", doc.Page, c)
		}

		tokens := m.match(doc.Body)
		values := make([]float64, 0, len(tokens))
		for i, tok := range tokens {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("extract %s: %s token %d %q: %w", doc.Page, c, i, tok, err)
			}
			values = append(values, v)
		}
		res[c] = values
	}
	return res, nil
}
