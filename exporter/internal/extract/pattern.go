package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Class names a rule for pulling one category of numeric token out of a page.
type Class string

// Pattern classes known to the meter's page layout.
const (
	Volts      Class = "volts"
	Amps       Class = "amps"
	Kilowatts  Class = "kilowatts"
	KVA        Class = "kva"
	KVAR       Class = "kvar"
	Percent    Class = "percent"
	Hertz      Class = "hertz"
	BareNumber Class = "bare-number"
)

// matcher returns the numeric substrings it finds in text, in document order.
type matcher interface {
	match(text string) []string
}

// suffixMatcher finds numbers immediately followed by a unit marker.
type suffixMatcher struct {
	re *regexp.Regexp
}

func (m suffixMatcher) match(text string) []string {
	found := m.re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, f[1])
	}
	return out
}

// cellMatcher finds bare numbers that make up the whole text between two
// tags, e.g. <td>12.5</td>. The middle character is deliberately loose so a
// malformed cell is surfaced as a parse error instead of silently skipped.
//
// Text must sit directly between markup on both sides: a number at the very
// start or end of the input is not a cell. Comments are scanned too, so a
// cell the page has commented out still takes its ordinal.
type cellMatcher struct {
	re *regexp.Regexp
}

func (m cellMatcher) match(text string) []string {
	var out []string
	z := html.NewTokenizer(strings.NewReader(text))
	afterMarkup := false
	pending := "" // matched text waiting for the closing markup
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return out
		case html.TextToken:
			pending = ""
			if raw := string(z.Raw()); afterMarkup && m.re.MatchString(raw) {
				pending = raw
			}
			afterMarkup = false
			continue
		}

		if pending != "" {
			out = append(out, pending)
			pending = ""
		}
		if tt == html.CommentToken {
			out = append(out, m.match(string(z.Text()))...)
		}
		afterMarkup = true
	}
}

// patterns is the fixed table of class → matcher. Every expression is
// compiled once at package initialisation; a bad pattern fails the process
// at startup, never a scrape.
var patterns = map[Class]matcher{
	Volts:      suffixMatcher{regexp.MustCompile(`(\d+\.\d+) V`)},
	Amps:       suffixMatcher{regexp.MustCompile(`(\d+\.\d+) A`)},
	Kilowatts:  suffixMatcher{regexp.MustCompile(`(\d+\.\d+) kW`)},
	KVA:        suffixMatcher{regexp.MustCompile(`(\d+\.\d+) kVA`)},
	KVAR:       suffixMatcher{regexp.MustCompile(`(\d+\.\d+) kVAR`)},
	Percent:    suffixMatcher{regexp.MustCompile(`(-?\d+\.\d+) %`)},
	Hertz:      suffixMatcher{regexp.MustCompile(`(\d+\.\d+) Hz`)},
	BareNumber: cellMatcher{regexp.MustCompile(`^\d+.\d+$`)},
}

// Known reports whether c has a registered pattern.
func Known(c Class) bool {
	_, ok := patterns[c]
	return ok
}
