// Package display renders 240x320 token display bitmaps for the player
// scanner: timestamp extraction, measure-and-fit text layout, name
// highlighting, and the NeurAI canvas composition.
package display

import (
	"regexp"
	"strings"
)

// Kind classifies an extracted timestamp for color coding.
type Kind string

const (
	KindTime    Kind = "time"
	KindDate    Kind = "date"
	KindUnknown Kind = "unknown"
)

// Extraction is the result of stripping the code prefix and timestamp from
// raw description text.
type Extraction struct {
	Timestamp string
	Kind      Kind
	Body      string
}

var (
	codePrefixPattern = regexp.MustCompile(`^(?i)[a-z]{2,4}\d{2,4}\s*-\s*`)
	timePattern       = regexp.MustCompile(`^[0-9?]{1,2}:[0-9?]{2}(?:\s*[AaPp][Mm])?`)
	datePattern       = regexp.MustCompile(`^[0-9?]{1,2}/[0-9?]{1,2}/[0-9?]{2,4}`)
	separatorPattern  = regexp.MustCompile(`^\s*-\s*`)
)

// Extract strips a leading item-code prefix, then matches a clock time or a
// date at the start of the remaining text. Placeholders (`?` digits) classify
// the timestamp as unknown. No match is a valid outcome, not an error.
// Running Extract on its own Body yields no further timestamp.
func Extract(raw string) Extraction {
	text := strings.TrimSpace(raw)
	text = codePrefixPattern.ReplaceAllString(text, "")

	for _, try := range []struct {
		pattern *regexp.Regexp
		kind    Kind
	}{
		{timePattern, KindTime},
		{datePattern, KindDate},
	} {
		m := try.pattern.FindString(text)
		if m == "" {
			continue
		}
		kind := try.kind
		if strings.Contains(m, "?") {
			kind = KindUnknown
		}
		rest := separatorPattern.ReplaceAllString(text[len(m):], "")
		return Extraction{
			Timestamp: m,
			Kind:      kind,
			Body:      strings.TrimSpace(rest),
		}
	}

	return Extraction{Body: text}
}
