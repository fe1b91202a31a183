package display

import "regexp"

// Segment is a run of text within a wrapped line, flagged when it is an
// all-caps character name to be rendered in the highlight color.
type Segment struct {
	Text string
	Name bool
}

var namePattern = regexp.MustCompile(`[A-Z]{2,}(?:'s|')?`)

// SplitNames splits a line into ordered segments around embedded character
// names: two or more consecutive uppercase letters, optionally with a
// trailing possessive. A line with no names comes back as one segment.
func SplitNames(line string) []Segment {
	matches := namePattern.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return []Segment{{Text: line}}
	}

	var segments []Segment
	prev := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if !boundary(line, start, end) {
			continue
		}
		if start > prev {
			segments = append(segments, Segment{Text: line[prev:start]})
		}
		segments = append(segments, Segment{Text: line[start:end], Name: true})
		prev = end
	}
	if prev < len(line) {
		segments = append(segments, Segment{Text: line[prev:]})
	}
	if len(segments) == 0 {
		return []Segment{{Text: line}}
	}
	return segments
}

// boundary rejects matches embedded inside a longer word, e.g. the tail of
// "McDONALD" or the head of "ABc".
func boundary(line string, start, end int) bool {
	if start > 0 && isLetter(line[start-1]) {
		return false
	}
	if end < len(line) && isLetter(line[end]) {
		return false
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
