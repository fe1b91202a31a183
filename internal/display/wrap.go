package display

import "strings"

// Measurer reports the rendered pixel width of a string at a font size.
type Measurer interface {
	Width(size float64, s string) int
}

// Candidate is one (font size, line height) layout option.
type Candidate struct {
	Size       float64
	LineHeight int
}

// DefaultCandidates is the descending size ladder tried by Fit.
var DefaultCandidates = []Candidate{
	{Size: 13, LineHeight: 18},
	{Size: 12, LineHeight: 16},
	{Size: 10, LineHeight: 15},
}

// FitResult is the chosen layout for a body text.
type FitResult struct {
	Candidate Candidate
	Lines     []string
	Truncated bool
}

// Wrap greedily word-wraps text: words accumulate onto the current line
// until the measured width would exceed maxWidth, then a new line starts. A
// single word wider than maxWidth still occupies its own line.
func Wrap(m Measurer, size float64, maxWidth int, text string) []string {
	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if m.Width(size, test) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = test
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// Fit selects the largest candidate whose wrapped line count fits within
// availableHeight. When none fits, the smallest candidate is used with the
// lines clamped to capacity and Truncated set.
func Fit(m Measurer, text string, maxWidth, availableHeight int, candidates []Candidate) FitResult {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	var lines []string
	for _, c := range candidates {
		lines = Wrap(m, c.Size, maxWidth, text)
		capacity := availableHeight / c.LineHeight
		if len(lines) <= capacity {
			return FitResult{Candidate: c, Lines: lines}
		}
	}

	smallest := candidates[len(candidates)-1]
	capacity := availableHeight / smallest.LineHeight
	if capacity < 0 {
		capacity = 0
	}
	return FitResult{
		Candidate: smallest,
		Lines:     lines[:capacity],
		Truncated: true,
	}
}
