package display

import (
	"strings"
	"testing"
)

// charMeasurer gives every character a width proportional to the font size,
// which keeps wrap behavior deterministic in tests.
type charMeasurer struct{}

func (charMeasurer) Width(size float64, s string) int {
	return int(size/2) * len(s)
}

func TestWrap_Greedy(t *testing.T) {
	// size 10 -> 5px per char, so 50px holds 10 chars per line.
	lines := Wrap(charMeasurer{}, 10, 50, "aaa bbb ccc ddd")
	want := []string{"aaa bbb", "ccc ddd"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %v", len(lines), lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrap_OverlongWordGetsOwnLine(t *testing.T) {
	lines := Wrap(charMeasurer{}, 10, 50, "hi extraordinarily hi")
	want := []string{"hi", "extraordinarily", "hi"}
	if len(lines) != 3 {
		t.Fatalf("got lines %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrap_Empty(t *testing.T) {
	if lines := Wrap(charMeasurer{}, 10, 50, ""); len(lines) != 0 {
		t.Errorf("Wrap(empty) = %v, want none", lines)
	}
}

func TestFit_ShortTextSelectsLargestCandidate(t *testing.T) {
	fit := Fit(charMeasurer{}, "short note", 210, 205, DefaultCandidates)
	if fit.Candidate != DefaultCandidates[0] {
		t.Errorf("Candidate = %+v, want largest %+v", fit.Candidate, DefaultCandidates[0])
	}
	if fit.Truncated {
		t.Error("short text should not truncate")
	}
}

func TestFit_LineCountNeverExceedsCapacity(t *testing.T) {
	texts := []string{
		"short",
		strings.Repeat("word ", 40),
		strings.Repeat("verylongword ", 60),
		strings.Repeat("x", 300),
	}
	for _, text := range texts {
		fit := Fit(charMeasurer{}, text, 210, 205, DefaultCandidates)
		capacity := 205 / fit.Candidate.LineHeight
		if len(fit.Lines) > capacity {
			t.Errorf("text %q: %d lines exceeds capacity %d at size %g",
				text[:20], len(fit.Lines), capacity, fit.Candidate.Size)
		}
	}
}

func TestFit_OverflowFallsBackToSmallestWithTruncation(t *testing.T) {
	// Deep overflow: far more words than any candidate can hold.
	text := strings.Repeat("overflowing words here ", 80)
	fit := Fit(charMeasurer{}, text, 210, 205, DefaultCandidates)

	smallest := DefaultCandidates[len(DefaultCandidates)-1]
	if fit.Candidate != smallest {
		t.Errorf("Candidate = %+v, want smallest %+v", fit.Candidate, smallest)
	}
	if !fit.Truncated {
		t.Error("expected truncation")
	}
	if len(fit.Lines) != 205/smallest.LineHeight {
		t.Errorf("truncated to %d lines, want capacity %d", len(fit.Lines), 205/smallest.LineHeight)
	}
}

func TestFit_RealFontMetrics(t *testing.T) {
	fonts, err := LoadFonts()
	if err != nil {
		t.Fatal(err)
	}

	// A 300-character body must either fit or come back truncated at the
	// smallest size, never overflow capacity.
	body := strings.Repeat("memory fragment recovered from the archive ", 7)
	fit := Fit(fonts, body, 210, 205, DefaultCandidates)
	capacity := 205 / fit.Candidate.LineHeight
	if len(fit.Lines) > capacity {
		t.Errorf("%d lines exceeds capacity %d", len(fit.Lines), capacity)
	}
	for _, line := range fit.Lines {
		if w := fonts.Width(fit.Candidate.Size, line); w > 210 {
			// A single overlong word may exceed the width; multiword lines
			// must not.
			if strings.Contains(line, " ") {
				t.Errorf("line %q measures %dpx, over 210", line, w)
			}
		}
	}
}
