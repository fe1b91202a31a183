package display

import (
	"reflect"
	"testing"
)

func TestSplitNames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "single name",
			in:   "Marcus confronts VICTORIA about the funding.",
			want: []Segment{
				{Text: "Marcus confronts "},
				{Text: "VICTORIA", Name: true},
				{Text: " about the funding."},
			},
		},
		{
			name: "possessive",
			in:   "Found in DEREK's office.",
			want: []Segment{
				{Text: "Found in "},
				{Text: "DEREK's", Name: true},
				{Text: " office."},
			},
		},
		{
			name: "no names",
			in:   "A quiet evening at the lab.",
			want: []Segment{{Text: "A quiet evening at the lab."}},
		},
		{
			name: "name at start",
			in:   "VICTORIA left early.",
			want: []Segment{
				{Text: "VICTORIA", Name: true},
				{Text: " left early."},
			},
		},
		{
			name: "single capital not a name",
			in:   "A note from I think Marcus.",
			want: []Segment{{Text: "A note from I think Marcus."}},
		},
		{
			name: "caps inside mixed-case word",
			in:   "McDONALD was never here.",
			want: []Segment{{Text: "McDONALD was never here."}},
		},
		{
			name: "empty line",
			in:   "",
			want: []Segment{{Text: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitNames(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitNames(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitNames_Reassembles(t *testing.T) {
	line := "HOWIE hands JESSICAH a cup of water."
	var rebuilt string
	for _, seg := range SplitNames(line) {
		rebuilt += seg.Text
	}
	if rebuilt != line {
		t.Errorf("segments rebuild to %q, want original", rebuilt)
	}
}
