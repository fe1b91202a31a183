package display

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantTS   string
		wantKind Kind
		wantBody string
	}{
		{
			name:     "code prefix and am time",
			in:       "TAC001 - 1:22am - Marcus confronts VICTORIA about the funding.",
			wantTS:   "1:22am",
			wantKind: KindTime,
			wantBody: "Marcus confronts VICTORIA about the funding.",
		},
		{
			name:     "pm time no prefix",
			in:       "9:20PM - Howie overhears Jessicah begging.",
			wantTS:   "9:20PM",
			wantKind: KindTime,
			wantBody: "Howie overhears Jessicah begging.",
		},
		{
			name:     "date",
			in:       "3/14/2024 - Lab opening ceremony.",
			wantTS:   "3/14/2024",
			wantKind: KindDate,
			wantBody: "Lab opening ceremony.",
		},
		{
			name:     "unknown date placeholders",
			in:       "??/??/???? - Old photo of the lab.",
			wantTS:   "??/??/????",
			wantKind: KindUnknown,
			wantBody: "Old photo of the lab.",
		},
		{
			name:     "unknown time placeholders",
			in:       "?:?? - A muffled recording.",
			wantTS:   "?:??",
			wantKind: KindUnknown,
			wantBody: "A muffled recording.",
		},
		{
			name:     "no timestamp",
			in:       "Just a plain note.",
			wantBody: "Just a plain note.",
		},
		{
			name:     "prefix only",
			in:       "DRK015 - A muddy bootprint.",
			wantBody: "A muddy bootprint.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.in)
			if got.Timestamp != tt.wantTS {
				t.Errorf("Timestamp = %q, want %q", got.Timestamp, tt.wantTS)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", got.Body, tt.wantBody)
			}
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	inputs := []string{
		"TAC001 - 1:22am - Marcus confronts VICTORIA about the funding.",
		"??/??/???? - Old photo of the lab.",
		"9:20PM - Howie offers her a cup of water.",
	}
	for _, in := range inputs {
		first := Extract(in)
		second := Extract(first.Body)
		if second.Timestamp != "" {
			t.Errorf("re-extraction of %q found timestamp %q", first.Body, second.Timestamp)
		}
		if second.Body != first.Body {
			t.Errorf("re-extraction changed body %q -> %q", first.Body, second.Body)
		}
	}
}
