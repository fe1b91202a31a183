package token

import "testing"

func TestParseSFFields_Full(t *testing.T) {
	desc := "Eli's voice memo about the breakup.\n" +
		"SF_RFID: [ELI042]\n" +
		"SF_ValueRating: [3]\n" +
		"SF_MemoryType: [Personal]\n" +
		"SF_Group: [Breakup Trail (x2)]"

	sf := ParseSFFields(desc)

	if sf.RFID != "eli042" {
		t.Errorf("RFID = %q, want lowercased eli042", sf.RFID)
	}
	if sf.ValueRating == nil || *sf.ValueRating != 3 {
		t.Errorf("ValueRating = %v, want 3", sf.ValueRating)
	}
	if sf.MemoryType == nil || *sf.MemoryType != "Personal" {
		t.Errorf("MemoryType = %v, want Personal", sf.MemoryType)
	}
	if sf.Group != "Breakup Trail (x2)" {
		t.Errorf("Group = %q", sf.Group)
	}
}

func TestParseSFFields_CaseInsensitive(t *testing.T) {
	sf := ParseSFFields("sf_rfid: [TAC001]\nsf_valuerating: [5]")
	if sf.RFID != "tac001" {
		t.Errorf("RFID = %q, want tac001", sf.RFID)
	}
	if sf.ValueRating == nil || *sf.ValueRating != 5 {
		t.Errorf("ValueRating = %v, want 5", sf.ValueRating)
	}
}

func TestParseSFFields_Absent(t *testing.T) {
	sf := ParseSFFields("just a plain description with no tags")
	if sf.RFID != "" || sf.ValueRating != nil || sf.MemoryType != nil || sf.Group != "" || sf.Summary != nil {
		t.Errorf("expected zero fields, got %+v", sf)
	}
}

func TestParseSFFields_MalformedRating(t *testing.T) {
	sf := ParseSFFields("SF_ValueRating: [high]")
	if sf.ValueRating != nil {
		t.Errorf("malformed rating should parse as absent, got %d", *sf.ValueRating)
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"text before tags", "A voicemail from Derek.\nSF_RFID: [d01]", "A voicemail from Derek."},
		{"no tags", "  plain text  ", "plain text"},
		{"tags at start", "SF_RFID: [d01]\nSF_ValueRating: [2]", "SF_RFID: [d01]\nSF_ValueRating: [2]"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayText(tt.in); got != tt.want {
				t.Errorf("DisplayText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsMemoryToken(t *testing.T) {
	for _, bt := range MemoryTokenTypes {
		if !IsMemoryToken(bt) {
			t.Errorf("IsMemoryToken(%q) = false", bt)
		}
	}
	if IsMemoryToken("Prop") {
		t.Error("IsMemoryToken(Prop) = true")
	}
}

func TestPointValue(t *testing.T) {
	intp := func(n int) *int { return &n }
	strp := func(s string) *string { return &s }

	tests := []struct {
		name   string
		rating *int
		mtype  *string
		want   int
	}{
		{"rating 1 personal", intp(1), strp("Personal"), 100},
		{"rating 3 business", intp(3), strp("Business"), 3000},
		{"rating 5 technical", intp(5), strp("Technical"), 50000},
		{"nil rating defaults to 1", nil, strp("Business"), 300},
		{"nil type defaults to personal", intp(4), nil, 5000},
		{"out of range rating", intp(9), strp("Personal"), 100},
		{"unknown type", intp(2), strp("Emotional"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointValue(tt.rating, tt.mtype); got != tt.want {
				t.Errorf("PointValue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGroupMultiplier(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Marcus Sucks (x2)", 2},
		{"Server Logs (x10)", 10},
		{"No Suffix", 1},
		{"", 1},
	}
	for _, tt := range tests {
		if got := GroupMultiplier(tt.in); got != tt.want {
			t.Errorf("GroupMultiplier(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGroupName(t *testing.T) {
	if got := GroupName("Marcus Sucks (x2)"); got != "Marcus Sucks" {
		t.Errorf("GroupName = %q", got)
	}
	if got := GroupName("Plain"); got != "Plain" {
		t.Errorf("GroupName = %q", got)
	}
	if got := GroupName(""); got != "" {
		t.Errorf("GroupName(empty) = %q", got)
	}
}
