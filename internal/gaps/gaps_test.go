package gaps

import (
	"strings"
	"testing"
)

func fixtureReport() *Report {
	characters := []Character{
		{
			ID:       "char-1",
			Name:     "Marcus Blackwood",
			Type:     "Player",
			Tier:     "Core",
			Logline:  "The CEO with everything to hide.",
			Overview: "Marcus founded the company after the lab fire. He never told anyone about the insurance settlement that followed.",
			OwnedElementIDs: []string{
				"elem-1",
			},
		},
		{
			ID:       "char-2",
			Name:     "Victoria Chen",
			Type:     "Player",
			Tier:     "Primary",
			Overview: "Victoria discovered the funding discrepancy during the audit.",
		},
	}

	events := []Event{
		{
			ID:             "event-1",
			Description:    "Victoria discovered funding discrepancy",
			Date:           "2024-03-14",
			CharacterIDs:   []string{"char-2"},
			MemoryEvidence: []string{"elem-1"},
		},
		{
			ID:           "event-2",
			Description:  "The warehouse burned overnight",
			Date:         "2024-03-15",
			Notes:        "Arson suspected.",
			CharacterIDs: []string{"char-1"},
		},
	}

	elements := []Element{
		{
			ID:          "elem-1",
			Name:        "Audit memo",
			BasicType:   "Document",
			Description: "Memo noting the funding discrepancy Victoria found during the audit.",
		},
	}

	return &Report{
		Characters:          characters,
		Events:              events,
		Elements:            elements,
		TimelineGaps:        EventsNotInCharacters(characters, events),
		ElementGaps:         CharacterDetailsNotInElements(characters, elements),
		UnrepresentedEvents: EventsWithoutElements(events),
	}
}

func TestEventsWithoutElements_ZeroEvidenceAlwaysIncluded(t *testing.T) {
	r := fixtureReport()

	if len(r.UnrepresentedEvents) != 1 {
		t.Fatalf("got %d unrepresented events, want 1", len(r.UnrepresentedEvents))
	}
	got := r.UnrepresentedEvents[0]
	if got.EventID != "event-2" {
		t.Errorf("unrepresented event = %q, want event-2", got.EventID)
	}
	// Involvement never exempts an event.
	if len(got.CharacterIDs) != 1 {
		t.Errorf("characters = %v", got.CharacterIDs)
	}
}

func TestEventsNotInCharacters(t *testing.T) {
	r := fixtureReport()

	// char-2's overview mentions "funding" and "discrepancy"; event-1 is
	// covered.
	if gaps := r.TimelineGaps["char-2"]; len(gaps) != 0 {
		t.Errorf("char-2 gaps = %+v, want none", gaps)
	}
	// char-1's text never mentions the warehouse fire.
	gaps := r.TimelineGaps["char-1"]
	if len(gaps) != 1 || gaps[0].EventID != "event-2" {
		t.Errorf("char-1 gaps = %+v", gaps)
	}
}

func TestCharacterDetailsNotInElements(t *testing.T) {
	r := fixtureReport()

	// The insurance-settlement sentence appears in no element.
	gaps := r.ElementGaps["char-1"]
	found := false
	for _, g := range gaps {
		if strings.Contains(g, "insurance settlement") {
			found = true
		}
	}
	if !found {
		t.Errorf("char-1 element gaps = %+v, want insurance settlement detail", gaps)
	}
}

func TestCharactersWithGaps(t *testing.T) {
	r := fixtureReport()
	if got := r.CharactersWithGaps(); got < 1 {
		t.Errorf("CharactersWithGaps = %d", got)
	}
}

func TestMarkdownReport(t *testing.T) {
	r := fixtureReport()
	md := r.Markdown()

	for _, want := range []string{
		"# Story Element Gaps Analysis",
		"## Timeline Events Without Narrative Elements",
		"The warehouse burned overnight",
		"**Notes:** Arson suspected.",
		"### Marcus Blackwood",
		"## Summary Statistics",
		"**Total Characters:** 2",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Primary tier sorts before Core in the character section.
	if r.sortedCharacters()[0].Name != "Victoria Chen" {
		t.Errorf("first sorted character = %q", r.sortedCharacters()[0].Name)
	}
}

func TestHTMLReport(t *testing.T) {
	r := fixtureReport()
	html, err := r.HTML()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<h1", "Story Element Gaps Analysis"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("html missing %q", want)
		}
	}
}
