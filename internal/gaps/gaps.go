// Package gaps cross-references the three game databases to surface story
// holes: timeline events with no evidence, events a character lives through
// but their description never mentions, and background details no element
// carries. The keyword-overlap checks are a human-review aid, not a
// verification oracle; their misses are acceptable.
package gaps

import (
	"sort"
	"strings"

	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
)

// NarrativeTypes are the element Basic Types carrying narrative content.
var NarrativeTypes = []string{
	"Memory Token Image",
	"Memory Token Audio",
	"Memory Token Video",
	"Memory Token Audio + Image",
	"Document",
}

// Character is the slice of a character record the analysis reads.
type Character struct {
	ID                 string
	Name               string
	Type               string
	Tier               string
	Logline            string
	Overview           string
	Emotion            string
	Action             string
	EventIDs           []string
	OwnedElementIDs    []string
	AssociatedElements []string
}

// Event is one timeline event.
type Event struct {
	ID             string
	Description    string
	Date           string
	Notes          string
	CharacterIDs   []string
	MemoryEvidence []string
}

// Element is one narrative element.
type Element struct {
	ID          string
	Name        string
	BasicType   string
	Status      string
	Description string
}

// CharacterFromPage maps a raw character page into the analysis shape.
func CharacterFromPage(p notion.Page) Character {
	return Character{
		ID:                 p.ID,
		Name:               p.Title("Name"),
		Type:               p.Select("Type"),
		Tier:               p.Select("Tier"),
		Logline:            p.Text("Character Logline"),
		Overview:           p.Text("Overview & Key Relationships"),
		Emotion:            p.Text("Emotion towards CEO & others"),
		Action:             p.Text("Primary Action"),
		EventIDs:           p.RelationIDs("Events"),
		OwnedElementIDs:    p.RelationIDs("Owned Elements"),
		AssociatedElements: p.RelationIDs("Associated Elements"),
	}
}

// EventFromPage maps a raw timeline page into the analysis shape.
func EventFromPage(p notion.Page) Event {
	date := ""
	if d := p.DateStart("Date"); d != nil {
		date = *d
	}
	return Event{
		ID:             p.ID,
		Description:    p.Title("Description"),
		Date:           date,
		Notes:          p.Text("Notes"),
		CharacterIDs:   p.RelationIDs("Characters Involved"),
		MemoryEvidence: p.RelationIDs("Memory/Evidence"),
	}
}

// ElementFromPage maps a raw element page into the analysis shape.
func ElementFromPage(p notion.Page) Element {
	return Element{
		ID:          p.ID,
		Name:        p.Title("Name"),
		BasicType:   p.Select("Basic Type"),
		Status:      p.Select("Status"),
		Description: p.Text("Description/Text"),
	}
}

// EventGap records one timeline event missing from a character description.
type EventGap struct {
	EventID          string `json:"event_id"`
	EventDescription string `json:"event_description"`
	Date             string `json:"date"`
	Notes            string `json:"notes"`
}

// UnrepresentedEvent is a timeline event with no linked evidence.
type UnrepresentedEvent struct {
	EventID      string   `json:"event_id"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	Notes        string   `json:"notes"`
	CharacterIDs []string `json:"characters"`
}

// Report is the complete gap analysis.
type Report struct {
	Characters          []Character           `json:"-"`
	Events              []Event               `json:"-"`
	Elements            []Element             `json:"-"`
	TimelineGaps        map[string][]EventGap `json:"timeline_gaps"`
	ElementGaps         map[string][]string   `json:"element_gaps"`
	UnrepresentedEvents []UnrepresentedEvent  `json:"unrepresented_events"`
}

var stopwords = map[string]bool{
	"the": true, "and": true, "with": true, "from": true, "that": true,
	"this": true, "their": true, "they": true, "have": true, "been": true,
}

// eventKeywords picks the searchable terms from an event description: words
// longer than three characters minus common stopwords.
func eventKeywords(description string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(description)) {
		if len(word) > 3 && !stopwords[word] {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// EventsNotInCharacters finds events a character is involved in whose key
// terms never appear in that character's text fields.
func EventsNotInCharacters(characters []Character, events []Event) map[string][]EventGap {
	byID := make(map[string]Character, len(characters))
	for _, c := range characters {
		byID[c.ID] = c
	}

	gaps := map[string][]EventGap{}
	for _, event := range events {
		if event.Description == "" {
			continue
		}
		keywords := eventKeywords(event.Description)

		for _, charID := range event.CharacterIDs {
			char, ok := byID[charID]
			if !ok {
				continue
			}
			charText := strings.ToLower(
				char.Logline + " " + char.Overview + " " + char.Emotion + " " + char.Action)

			found := false
			for _, kw := range keywords {
				if strings.Contains(charText, kw) {
					found = true
					break
				}
			}
			if !found {
				gaps[charID] = append(gaps[charID], EventGap{
					EventID:          event.ID,
					EventDescription: event.Description,
					Date:             event.Date,
					Notes:            event.Notes,
				})
			}
		}
	}
	return gaps
}

// EventsWithoutElements finds timeline events with zero linked evidence.
// Character involvement never exempts an event from this set.
func EventsWithoutElements(events []Event) []UnrepresentedEvent {
	var out []UnrepresentedEvent
	for _, event := range events {
		if len(event.MemoryEvidence) > 0 {
			continue
		}
		out = append(out, UnrepresentedEvent{
			EventID:      event.ID,
			Description:  event.Description,
			Date:         event.Date,
			Notes:        event.Notes,
			CharacterIDs: event.CharacterIDs,
		})
	}
	return out
}

// CharacterDetailsNotInElements finds overview sentences whose keywords
// appear in none of the character's owned or associated elements.
func CharacterDetailsNotInElements(characters []Character, elements []Element) map[string][]string {
	elemByID := make(map[string]Element, len(elements))
	for _, e := range elements {
		elemByID[e.ID] = e
	}

	gaps := map[string][]string{}
	for _, char := range characters {
		var sb strings.Builder
		for _, elemID := range append(append([]string{}, char.OwnedElementIDs...), char.AssociatedElements...) {
			if elem, ok := elemByID[elemID]; ok {
				sb.WriteString(" ")
				sb.WriteString(strings.ToLower(elem.Description))
			}
		}
		elementText := sb.String()

		for _, sentence := range strings.Split(char.Overview, ". ") {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= 20 {
				continue
			}

			found := false
			for _, word := range strings.Fields(strings.ToLower(sentence)) {
				if len(word) > 4 && strings.Contains(elementText, word) {
					found = true
					break
				}
			}
			if !found {
				gaps[char.ID] = append(gaps[char.ID], sentence)
			}
		}
	}
	return gaps
}

// Analyze runs all three cross-references over the fetched pages.
func Analyze(characterPages, timelinePages, elementPages []notion.Page) *Report {
	r := &Report{}
	for _, p := range characterPages {
		r.Characters = append(r.Characters, CharacterFromPage(p))
	}
	for _, p := range timelinePages {
		r.Events = append(r.Events, EventFromPage(p))
	}
	for _, p := range elementPages {
		r.Elements = append(r.Elements, ElementFromPage(p))
	}

	r.TimelineGaps = EventsNotInCharacters(r.Characters, r.Events)
	r.ElementGaps = CharacterDetailsNotInElements(r.Characters, r.Elements)
	r.UnrepresentedEvents = EventsWithoutElements(r.Events)
	return r
}

var tierOrder = map[string]int{
	"Primary":   0,
	"Core":      1,
	"Secondary": 2,
	"Tertiary":  3,
}

// sortedCharacters orders characters by tier, then name.
func (r *Report) sortedCharacters() []Character {
	out := append([]Character{}, r.Characters...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, ok := tierOrder[out[i].Tier]
		if !ok {
			ti = 99
		}
		tj, ok := tierOrder[out[j].Tier]
		if !ok {
			tj = 99
		}
		if ti != tj {
			return ti < tj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CharactersWithGaps counts characters appearing in either gap set.
func (r *Report) CharactersWithGaps() int {
	seen := map[string]bool{}
	for id := range r.TimelineGaps {
		seen[id] = true
	}
	for id := range r.ElementGaps {
		seen[id] = true
	}
	return len(seen)
}
