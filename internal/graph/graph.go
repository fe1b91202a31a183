// Package graph builds the denormalized knowledge-graph cache from the three
// game databases: character nodes, a chronological timeline, narrative
// threads, and the token/event correspondences between them. The output
// files are a navigation aid for authoring sessions, so everything is
// denormalized up front.
package graph

import (
	"sort"
	"strings"

	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
	"github.com/maxepunk/ALN-Ecosystem/internal/token"
)

// OwnedElement is an element resolved onto its owning character. Token
// fields are populated only for memory tokens carrying an RFID.
type OwnedElement struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	NotionPageID string  `json:"notion_page_id"`
	TokenID      string  `json:"token_id,omitempty"`
	ValueRating  *int    `json:"value_rating,omitempty"`
	MemoryType   *string `json:"memory_type,omitempty"`
	Group        string  `json:"group,omitempty"`
	Points       int     `json:"points,omitempty"`
}

// Background collects the long-form character context fields.
type Background struct {
	Overview      string `json:"overview"`
	Emotions      string `json:"emotions"`
	PrimaryAction string `json:"primary_action"`
}

// CharacterNode is one denormalized character with its owned elements
// resolved inline.
type CharacterNode struct {
	ID               string         `json:"id"`
	Slug             string         `json:"slug"`
	Name             string         `json:"name"`
	NotionPageID     string         `json:"notion_page_id"`
	Type             string         `json:"type"`
	Tier             string         `json:"tier"`
	Logline          string         `json:"logline"`
	Background       Background     `json:"background"`
	OwnedElements    []OwnedElement `json:"owned_elements"`
	TimelineEventIDs []string       `json:"timeline_event_ids"`
	TokenCount       int            `json:"token_count"`
	TotalPoints      int            `json:"total_points"`
}

// EventCharacter is a character reference resolved onto a timeline event.
type EventCharacter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// LinkedToken is a memory token linked to a timeline event.
type LinkedToken struct {
	ElementID   string `json:"element_id"`
	ElementName string `json:"element_name"`
	TokenID     string `json:"token_id"`
	Type        string `json:"type"`
}

// EventNode is one timeline event with characters and evidence resolved.
type EventNode struct {
	ID                 string           `json:"id"`
	NotionPageID       string           `json:"notion_page_id"`
	Date               *string          `json:"date"`
	Title              string           `json:"title"`
	Notes              string           `json:"notes"`
	CharactersInvolved []EventCharacter `json:"characters_involved"`
	LinkedTokens       []LinkedToken    `json:"linked_tokens"`
	HasTokens          bool             `json:"has_tokens"`
}

// ThreadElement is one element tagged with a narrative thread.
type ThreadElement struct {
	ElementID   string  `json:"element_id"`
	ElementName string  `json:"element_name"`
	Type        string  `json:"type"`
	IsToken     bool    `json:"is_token"`
	TokenID     string  `json:"token_id,omitempty"`
	ValueRating *int    `json:"value_rating,omitempty"`
	MemoryType  *string `json:"memory_type,omitempty"`
	Points      int     `json:"points,omitempty"`
}

// ThreadNode groups elements sharing a narrative thread tag.
type ThreadNode struct {
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Elements     []ThreadElement `json:"elements"`
	TokenCount   int             `json:"token_count"`
	TotalPoints  int             `json:"total_points"`
	ElementCount int             `json:"element_count"`
}

// OrphanedToken is a memory token with no timeline event.
type OrphanedToken struct {
	TokenID     string `json:"token_id"`
	ElementID   string `json:"element_id"`
	ElementName string `json:"element_name"`
}

// UnmappedEvent is a timeline event with no linked evidence.
type UnmappedEvent struct {
	EventID    string   `json:"event_id"`
	Date       *string  `json:"date"`
	Title      string   `json:"title"`
	Characters []string `json:"characters"`
}

// Correspondences is the bidirectional event/token mapping plus the two
// mismatch sets reviewers care about.
type Correspondences struct {
	TimelineToTokens map[string][]string `json:"timeline_to_tokens"`
	TokensToTimeline map[string][]string `json:"tokens_to_timeline"`
	OrphanedTokens   []OrphanedToken     `json:"orphaned_tokens"`
	UnmappedEvents   []UnmappedEvent     `json:"unmapped_events"`
}

// Slug canonicalizes a character name: lowercased, spaces to hyphens,
// periods removed.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	return strings.ReplaceAll(s, ".", "")
}

// ThreadSlug canonicalizes a narrative thread name.
func ThreadSlug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	return strings.ReplaceAll(s, "&", "and")
}

func pageByID(pages []notion.Page) map[string]notion.Page {
	m := make(map[string]notion.Page, len(pages))
	for _, p := range pages {
		m[p.ID] = p
	}
	return m
}

// BuildCharacters builds character nodes in database order, resolving each
// character's owned elements inline.
func BuildCharacters(characters, elements []notion.Page) []*CharacterNode {
	elementByID := pageByID(elements)

	nodes := make([]*CharacterNode, 0, len(characters))
	for _, char := range characters {
		name := char.Title("Name")

		owned := make([]OwnedElement, 0)
		for _, elemID := range char.RelationIDs("Owned Elements") {
			elem, ok := elementByID[elemID]
			if !ok {
				continue
			}
			owned = append(owned, resolveOwnedElement(elem))
		}

		tokenCount := 0
		totalPoints := 0
		for _, e := range owned {
			if e.TokenID != "" {
				tokenCount++
				totalPoints += e.Points
			}
		}

		nodes = append(nodes, &CharacterNode{
			ID:           char.ID,
			Slug:         Slug(name),
			Name:         name,
			NotionPageID: char.ID,
			Type:         char.Select("Type"),
			Tier:         char.Select("Tier"),
			Logline:      char.Text("Character Logline"),
			Background: Background{
				Overview:      char.Text("Overview & Key Relationships"),
				Emotions:      char.Text("Emotion towards CEO & others"),
				PrimaryAction: char.Text("Primary Action"),
			},
			OwnedElements:    owned,
			TimelineEventIDs: char.RelationIDs("Events"),
			TokenCount:       tokenCount,
			TotalPoints:      totalPoints,
		})
	}
	return nodes
}

func resolveOwnedElement(elem notion.Page) OwnedElement {
	basicType := elem.Select("Basic Type")
	out := OwnedElement{
		ID:           elem.ID,
		Name:         elem.Title("Name"),
		Type:         basicType,
		NotionPageID: elem.ID,
	}

	if !token.IsMemoryToken(basicType) {
		return out
	}
	sf := token.ParseSFFields(elem.Text("Description/Text"))
	if sf.RFID == "" {
		return out
	}

	out.TokenID = sf.RFID
	out.ValueRating = sf.ValueRating
	out.MemoryType = sf.MemoryType
	out.Group = sf.Group
	out.Points = token.PointValue(sf.ValueRating, sf.MemoryType)
	return out
}

// BuildTimeline builds event nodes in fetch order, which the caller keeps
// chronological by sorting the query on Date.
func BuildTimeline(events, elements, characters []notion.Page) []*EventNode {
	elementByID := pageByID(elements)
	characterByID := pageByID(characters)

	nodes := make([]*EventNode, 0, len(events))
	for _, event := range events {
		involved := make([]EventCharacter, 0)
		for _, charID := range event.RelationIDs("Characters Involved") {
			char, ok := characterByID[charID]
			if !ok {
				continue
			}
			name := char.Title("Name")
			involved = append(involved, EventCharacter{ID: charID, Name: name, Slug: Slug(name)})
		}

		linked := make([]LinkedToken, 0)
		for _, memID := range event.RelationIDs("Memory/Evidence") {
			elem, ok := elementByID[memID]
			if !ok {
				continue
			}
			sf := token.ParseSFFields(elem.Text("Description/Text"))
			if sf.RFID == "" {
				continue
			}
			linked = append(linked, LinkedToken{
				ElementID:   memID,
				ElementName: elem.Title("Name"),
				TokenID:     sf.RFID,
				Type:        elem.Select("Basic Type"),
			})
		}

		nodes = append(nodes, &EventNode{
			ID:                 event.ID,
			NotionPageID:       event.ID,
			Date:               event.DateStart("Date"),
			Title:              event.Title("Description"),
			Notes:              event.Text("Notes"),
			CharactersInvolved: involved,
			LinkedTokens:       linked,
			HasTokens:          len(linked) > 0,
		})
	}
	return nodes
}

// BuildThreads groups elements by their narrative-thread tags, sorted by
// thread name for stable output.
func BuildThreads(elements []notion.Page) []*ThreadNode {
	byThread := map[string][]ThreadElement{}

	for _, elem := range elements {
		threads := elem.MultiSelect("Narrative Threads")
		if len(threads) == 0 {
			continue
		}

		basicType := elem.Select("Basic Type")
		isToken := token.IsMemoryToken(basicType)

		entry := ThreadElement{
			ElementID:   elem.ID,
			ElementName: elem.Title("Name"),
			Type:        basicType,
			IsToken:     isToken,
		}
		if isToken {
			sf := token.ParseSFFields(elem.Text("Description/Text"))
			if sf.RFID != "" {
				entry.TokenID = sf.RFID
				entry.ValueRating = sf.ValueRating
				entry.MemoryType = sf.MemoryType
				entry.Points = token.PointValue(sf.ValueRating, sf.MemoryType)
			}
		}

		for _, thread := range threads {
			byThread[thread] = append(byThread[thread], entry)
		}
	}

	names := make([]string, 0, len(byThread))
	for name := range byThread {
		names = append(names, name)
	}
	sort.Strings(names)

	nodes := make([]*ThreadNode, 0, len(names))
	for _, name := range names {
		elems := byThread[name]
		tokenCount := 0
		totalPoints := 0
		for _, e := range elems {
			if e.IsToken {
				tokenCount++
			}
			totalPoints += e.Points
		}
		nodes = append(nodes, &ThreadNode{
			Name:         name,
			Slug:         ThreadSlug(name),
			Elements:     elems,
			TokenCount:   tokenCount,
			TotalPoints:  totalPoints,
			ElementCount: len(elems),
		})
	}
	return nodes
}

// BuildCorrespondences maps timeline events to token IDs and back, and
// collects orphaned tokens and unmapped events. A timeline event with zero
// linked evidence always lands in UnmappedEvents.
func BuildCorrespondences(timeline []*EventNode, elements []notion.Page) Correspondences {
	c := Correspondences{
		TimelineToTokens: map[string][]string{},
		TokensToTimeline: map[string][]string{},
		OrphanedTokens:   []OrphanedToken{},
		UnmappedEvents:   []UnmappedEvent{},
	}

	for _, event := range timeline {
		tokenIDs := make([]string, 0, len(event.LinkedTokens))
		for _, lt := range event.LinkedTokens {
			tokenIDs = append(tokenIDs, lt.TokenID)
			c.TokensToTimeline[lt.TokenID] = append(c.TokensToTimeline[lt.TokenID], event.ID)
		}
		c.TimelineToTokens[event.ID] = tokenIDs

		if !event.HasTokens {
			names := make([]string, 0, len(event.CharactersInvolved))
			for _, ch := range event.CharactersInvolved {
				names = append(names, ch.Name)
			}
			c.UnmappedEvents = append(c.UnmappedEvents, UnmappedEvent{
				EventID:    event.ID,
				Date:       event.Date,
				Title:      event.Title,
				Characters: names,
			})
		}
	}

	for _, elem := range elements {
		if !token.IsMemoryToken(elem.Select("Basic Type")) {
			continue
		}
		sf := token.ParseSFFields(elem.Text("Description/Text"))
		if sf.RFID == "" {
			continue
		}
		if _, mapped := c.TokensToTimeline[sf.RFID]; !mapped {
			c.OrphanedTokens = append(c.OrphanedTokens, OrphanedToken{
				TokenID:     sf.RFID,
				ElementID:   elem.ID,
				ElementName: elem.Title("Name"),
			})
		}
	}

	return c
}
