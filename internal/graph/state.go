package graph

import (
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
	"github.com/maxepunk/ALN-Ecosystem/internal/token"
)

// StateToken is one existing token as recorded in the current-state files,
// carrying everything an authoring session needs without further lookups.
type StateToken struct {
	TokenID          string   `json:"token_id"`
	ElementID        string   `json:"element_id"`
	ElementName      string   `json:"element_name"`
	Type             string   `json:"type"`
	DisplayText      string   `json:"display_text"`
	ValueRating      *int     `json:"SF_ValueRating"`
	MemoryType       *string  `json:"SF_MemoryType"`
	Group            string   `json:"SF_Group"`
	Summary          *string  `json:"SF_Summary"`
	Points           int      `json:"points"`
	NarrativeThreads []string `json:"narrative_threads"`
	TimelineEventIDs []string `json:"timeline_event_ids"`
	OwnerIDs         []string `json:"owner_ids"`
}

// TimelineTokens groups tokens under one timeline event.
type TimelineTokens struct {
	EventDate  *string       `json:"event_date"`
	EventTitle string        `json:"event_title"`
	Tokens     []*StateToken `json:"tokens"`
}

// CharacterTokens groups tokens under one owning character.
type CharacterTokens struct {
	CharacterName string        `json:"character_name"`
	CharacterID   string        `json:"character_id"`
	Tokens        []*StateToken `json:"tokens"`
}

// ThreadTokens groups tokens under one narrative thread.
type ThreadTokens struct {
	ThreadName string        `json:"thread_name"`
	Tokens     []*StateToken `json:"tokens"`
}

// CurrentState organizes every existing token by identifier, timeline
// event, owning character, and narrative thread.
type CurrentState struct {
	AllTokens         map[string]*StateToken
	TokensByTimeline  map[string]TimelineTokens
	TokensByCharacter map[string]CharacterTokens
	TokensByThread    map[string]ThreadTokens
}

// BuildCurrentState indexes existing tokens along the axes an authoring
// session navigates by.
func BuildCurrentState(elements []notion.Page, timeline []*EventNode, characters []*CharacterNode, threads []*ThreadNode) CurrentState {
	state := CurrentState{
		AllTokens:         map[string]*StateToken{},
		TokensByTimeline:  map[string]TimelineTokens{},
		TokensByCharacter: map[string]CharacterTokens{},
		TokensByThread:    map[string]ThreadTokens{},
	}

	for _, elem := range elements {
		basicType := elem.Select("Basic Type")
		if !token.IsMemoryToken(basicType) {
			continue
		}
		desc := elem.Text("Description/Text")
		sf := token.ParseSFFields(desc)
		if sf.RFID == "" {
			continue
		}

		state.AllTokens[sf.RFID] = &StateToken{
			TokenID:          sf.RFID,
			ElementID:        elem.ID,
			ElementName:      elem.Title("Name"),
			Type:             basicType,
			DisplayText:      token.DisplayText(desc),
			ValueRating:      sf.ValueRating,
			MemoryType:       sf.MemoryType,
			Group:            sf.Group,
			Summary:          sf.Summary,
			Points:           token.PointValue(sf.ValueRating, sf.MemoryType),
			NarrativeThreads: elem.MultiSelect("Narrative Threads"),
			TimelineEventIDs: elem.RelationIDs("Timeline Event"),
			OwnerIDs:         elem.RelationIDs("Owner"),
		}
	}

	byEvent := map[string][]*StateToken{}
	for _, t := range state.AllTokens {
		for _, eventID := range t.TimelineEventIDs {
			byEvent[eventID] = append(byEvent[eventID], t)
		}
	}
	for _, event := range timeline {
		tokens := byEvent[event.ID]
		if tokens == nil {
			tokens = []*StateToken{}
		}
		state.TokensByTimeline[event.ID] = TimelineTokens{
			EventDate:  event.Date,
			EventTitle: event.Title,
			Tokens:     tokens,
		}
	}

	for _, char := range characters {
		var owned []*StateToken
		for _, t := range state.AllTokens {
			for _, ownerID := range t.OwnerIDs {
				if ownerID == char.ID {
					owned = append(owned, t)
					break
				}
			}
		}
		if len(owned) > 0 {
			state.TokensByCharacter[char.Slug] = CharacterTokens{
				CharacterName: char.Name,
				CharacterID:   char.ID,
				Tokens:        owned,
			}
		}
	}

	for _, thread := range threads {
		var tagged []*StateToken
		for _, t := range state.AllTokens {
			for _, name := range t.NarrativeThreads {
				if name == thread.Name {
					tagged = append(tagged, t)
					break
				}
			}
		}
		if len(tagged) > 0 {
			state.TokensByThread[thread.Slug] = ThreadTokens{
				ThreadName: thread.Name,
				Tokens:     tagged,
			}
		}
	}

	return state
}
