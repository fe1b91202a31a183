package graph

import "time"

// CharacterSummary is the index entry pointing into characters.json.
type CharacterSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TokenCount  int    `json:"token_count"`
	TotalPoints int    `json:"total_points"`
}

// ThreadSummary is the index entry pointing into narrative-threads.json.
type ThreadSummary struct {
	Name        string `json:"name"`
	TokenCount  int    `json:"token_count"`
	TotalPoints int    `json:"total_points"`
}

// Index is the master navigation file written at the cache root.
type Index struct {
	GeneratedAt string       `json:"generated_at"`
	Summary     IndexSummary `json:"summary"`
	Navigation  Navigation   `json:"navigation"`
	QuickStats  QuickStats   `json:"quick_stats"`
	Files       FileMap      `json:"files"`
}

type IndexSummary struct {
	TotalCharacters        int `json:"total_characters"`
	TotalNarrativeThreads  int `json:"total_narrative_threads"`
	TotalTimelineEvents    int `json:"total_timeline_events"`
	TotalExistingTokens    int `json:"total_existing_tokens"`
	UnmappedTimelineEvents int `json:"unmapped_timeline_events"`
	OrphanedTokens         int `json:"orphaned_tokens"`
}

type Navigation struct {
	Characters       CharacterNav `json:"characters"`
	NarrativeThreads ThreadNav    `json:"narrative_threads"`
	Timeline         TimelineNav  `json:"timeline"`
}

type CharacterNav struct {
	Path  string                      `json:"path"`
	Index map[string]CharacterSummary `json:"index"`
}

type ThreadNav struct {
	Path  string                   `json:"path"`
	Index map[string]ThreadSummary `json:"index"`
}

type TimelineNav struct {
	Path                string `json:"path"`
	TotalEvents         int    `json:"total_events"`
	EventsWithTokens    int    `json:"events_with_tokens"`
	EventsWithoutTokens int    `json:"events_without_tokens"`
}

type QuickStats struct {
	Scoring ScoringStats `json:"scoring"`
	Groups  GroupTotals  `json:"groups"`
}

type ScoringStats struct {
	TotalPointsAvailable int                `json:"total_points_available"`
	ByType               map[string]*Bucket `json:"by_type"`
	ByRating             map[int]*Bucket    `json:"by_rating"`
}

type GroupTotals struct {
	TotalGroups         int `json:"total_groups"`
	TotalBonusAvailable int `json:"total_bonus_available"`
}

// FileMap lists every cache file relative to the cache root so a session
// can navigate without globbing.
type FileMap struct {
	Graph        map[string]string `json:"graph"`
	CurrentState map[string]string `json:"current_state"`
	Analysis     map[string]string `json:"analysis"`
}

// BuildIndex assembles the master index from the built graph pieces.
func BuildIndex(characters []*CharacterNode, timeline []*EventNode, threads []*ThreadNode, corr Correspondences, scoring ScoringDistribution, now time.Time) Index {
	charIndex := make(map[string]CharacterSummary, len(characters))
	for _, c := range characters {
		charIndex[c.Slug] = CharacterSummary{
			ID:          c.ID,
			Name:        c.Name,
			TokenCount:  c.TokenCount,
			TotalPoints: c.TotalPoints,
		}
	}

	threadIndex := make(map[string]ThreadSummary, len(threads))
	for _, t := range threads {
		threadIndex[t.Slug] = ThreadSummary{
			Name:        t.Name,
			TokenCount:  t.TokenCount,
			TotalPoints: t.TotalPoints,
		}
	}

	withTokens := 0
	for _, e := range timeline {
		if e.HasTokens {
			withTokens++
		}
	}

	bonus := 0
	for _, g := range scoring.Groups {
		bonus += g.CompletionBonus
	}

	return Index{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Summary: IndexSummary{
			TotalCharacters:        len(characters),
			TotalNarrativeThreads:  len(threads),
			TotalTimelineEvents:    len(timeline),
			TotalExistingTokens:    scoring.TotalTokens,
			UnmappedTimelineEvents: len(corr.UnmappedEvents),
			OrphanedTokens:         len(corr.OrphanedTokens),
		},
		Navigation: Navigation{
			Characters:       CharacterNav{Path: "graph/characters.json", Index: charIndex},
			NarrativeThreads: ThreadNav{Path: "graph/narrative-threads.json", Index: threadIndex},
			Timeline: TimelineNav{
				Path:                "graph/timeline.json",
				TotalEvents:         len(timeline),
				EventsWithTokens:    withTokens,
				EventsWithoutTokens: len(timeline) - withTokens,
			},
		},
		QuickStats: QuickStats{
			Scoring: ScoringStats{
				TotalPointsAvailable: scoring.TotalPoints,
				ByType:               scoring.ByMemoryType,
				ByRating:             scoring.ByRating,
			},
			Groups: GroupTotals{
				TotalGroups:         len(scoring.Groups),
				TotalBonusAvailable: bonus,
			},
		},
		Files: FileMap{
			Graph: map[string]string{
				"characters":        "graph/characters.json",
				"timeline":          "graph/timeline.json",
				"narrative_threads": "graph/narrative-threads.json",
				"correspondences":   "graph/correspondences.json",
			},
			CurrentState: map[string]string{
				"all_tokens":         "current-state/all-tokens.json",
				"tokens_by_timeline": "current-state/tokens-by-timeline.json",
				"tokens_by_character": "current-state/tokens-by-character.json",
				"tokens_by_thread":   "current-state/tokens-by-thread.json",
			},
			Analysis: map[string]string{
				"timeline_gaps":        "analysis/timeline-gaps.json",
				"orphaned_tokens":      "analysis/orphaned-tokens.json",
				"narrative_value":      "analysis/narrative-value.json",
				"scoring_distribution": "analysis/scoring-distribution.json",
			},
		},
	}
}
