package graph

import (
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
	"github.com/maxepunk/ALN-Ecosystem/internal/token"
)

// Bucket is a count/points pair for one distribution axis.
type Bucket struct {
	Count  int `json:"count"`
	Points int `json:"points"`
}

// GroupStats summarizes one completion group.
type GroupStats struct {
	TokenCount      int `json:"token_count"`
	Multiplier      int `json:"multiplier"`
	TotalPoints     int `json:"total_points"`
	CompletionBonus int `json:"completion_bonus"`
}

// ScoringDistribution is the point breakdown across memory type, rating,
// thread, and completion group.
type ScoringDistribution struct {
	TotalTokens  int                   `json:"total_tokens"`
	TotalPoints  int                   `json:"total_points"`
	ByMemoryType map[string]*Bucket    `json:"by_memory_type"`
	ByRating     map[int]*Bucket       `json:"by_rating"`
	ByThread     map[string]Bucket     `json:"by_thread"`
	Groups       map[string]GroupStats `json:"groups"`
}

// AnalyzeScoring computes the point distribution over all memory tokens.
func AnalyzeScoring(elements []notion.Page, threads []*ThreadNode) ScoringDistribution {
	dist := ScoringDistribution{
		ByMemoryType: map[string]*Bucket{},
		ByRating:     map[int]*Bucket{},
		ByThread:     map[string]Bucket{},
		Groups:       map[string]GroupStats{},
	}

	groupTokens := map[string][]tokenScore{}

	for _, elem := range elements {
		if !token.IsMemoryToken(elem.Select("Basic Type")) {
			continue
		}
		sf := token.ParseSFFields(elem.Text("Description/Text"))
		if sf.RFID == "" {
			continue
		}

		points := token.PointValue(sf.ValueRating, sf.MemoryType)
		dist.TotalTokens++
		dist.TotalPoints += points

		memType := "Personal"
		if sf.MemoryType != nil {
			memType = *sf.MemoryType
		}
		bucketAdd(dist.ByMemoryType, memType, points)

		rating := 1
		if sf.ValueRating != nil {
			rating = *sf.ValueRating
		}
		if b, ok := dist.ByRating[rating]; ok {
			b.Count++
			b.Points += points
		} else {
			dist.ByRating[rating] = &Bucket{Count: 1, Points: points}
		}

		if name := token.GroupName(sf.Group); name != "" {
			groupTokens[name] = append(groupTokens[name], tokenScore{points: points, group: sf.Group})
		}
	}

	for _, t := range threads {
		dist.ByThread[t.Slug] = Bucket{Count: t.TokenCount, Points: t.TotalPoints}
	}

	for name, toks := range groupTokens {
		multiplier := token.GroupMultiplier(toks[0].group)
		total := 0
		for _, t := range toks {
			total += t.points
		}
		dist.Groups[name] = GroupStats{
			TokenCount:      len(toks),
			Multiplier:      multiplier,
			TotalPoints:     total,
			CompletionBonus: (multiplier - 1) * total,
		}
	}

	return dist
}

type tokenScore struct {
	points int
	group  string
}

func bucketAdd(m map[string]*Bucket, key string, points int) {
	if b, ok := m[key]; ok {
		b.Count++
		b.Points += points
	} else {
		m[key] = &Bucket{Count: 1, Points: points}
	}
}

// ValueTiers counts tokens by rating tier.
type ValueTiers struct {
	High45 int `json:"high_4_5"`
	Mid23  int `json:"mid_2_3"`
	Low1   int `json:"low_1"`
}

// NarrativeCategory is one side of the critical/dead-end split.
type NarrativeCategory struct {
	Total               int        `json:"total"`
	DistributionByValue ValueTiers `json:"distribution_by_value"`
}

// NarrativeValue balances tokens that advance the investigation against
// tokens that are pure score.
type NarrativeValue struct {
	NarrativeCriticalTokens NarrativeCategory `json:"narrative_critical_tokens"`
	NarrativeDeadEnds       NarrativeCategory `json:"narrative_dead_ends"`
	TokensWithSummaries     int               `json:"tokens_with_summaries"`
	TokensWithoutSummaries  int               `json:"tokens_without_summaries"`
}

// AnalyzeNarrativeValue splits tokens by timeline linkage and tallies the
// value tiers on each side.
func AnalyzeNarrativeValue(elements []notion.Page) NarrativeValue {
	var nv NarrativeValue

	for _, elem := range elements {
		if !token.IsMemoryToken(elem.Select("Basic Type")) {
			continue
		}
		sf := token.ParseSFFields(elem.Text("Description/Text"))
		if sf.RFID == "" {
			continue
		}

		rating := 1
		if sf.ValueRating != nil {
			rating = *sf.ValueRating
		}

		hasTimeline := len(elem.RelationIDs("Timeline Event")) > 0
		if hasTimeline {
			nv.NarrativeCriticalTokens.Total++
			tierAdd(&nv.NarrativeCriticalTokens.DistributionByValue, rating)
		} else {
			nv.NarrativeDeadEnds.Total++
			tierAdd(&nv.NarrativeDeadEnds.DistributionByValue, rating)
		}

		if sf.Summary != nil {
			nv.TokensWithSummaries++
		} else {
			nv.TokensWithoutSummaries++
		}
	}

	return nv
}

func tierAdd(tiers *ValueTiers, rating int) {
	switch {
	case rating >= 4:
		tiers.High45++
	case rating >= 2:
		tiers.Mid23++
	default:
		tiers.Low1++
	}
}
