package gaps

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders the full gap report as a Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Story Element Gaps Analysis\n\n")
	b.WriteString("This report identifies story elements that need to be created to fully tell the story.\n\n")
	b.WriteString("---\n\n")

	b.WriteString("## Timeline Events Without Narrative Elements\n\n")
	b.WriteString("These events exist in the timeline but have no associated memory tokens or documents.\n\n")

	if len(r.UnrepresentedEvents) > 0 {
		for _, event := range r.UnrepresentedEvents {
			fmt.Fprintf(&b, "### %s\n\n", event.Description)
			fmt.Fprintf(&b, "- **Date:** %s\n", event.Date)
			if event.Notes != "" {
				fmt.Fprintf(&b, "- **Notes:** %s\n", event.Notes)
			}
			fmt.Fprintf(&b, "- **Characters Involved:** %d character(s)\n\n", len(event.CharacterIDs))
		}
	} else {
		b.WriteString("All timeline events have associated elements.\n\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("## Character-by-Character Analysis\n\n")
	b.WriteString("For each character, this section shows:\n\n")
	b.WriteString("1. Timeline events they're involved in but not mentioned in their character description\n")
	b.WriteString("2. Character background details not represented in any narrative element\n\n")

	for _, char := range r.sortedCharacters() {
		timelineGaps := r.TimelineGaps[char.ID]
		elementGaps := r.ElementGaps[char.ID]
		if len(timelineGaps) == 0 && len(elementGaps) == 0 {
			continue
		}

		fmt.Fprintf(&b, "### %s\n\n", char.Name)
		fmt.Fprintf(&b, "**Type:** %s | **Tier:** %s\n\n", char.Type, char.Tier)
		if char.Logline != "" {
			fmt.Fprintf(&b, "*%s*\n\n", char.Logline)
		}

		if len(timelineGaps) > 0 {
			b.WriteString("#### Timeline Events Not in Character Description\n\n")
			for _, gap := range timelineGaps {
				fmt.Fprintf(&b, "- **%s:** %s\n", gap.Date, gap.EventDescription)
				if gap.Notes != "" {
					fmt.Fprintf(&b, "  - *Notes:* %s\n", gap.Notes)
				}
			}
			b.WriteString("\n")
		}

		if len(elementGaps) > 0 {
			b.WriteString("#### Character Details Not in Narrative Elements\n\n")
			shown := elementGaps
			if len(shown) > 10 {
				shown = shown[:10]
			}
			for _, detail := range shown {
				fmt.Fprintf(&b, "- %s\n", detail)
			}
			if len(elementGaps) > 10 {
				fmt.Fprintf(&b, "- *...and %d more details*\n", len(elementGaps)-10)
			}
			b.WriteString("\n")
		}

		b.WriteString("---\n\n")
	}

	b.WriteString("## Summary Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Characters:** %d\n", len(r.Characters))
	fmt.Fprintf(&b, "- **Total Timeline Events:** %d\n", len(r.Events))
	fmt.Fprintf(&b, "- **Total Narrative Elements:** %d\n", len(r.Elements))
	fmt.Fprintf(&b, "- **Characters with Gaps:** %d\n", r.CharactersWithGaps())
	fmt.Fprintf(&b, "- **Timeline Events Without Elements:** %d\n", len(r.UnrepresentedEvents))

	return b.String()
}

// HTML renders the Markdown report into a standalone HTML review page.
func (r *Report) HTML() ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body strings.Builder
	if err := md.Convert([]byte(r.Markdown()), &body); err != nil {
		return nil, err
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	page.WriteString("<title>Story Element Gaps Analysis</title>\n")
	page.WriteString("<style>body{font-family:sans-serif;max-width:52rem;margin:2rem auto;padding:0 1rem;line-height:1.5}hr{border:0;border-top:1px solid #ddd}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.WriteString(body.String())
	page.WriteString("</body>\n</html>\n")
	return []byte(page.String()), nil
}
