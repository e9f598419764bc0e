package services

import (
	"fmt"
	"strings"

	"jelajah/internal/models/request_models"
	"jelajah/internal/models/response_models"
)

// ItineraryMarkdown lays a generated itinerary out as Markdown for the
// terminal.
func ItineraryMarkdown(req request_models.TravelRequest, generated response_models.GeneratedItinerary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s, %d days\n\n", req.Destination, req.Duration)
	fmt.Fprintf(&b, "_Interests: %s_\n\n", req.Interests)

	if len(generated.Itinerary) == 0 {
		b.WriteString("No days were planned.\n")
	}
	for _, day := range generated.Itinerary {
		fmt.Fprintf(&b, "## Day %d: %s\n\n", day.Day, day.Theme)
		if len(day.Activities) == 0 {
			b.WriteString("No activities planned.\n\n")
			continue
		}
		b.WriteString("| Activity | Hours | Estimated cost |\n|---|---|---|\n")
		for _, a := range day.Activities {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(a.Name), escapeCell(a.Hours), escapeCell(a.Cost))
		}
		b.WriteString("\n")
		for _, a := range day.Activities {
			if a.Description != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", a.Name, a.Description)
			}
		}
		b.WriteString("\n")
	}

	if len(generated.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for _, src := range generated.Sources {
			fmt.Fprintf(&b, "- %s\n", src)
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
