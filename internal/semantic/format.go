package semantic

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity))

		location := r.Entry.Path
		if r.Entry.Fragment != "" {
			location += "#" + r.Entry.Fragment
		}
		sb.WriteString(fmt.Sprintf("Page: %s\n", location))

		if r.Entry.Section != "" {
			sb.WriteString(fmt.Sprintf("Section: %s\n", r.Entry.Section))
		} else if r.Entry.Title != "" {
			sb.WriteString(fmt.Sprintf("Title: %s\n", r.Entry.Title))
		}

		sb.WriteString("\n")
		sb.WriteString(r.Entry.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
