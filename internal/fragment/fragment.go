// Package fragment derives URL fragment identifiers from heading text.
//
// The same transform is used everywhere an anchor crosses a boundary:
// assigning id attributes to rendered headings, building sidebar hrefs,
// and looking elements up in the viewport. Keeping it to a single pure
// function is what guarantees those three agree.
package fragment

import "strings"

// ID converts heading display text into its fragment identifier.
// Lowercases, replaces every character outside [a-z0-9] with a hyphen,
// collapses hyphen runs, and trims leading/trailing hyphens. The result
// is stable under re-application: ID(ID(s)) == ID(s).
func ID(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		// Everything else, whitespace and punctuation alike, folds into
		// a single hyphen between word runs.
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Href returns the in-page link target for heading text, "#" included.
func Href(s string) string {
	return "#" + ID(s)
}
