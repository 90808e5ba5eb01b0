package scrape

import "strings"

// CleanText collapses embedded newlines, runs of whitespace, and
// non-breaking spaces into single spaces and trims the result. Applied
// uniformly to every extracted field so downstream stages never see
// layout artifacts.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
