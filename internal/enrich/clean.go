package enrich

import "strings"

// cleanBlock normalizes whitespace within each line of a description but
// keeps the line breaks, unlike the extractor's single-line cleaner.
func cleanBlock(s string) string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.ReplaceAll(ln, " ", " ")
		ln = strings.Join(strings.Fields(ln), " ")
		if ln != "" {
			out = append(out, ln)
		}
	}
	return strings.Join(out, "\n")
}
