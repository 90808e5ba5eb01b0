package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"jobsift/internal/domain"
)

// KeywordCount is how many stored listings mention a keyword at least once.
type KeywordCount struct {
	Keyword string
	Count   int
}

// Tally counts, per keyword, the listings whose description mentions it
// (case-insensitive containment, one count per listing no matter how often
// it repeats). Listings with no usable description are skipped. Results
// are sorted by count descending, then keyword.
func Tally(listings []domain.Listing, keywords []string) []KeywordCount {
	counts := make([]KeywordCount, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		needle := strings.ToLower(kw)
		n := 0
		for _, l := range listings {
			if l.Description == "" || l.Description == domain.DescriptionUnavailable {
				continue
			}
			if strings.Contains(strings.ToLower(l.Description), needle) {
				n++
			}
		}
		counts = append(counts, KeywordCount{Keyword: kw, Count: n})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Keyword < counts[j].Keyword
	})
	return counts
}

// Write renders the tally as an aligned two-column table.
func Write(w io.Writer, counts []KeywordCount) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEYWORD\tLISTINGS")
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Keyword, c.Count)
	}
	return tw.Flush()
}
