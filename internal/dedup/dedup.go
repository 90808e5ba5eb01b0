package dedup

import (
	"jobsift/internal/domain"
	"jobsift/internal/identity"
)

// Collapse assigns identities and collapses duplicates in two stable
// passes: first occurrence wins per identity, then first occurrence wins
// per detail link among the identity survivors. The second pass catches
// true duplicates whose title or company differ only in ways the hash
// sees (stray punctuation, truncation) but that share one posting URL.
// Output order is scrape order. Applying Collapse to its own output is a
// no-op.
func Collapse(cands []domain.Candidate) []domain.Listing {
	byIdentity := make(map[string]bool, len(cands))
	survivors := make([]domain.Listing, 0, len(cands))

	for _, c := range cands {
		id := identity.Assign(c)
		if byIdentity[id] {
			continue
		}
		byIdentity[id] = true
		survivors = append(survivors, domain.Listing{Candidate: c, Identity: id})
	}

	byLink := make(map[string]bool, len(survivors))
	out := survivors[:0]
	for _, l := range survivors {
		if l.DetailLink != "" {
			if byLink[l.DetailLink] {
				continue
			}
			byLink[l.DetailLink] = true
		}
		out = append(out, l)
	}
	return out
}
