package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobsift/internal/domain"
)

// Selectors names the structural roles on a results page. Every field is
// extracted independently: a missing node yields an empty field, never a
// dropped record.
type Selectors struct {
	Result   string `yaml:"result"`
	Title    string `yaml:"title"`
	Company  string `yaml:"company"`
	Location string `yaml:"location"`
	Summary  string `yaml:"summary"`
	Link     string `yaml:"link"`
}

// DefaultSelectors matches Indeed-style results markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Result:   "div.result",
		Title:    "h2.title a",
		Company:  "span.company",
		Location: "span.location, div.location",
		Summary:  "div.summary",
		Link:     "h2.title a",
	}
}

// Extract parses one results page into candidates. Detail links are
// resolved absolute against pageURL here, since later stages treat them as
// directly fetchable. Records whose every field came up empty are dropped;
// anything with at least one field survives.
func Extract(doc *goquery.Document, pageURL string, sel Selectors) []domain.Candidate {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var out []domain.Candidate
	doc.Find(sel.Result).Each(func(_ int, s *goquery.Selection) {
		c := domain.Candidate{
			Title:    CleanText(s.Find(sel.Title).First().Text()),
			Company:  CleanText(s.Find(sel.Company).First().Text()),
			Location: CleanText(s.Find(sel.Location).First().Text()),
			Summary:  CleanText(s.Find(sel.Summary).First().Text()),
		}
		if href, ok := s.Find(sel.Link).First().Attr("href"); ok {
			c.DetailLink = resolveLink(base, strings.TrimSpace(href))
		}
		if c == (domain.Candidate{}) {
			return
		}
		out = append(out, c)
	})
	return out
}

func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}
