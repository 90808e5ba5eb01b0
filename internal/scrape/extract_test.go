package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const resultsPage = `
<html><body>
<div class="result">
  <h2 class="title"><a href="/rc/clk?jk=abc123">Data   Scientist</a></h2>
  <span class="company">Acme
  Corp</span>
  <span class="location">NY,&nbsp;NY</span>
  <div class="summary">
    Build models.
    Ship them.
  </div>
</div>
<div class="result">
  <h2 class="title"><a href="https://other.example.com/job/9">ML Engineer</a></h2>
  <span class="company">Acme Corp</span>
</div>
<div class="result">
  <span class="company">Orphan Inc</span>
</div>
</body></html>`

func TestExtractCleansAndResolves(t *testing.T) {
	doc := docFromHTML(t, resultsPage)

	cands := Extract(doc, "https://www.indeed.com/jobs?q=data+scientist&start=0", DefaultSelectors())
	require.Len(t, cands, 3)

	assert.Equal(t, "Data Scientist", cands[0].Title)
	assert.Equal(t, "Acme Corp", cands[0].Company)
	assert.Equal(t, "NY, NY", cands[0].Location)
	assert.Equal(t, "Build models. Ship them.", cands[0].Summary)
	assert.Equal(t, "https://www.indeed.com/rc/clk?jk=abc123", cands[0].DetailLink)

	// already-absolute links pass through untouched
	assert.Equal(t, "https://other.example.com/job/9", cands[1].DetailLink)
}

func TestExtractKeepsPartialRecords(t *testing.T) {
	doc := docFromHTML(t, resultsPage)

	cands := Extract(doc, "https://www.indeed.com/jobs", DefaultSelectors())
	require.Len(t, cands, 3)

	partial := cands[2]
	assert.Equal(t, "", partial.Title)
	assert.Equal(t, "Orphan Inc", partial.Company)
	assert.Equal(t, "", partial.Location)
	assert.Equal(t, "", partial.DetailLink)
}

func TestExtractDropsFullyEmptyResults(t *testing.T) {
	doc := docFromHTML(t, `<html><body><div class="result"><p>sponsored</p></div></body></html>`)
	assert.Empty(t, Extract(doc, "https://www.indeed.com", DefaultSelectors()))
}

func TestExtractNoResults(t *testing.T) {
	doc := docFromHTML(t, `<html><body><p>no matches</p></body></html>`)
	assert.Empty(t, Extract(doc, "https://www.indeed.com", DefaultSelectors()))
}
