package domain

// Candidate is the raw extraction output for one posting on one results
// page. Fields may be empty when the page is missing the matching node;
// partial records are kept so later stages can still dedupe on the link.
type Candidate struct {
	Title      string
	Company    string
	Location   string
	Summary    string
	DetailLink string // absolute URL, resolved at extraction time
}

// Listing is a candidate that survived deduplication. Identity is the
// content-derived fingerprint over (title, location, company) and is the
// store's primary key. Description stays empty until enrichment runs and
// holds DescriptionUnavailable when enrichment failed for this link.
type Listing struct {
	Candidate
	Identity    string
	Description string
}

// DescriptionUnavailable marks a listing whose detail page could not be
// fetched or parsed. The listing itself is never dropped.
const DescriptionUnavailable = "unavailable"
