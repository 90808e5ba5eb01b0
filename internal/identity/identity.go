package identity

import (
	"crypto/sha256"
	"encoding/hex"

	"jobsift/internal/domain"
)

// Domain prefix for content-addressed listing identity. The version suffix
// leaves room for an algorithm migration without colliding with v1 values.
const hashDomain = "jobsift/listing/v1"

// Assign computes the deterministic fingerprint of a candidate over
// (title, location, company). Summary and description are excluded on
// purpose: sponsored reposts vary the summary cosmetically while being the
// same posting. Fields are joined with 0x00 separators so distinct triples
// cannot concatenate to the same byte stream ("AB"+"C" vs "A"+"BC").
func Assign(c domain.Candidate) string {
	h := sha256.New()
	h.Write([]byte(hashDomain))
	for _, field := range []string{c.Title, c.Location, c.Company} {
		h.Write([]byte{0x00})
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}
